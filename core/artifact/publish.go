// Package artifact publishes compiled genesis documents: the atomic write of
// the output file, the gzip archive, the compile history and the blob copy.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"
)

const lockRetryDelay = 50 * time.Millisecond

var ErrLocked = errors.New("output is locked by another publisher")

// WriteFileAtomic replaces path with data. The data is staged in a temporary
// file in the same directory, synced, then renamed over path while holding
// path.lock, so readers see either the previous file or the complete new one.
func WriteFileAtomic(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stacktrace.Wrap(err)
	}

	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return stacktrace.Wrap(err)
	}
	if !locked {
		return stacktrace.Wrap(fmt.Errorf("%w: %s", ErrLocked, path))
	}
	defer fl.Unlock()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return stacktrace.Wrap(err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return stacktrace.Wrap(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return stacktrace.Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return stacktrace.Wrap(err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return stacktrace.Wrap(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return stacktrace.Wrap(err)
	}
	committed = true
	return nil
}
