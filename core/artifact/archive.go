package artifact

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"
)

type Archiver struct {
	basePath string
}

func NewArchiver(basePath string) *Archiver {
	return &Archiver{basePath: basePath}
}

// Store writes data gzip compressed at basePath/<timestamp-unix>/<name>.json.gz
// and returns the path. An existing file is never overwritten: name(1),
// name(2) and so on are tried in turn.
func (a *Archiver) Store(data []byte, name string, timestamp time.Time) (string, error) {
	dirPath := filepath.Join(a.basePath, strconv.FormatInt(timestamp.Unix(), 10))
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", stacktrace.Wrap(err)
	}

	filePath, err := incrementFilename(filepath.Join(dirPath, name+".json.gz"))
	if err != nil {
		return "", stacktrace.Wrap(err)
	}

	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", stacktrace.Wrap(err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if _, err := gzipWriter.Write(data); err != nil {
		return "", stacktrace.Wrap(err)
	}
	if err := gzipWriter.Close(); err != nil {
		return "", stacktrace.Wrap(err)
	}
	if err := file.Sync(); err != nil {
		return "", stacktrace.Wrap(err)
	}
	return filePath, nil
}

// Open returns the decompressed content of an archived file.
func (a *Archiver) Open(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, stacktrace.Wrap(err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, stacktrace.Wrap(err)
	}
	defer gzipReader.Close()

	return io.ReadAll(gzipReader)
}

// Prune keeps the newest keep timestamp directories and removes the rest.
// Entries that are not timestamp directories are ignored.
func (a *Archiver) Prune(keep int) ([]string, error) {
	entries, err := os.ReadDir(a.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, stacktrace.Wrap(err)
	}

	var stamps []int64
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ts, err := strconv.ParseInt(e.Name(), 10, 64)
		if err != nil {
			continue
		}
		stamps = append(stamps, ts)
	}
	if len(stamps) <= keep {
		return nil, nil
	}
	slices.Sort(stamps)

	var removed []string
	for _, ts := range stamps[:len(stamps)-keep] {
		dir := filepath.Join(a.basePath, strconv.FormatInt(ts, 10))
		if err := os.RemoveAll(dir); err != nil {
			return removed, stacktrace.Wrap(err)
		}
		removed = append(removed, dir)
	}
	return removed, nil
}

// incrementFilename ensures a unique filename by appending (1), (2), etc.
func incrementFilename(filename string) (string, error) {
	const ext = ".json.gz"
	base := strings.TrimSuffix(filename, ext)

	newName := filename
	for counter := 1; ; counter++ {
		_, err := os.Stat(newName)
		if os.IsNotExist(err) {
			return newName, nil
		}
		if err != nil {
			return "", err
		}
		newName = fmt.Sprintf("%s(%d)%s", base, counter, ext)
	}
}
