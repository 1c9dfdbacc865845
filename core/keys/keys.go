// Package keys reads already generated validator key material from disk.
package keys

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"
	"golang.org/x/sync/errgroup"

	"github.com/zircuit-labs/genesis-ops/core/genesis"
)

// DefaultConcurrency bounds the number of domains read at once.
const DefaultConcurrency = 8

// Source names the key files of one domain.
type Source struct {
	Label              string
	PublicKeyFile      string
	StabilizingKeyFile string
}

// Material is the public key material of one domain. PublicKey is hex text
// without 0x; StabilizingKey is the trimmed file content as written.
type Material struct {
	Label          string
	PublicKey      string
	StabilizingKey string
}

// Load reads the key files of every source. Results keep the order of
// sources. Any failure is a genesis.KindKeyMaterial error wrapping the
// underlying I/O or parse error.
func Load(ctx context.Context, sources []Source) ([]Material, error) {
	out := make([]Material, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := loadOne(src)
			if err != nil {
				return stacktrace.Wrap(genesis.NewError(genesis.KindKeyMaterial, src.Label, err))
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadOne(src Source) (Material, error) {
	pub, err := readFirstLine(src.PublicKeyFile)
	if err != nil {
		return Material{}, fmt.Errorf("public key: %w", err)
	}
	if err := checkHex(pub); err != nil {
		return Material{}, fmt.Errorf("public key %s: %w", src.PublicKeyFile, err)
	}
	spk, err := readAll(src.StabilizingKeyFile)
	if err != nil {
		return Material{}, fmt.Errorf("stabilizing key: %w", err)
	}
	if err := checkHex(spk); err != nil {
		return Material{}, fmt.Errorf("stabilizing key %s: %w", src.StabilizingKeyFile, err)
	}
	return Material{
		Label:          src.Label,
		PublicKey:      strings.TrimPrefix(pub, "0x"),
		StabilizingKey: spk,
	}, nil
}

// readFirstLine returns the first line of path, trimmed.
func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%s: empty key file", path)
	}
	return line, nil
}

// readAll returns the whole content of path, trimmed.
func readAll(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return "", fmt.Errorf("%s: empty key file", path)
	}
	return string(b), nil
}

func checkHex(s string) error {
	if _, err := hexutil.Decode("0x" + strings.TrimPrefix(s, "0x")); err != nil {
		return fmt.Errorf("%w: %v", genesis.ErrMalformedHex, err)
	}
	return nil
}
