package artifact

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zircuit-labs/genesis-ops/core/genesis"
)

type publishEvent struct {
	target string
	failed bool
}

type recordingObserver struct {
	events []publishEvent
}

func (o *recordingObserver) ObservePublish(target string, err error) {
	o.events = append(o.events, publishEvent{target: target, failed: err != nil})
}

func testDocument() *genesis.Document {
	return &genesis.Document{
		Alloc: map[string]*genesis.Account{
			"4100000000000000000000000000000000000000": {Balance: "0x1", Storage: map[string]string{}},
		},
		Configs: genesis.ConfigList{{Key: "chain.id", Value: "688688"}},
	}
}

func gunzip(t *testing.T, data []byte) []byte {
	t.Helper()
	r, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer r.Close()
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return out
}

func TestPublishAllTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := NewMockBlobStore(ctrl)

	dir := t.TempDir()
	history, err := OpenHistory(context.Background(), "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	defer history.Close()

	ts := time.Unix(1722252100, 0)
	observer := &recordingObserver{}
	p := NewPublisher(
		WithArchive(filepath.Join(dir, "archive"), 3),
		WithBlobStore(blobs),
		WithHistory(history),
		WithPublishObserver(observer),
		WithPublishClock(func() time.Time { return ts }),
	)

	var uploaded []byte
	blobs.EXPECT().
		Upload(gomock.Any(), "1722252100/genesis-688688.json.gz", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte) error {
			uploaded = data
			return nil
		})

	out := filepath.Join(dir, "out", "genesis.json")
	res, err := p.Publish(context.Background(), Request{
		Document:   testDocument(),
		Output:     out,
		Validators: 2,
		TotalStake: uint256.NewInt(3),
	})
	require.NoError(t, err)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	sum := sha256.Sum256(written)
	assert.Equal(t, hex.EncodeToString(sum[:]), res.SHA256)
	assert.Equal(t, written, gunzip(t, uploaded))

	parsed, err := genesis.ParseDocument(written)
	require.NoError(t, err)
	assert.Equal(t, testDocument(), parsed)

	assert.Equal(t, filepath.Join(dir, "archive", "1722252100", "genesis-688688.json.gz"), res.ArchivePath)
	assert.Equal(t, "1722252100/genesis-688688.json.gz", res.BlobKey)

	run, err := history.Get(context.Background(), res.RunID)
	require.NoError(t, err)
	assert.Equal(t, "688688", run.ChainID)
	assert.Equal(t, "3", run.TotalStakeWei)
	assert.Equal(t, res.SHA256, run.DocumentSHA256)
	assert.Equal(t, res.BlobKey, run.BlobKey)

	assert.Equal(t, []publishEvent{
		{TargetOutput, false},
		{TargetArchive, false},
		{TargetBlob, false},
		{TargetHistory, false},
	}, observer.events)
}

func TestPublishOutputOnly(t *testing.T) {
	out := filepath.Join(t.TempDir(), "genesis.json")
	res, err := NewPublisher().Publish(context.Background(), Request{Document: testDocument(), Output: out})
	require.NoError(t, err)
	assert.Empty(t, res.ArchivePath)
	assert.Empty(t, res.BlobKey)
	assert.Empty(t, res.RunID)
	assert.FileExists(t, out)
}

func TestPublishStopsOnBlobFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := NewMockBlobStore(ctrl)
	blobs.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("access denied"))

	dir := t.TempDir()
	observer := &recordingObserver{}
	p := NewPublisher(
		WithArchive(filepath.Join(dir, "archive"), 0),
		WithBlobStore(blobs),
		WithPublishObserver(observer),
	)
	out := filepath.Join(dir, "genesis.json")
	res, err := p.Publish(context.Background(), Request{Document: testDocument(), Output: out})
	require.Error(t, err)
	assert.NotEmpty(t, res.ArchivePath)
	assert.Empty(t, res.BlobKey)
	assert.FileExists(t, out)
	assert.Equal(t, []publishEvent{
		{TargetOutput, false},
		{TargetArchive, false},
		{TargetBlob, true},
	}, observer.events)
}

func TestPublishOutputFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	observer := &recordingObserver{}
	_, err := NewPublisher(WithPublishObserver(observer)).Publish(context.Background(), Request{
		Document: testDocument(),
		Output:   filepath.Join(blocker, "genesis.json"),
	})
	require.Error(t, err)
	assert.Equal(t, []publishEvent{{TargetOutput, true}}, observer.events)
}
