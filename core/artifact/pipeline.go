package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"

	"github.com/zircuit-labs/genesis-ops/core/genesis"
	"github.com/zircuit-labs/genesis-ops/core/genlog"
)

// Publish targets reported to the PublishObserver.
const (
	TargetOutput  = "output"
	TargetArchive = "archive"
	TargetBlob    = "blob"
	TargetHistory = "history"
)

const chainIDConfigKey = "chain.id"

// PublishObserver is told about the outcome of every publish step.
type PublishObserver interface {
	ObservePublish(target string, err error)
}

// Publisher writes a compiled document to its output path and, when
// configured, archives it, uploads the archive and records the run.
type Publisher struct {
	archiver     *Archiver
	keepArchives int
	blobs        BlobStore
	history      *History
	observer     PublishObserver
	logger       log.Logger
	now          func() time.Time
}

type PublisherOption func(*Publisher)

// WithArchive gzips every published document under dir, keeping the newest
// keep timestamp directories. keep <= 0 keeps everything.
func WithArchive(dir string, keep int) PublisherOption {
	return func(p *Publisher) {
		p.archiver = NewArchiver(dir)
		p.keepArchives = keep
	}
}

// WithBlobStore uploads the archive; it has no effect without WithArchive.
func WithBlobStore(b BlobStore) PublisherOption {
	return func(p *Publisher) { p.blobs = b }
}

func WithHistory(h *History) PublisherOption {
	return func(p *Publisher) { p.history = h }
}

func WithPublishObserver(o PublishObserver) PublisherOption {
	return func(p *Publisher) { p.observer = o }
}

func WithPublishLogger(logger log.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = logger }
}

func WithPublishClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) { p.now = now }
}

func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = genlog.NewWith("component", "artifact")
	}
	return p
}

// Request describes one document to publish.
type Request struct {
	Document   *genesis.Document
	Output     string
	ChainID    string
	Validators int
	TotalStake *uint256.Int
}

// Result lists where a document went.
type Result struct {
	OutputPath  string
	ArchivePath string
	BlobKey     string
	SHA256      string
	RunID       string
}

// Publish writes req.Document. The output file is replaced atomically; the
// archive, blob and history steps run afterwards in that order and stop at
// the first failure, leaving the output in place.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Result, error) {
	data, err := json.MarshalIndent(req.Document, "", "  ")
	if err != nil {
		return nil, stacktrace.Wrap(err)
	}
	data = append(data, '\n')
	sum := sha256.Sum256(data)
	res := &Result{OutputPath: req.Output, SHA256: hex.EncodeToString(sum[:])}

	chainID := req.ChainID
	if chainID == "" && req.Document != nil {
		chainID, _ = req.Document.Configs.Get(chainIDConfigKey)
	}

	err = WriteFileAtomic(ctx, req.Output, data, 0o644)
	p.observe(TargetOutput, err)
	if err != nil {
		p.logger.Error("Cannot write genesis output", "path", req.Output, "err", err)
		return nil, err
	}
	p.logger.Info("Wrote genesis", "path", req.Output, "bytes", len(data), "sha256", res.SHA256)

	ts := p.now()
	if p.archiver != nil {
		if err := p.archive(ctx, data, chainID, ts, res); err != nil {
			return res, err
		}
	}

	if p.history != nil {
		run := &CompileRun{
			ChainID:        chainID,
			Validators:     req.Validators,
			TotalStakeWei:  "0",
			DocumentSHA256: res.SHA256,
			OutputPath:     res.OutputPath,
			ArchivePath:    res.ArchivePath,
			BlobKey:        res.BlobKey,
			CreatedAt:      ts.UTC(),
		}
		if req.TotalStake != nil {
			run.TotalStakeWei = req.TotalStake.Dec()
		}
		err := p.history.Record(ctx, run)
		p.observe(TargetHistory, err)
		if err != nil {
			p.logger.Error("Cannot record compile run", "err", err)
			return res, err
		}
		res.RunID = run.ID
		p.logger.Debug("Recorded compile run", "id", run.ID, "chain", chainID)
	}
	return res, nil
}

func (p *Publisher) archive(ctx context.Context, data []byte, chainID string, ts time.Time, res *Result) error {
	name := "genesis"
	if chainID != "" {
		name = "genesis-" + chainID
	}
	archivePath, err := p.archiver.Store(data, name, ts)
	p.observe(TargetArchive, err)
	if err != nil {
		p.logger.Error("Cannot archive genesis", "dir", p.archiver.basePath, "err", err)
		return err
	}
	res.ArchivePath = archivePath
	p.logger.Debug("Archived genesis", "path", archivePath)

	if p.keepArchives > 0 {
		removed, err := p.archiver.Prune(p.keepArchives)
		if err != nil {
			p.logger.Warn("Cannot prune genesis archive", "dir", p.archiver.basePath, "err", err)
		} else if len(removed) > 0 {
			p.logger.Info("Pruned genesis archive", "removed", len(removed))
		}
	}

	if p.blobs == nil {
		return nil
	}
	key, err := blobKey(p.archiver.basePath, archivePath)
	if err != nil {
		return stacktrace.Wrap(err)
	}
	gz, err := os.ReadFile(archivePath)
	if err != nil {
		return stacktrace.Wrap(err)
	}
	err = p.blobs.Upload(ctx, key, gz)
	p.observe(TargetBlob, err)
	if err != nil {
		p.logger.Error("Cannot upload genesis archive", "key", key, "err", err)
		return stacktrace.Wrap(err)
	}
	res.BlobKey = key
	p.logger.Info("Uploaded genesis archive", "key", key)
	return nil
}

func (p *Publisher) observe(target string, err error) {
	if p.observer != nil {
		p.observer.ObservePublish(target, err)
	}
}

// blobKey is the archive path relative to the archive root, slash separated.
func blobKey(base, archivePath string) (string, error) {
	rel, err := filepath.Rel(base, archivePath)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "./"), nil
}
