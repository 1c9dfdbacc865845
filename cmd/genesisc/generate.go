package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/zircuit-labs/genesis-ops/config"
	"github.com/zircuit-labs/genesis-ops/core/artifact"
	"github.com/zircuit-labs/genesis-ops/core/genesis"
	"github.com/zircuit-labs/genesis-ops/core/genesis/metrics"
	"github.com/zircuit-labs/genesis-ops/core/keys"
)

var outputFlag = &cli.StringFlag{
	Name:  "output",
	Usage: "Override the output path of the deploy description",
}

var generateCommand = &cli.Command{
	Name:      "generate",
	Usage:     "Compile the genesis document of a deploy description",
	ArgsUsage: " ",
	Action:    generate,
	Flags:     []cli.Flag{configFlag, outputFlag},
	Description: `
genesisc generate --config deploy.json
Reads the validator key material and the genesis template named in the deploy
description, lays the system contract storage over the template and publishes
the result to the output path, the archive, the blob store and the compile
history, whichever are configured.`,
}

func generate(ctx *cli.Context) error {
	if ctx.NArg() != 0 {
		log.Error("Too many arguments given")
		return errors.New("too many arguments")
	}
	path := ctx.String(configFlag.Name)
	if path == "" {
		return errors.New("--config is required")
	}
	deploy, err := config.Load(path)
	if err != nil {
		return err
	}
	if out := ctx.String(outputFlag.Name); out != "" {
		deploy.Output = out
	}
	if err := deploy.Validate(); err != nil {
		return err
	}

	m, err := metrics.NewCollector(registry)
	if err != nil {
		return err
	}

	doc, err := compileDeploy(ctx.Context, deploy, m)
	if err != nil {
		return err
	}

	publisher, closeFn, err := newPublisher(ctx.Context, deploy, m)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := publisher.Publish(ctx.Context, artifact.Request{
		Document:   doc.document,
		Output:     deploy.Output,
		ChainID:    deploy.ChainID,
		Validators: doc.validators,
		TotalStake: doc.totalStake,
	})
	if err != nil {
		return err
	}
	log.Info("Published genesis", "output", res.OutputPath, "sha256", res.SHA256,
		"archive", res.ArchivePath, "blob", res.BlobKey, "run", res.RunID)
	return nil
}

type compiled struct {
	document   *genesis.Document
	validators int
	totalStake *uint256.Int
}

// stakeTally keeps the validator count and aggregate stake reported by a
// successful compile and forwards every outcome to the wrapped observer.
type stakeTally struct {
	genesis.Observer
	validators int
	total      *uint256.Int
}

func (s *stakeTally) CompileSucceeded(validators int, totalStake *uint256.Int, elapsed time.Duration) {
	s.validators, s.total = validators, totalStake
	s.Observer.CompileSucceeded(validators, totalStake, elapsed)
}

// compileDeploy compiles the template configs as they are. The deploy
// chain_id only names published artifacts.
func compileDeploy(ctx context.Context, deploy *config.Deploy, observer genesis.Observer) (*compiled, error) {
	admin, proxyAdmin, err := deploy.Addresses()
	if err != nil {
		return nil, err
	}

	material, err := keys.Load(ctx, deploy.KeySources())
	if err != nil {
		return nil, err
	}
	validators, err := deploy.Validators(material)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(deploy.GenesisTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis template: %w", err)
	}
	template, err := genesis.ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse genesis template %s: %w", deploy.GenesisTemplate, err)
	}

	tally := &stakeTally{Observer: observer}
	doc, err := genesis.Compile(validators, template.Configs, template, admin, proxyAdmin, genesis.WithObserver(tally))
	if err != nil {
		return nil, err
	}
	return &compiled{document: doc, validators: tally.validators, totalStake: tally.total}, nil
}

func newPublisher(ctx context.Context, deploy *config.Deploy, observer artifact.PublishObserver) (*artifact.Publisher, func(), error) {
	opts := []artifact.PublisherOption{artifact.WithPublishObserver(observer)}
	closeFn := func() {}

	if deploy.ArchiveDir != "" {
		opts = append(opts, artifact.WithArchive(deploy.ArchiveDir, deploy.ArchiveKeep))
		if deploy.Blob.Enabled() {
			blobs, err := artifact.NewS3BlobStore(ctx, deploy.Blob)
			if err != nil {
				return nil, nil, err
			}
			opts = append(opts, artifact.WithBlobStore(blobs))
		}
	} else if deploy.Blob.Enabled() {
		log.Warn("Blob store configured without archive_dir, skipping upload", "bucket", deploy.Blob.Bucket)
	}

	if deploy.HistoryDSN != "" {
		h, err := artifact.OpenHistory(ctx, deploy.HistoryDSN)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, artifact.WithHistory(h))
		closeFn = func() {
			if err := h.Close(); err != nil {
				log.Warn("Failed to close compile history", "err", err)
			}
		}
	}
	return artifact.NewPublisher(opts...), closeFn, nil
}
