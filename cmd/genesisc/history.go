package main

import (
	"io"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/zircuit-labs/genesis-ops/config"
	"github.com/zircuit-labs/genesis-ops/core/artifact"
)

var (
	dsnFlag = &cli.StringFlag{
		Name:  "dsn",
		Usage: "Compile history database (SQLite path or postgres:// URL); defaults to the deploy description's history_dsn",
	}
	chainFlag = &cli.StringFlag{
		Name:  "chain",
		Usage: "Only list runs for this chain id",
	}
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Maximum number of runs to list",
		Value: 20,
	}
)

var historyCommand = &cli.Command{
	Name:   "history",
	Usage:  "List recent compile runs",
	Action: history,
	Flags:  []cli.Flag{configFlag, dsnFlag, chainFlag, limitFlag},
}

func history(ctx *cli.Context) error {
	dsn := ctx.String(dsnFlag.Name)
	chain := ctx.String(chainFlag.Name)
	if path := ctx.String(configFlag.Name); path != "" {
		deploy, err := config.Load(path)
		if err != nil {
			return err
		}
		if dsn == "" {
			dsn = deploy.HistoryDSN
		}
		if chain == "" {
			chain = deploy.ChainID
		}
	}

	h, err := artifact.OpenHistory(ctx.Context, dsn)
	if err != nil {
		return err
	}
	defer h.Close()

	runs, err := h.Recent(ctx.Context, chain, ctx.Int(limitFlag.Name))
	if err != nil {
		return err
	}
	renderHistory(ctx.App.Writer, runs)
	return nil
}

func renderHistory(w io.Writer, runs []artifact.CompileRun) {
	table := newTable(w, "Run", "Created", "Chain", "Validators", "Total stake (wei)", "SHA-256", "Blob")
	for _, r := range runs {
		sum := r.DocumentSHA256
		if len(sum) > 16 {
			sum = sum[:16]
		}
		table.Append([]string{
			r.ID,
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.ChainID,
			strconv.Itoa(r.Validators),
			r.TotalStakeWei,
			sum,
			r.BlobKey,
		})
	}
	table.Render()
}
