// genesisc compiles the genesis document of a permissioned network.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/zircuit-labs/genesis-ops/core/genlog"
	"github.com/zircuit-labs/genesis-ops/internal/version"
)

var (
	logFormatFlag = &cli.StringFlag{
		Name:  "log.format",
		Usage: "Log format to use (terminal, json, logfmt)",
		Value: genlog.FormatTerminal,
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	metricsTextfileFlag = &cli.StringFlag{
		Name:  "metrics.textfile",
		Usage: "Write the collected metrics to this file in the Prometheus text format on exit",
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Deploy description (JSON)",
	}
)

// registry collects the metrics of one invocation.
var registry = prometheus.NewRegistry()

func newApp() *cli.App {
	v, _ := version.Info()
	return &cli.App{
		Name:    "genesisc",
		Usage:   "genesis storage-state compiler",
		Version: v,
		Flags: []cli.Flag{
			logFormatFlag,
			verbosityFlag,
			metricsTextfileFlag,
		},
		Before: func(ctx *cli.Context) error {
			return genlog.Setup(os.Stderr, ctx.String(logFormatFlag.Name), ctx.Int(verbosityFlag.Name))
		},
		After: writeMetrics,
		Commands: []*cli.Command{
			generateCommand,
			inspectCommand,
			historyCommand,
			versionCommand,
		},
	}
}

func writeMetrics(ctx *cli.Context) error {
	path := ctx.String(metricsTextfileFlag.Name)
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		log.Error("Failed to write metrics", "path", path, "err", err)
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "Print version numbers",
	Action: func(ctx *cli.Context) error {
		v, vcs := version.Info()
		fmt.Fprintln(ctx.App.Writer, v)
		if vcs != "" {
			fmt.Fprintln(ctx.App.Writer, "Commit:", vcs)
		}
		return nil
	},
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
