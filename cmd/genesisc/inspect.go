package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/zircuit-labs/genesis-ops/core/genesis"
	"github.com/zircuit-labs/genesis-ops/core/layout"
)

var contractFlag = &cli.StringFlag{
	Name:  "contract",
	Usage: "List every storage slot of one system contract (staking, chaincfg, rulemng)",
}

var inspectCommand = &cli.Command{
	Name:      "inspect",
	Usage:     "Summarise a compiled genesis document",
	ArgsUsage: "<genesis.json>",
	Action:    inspect,
	Flags:     []cli.Flag{contractFlag},
}

func inspect(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one genesis file")
	}
	raw, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	doc, err := genesis.ParseDocument(raw)
	if err != nil {
		return fmt.Errorf("failed to parse genesis document: %w", err)
	}

	if name := ctx.String(contractFlag.Name); name != "" {
		return renderStorage(ctx.App.Writer, doc, name)
	}
	renderSummary(ctx.App.Writer, doc)
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

func renderSummary(w io.Writer, doc *genesis.Document) {
	contracts := newTable(w, "Contract", "Address", "Balance", "Slots")
	for _, sc := range layout.SystemContracts {
		_, acct, ok := doc.Account(sc.Address)
		if !ok {
			contracts.Append([]string{sc.Name, sc.Address.Hex(), "-", "missing"})
			continue
		}
		contracts.Append([]string{sc.Name, sc.Address.Hex(), acct.Balance, strconv.Itoa(len(acct.Storage))})
	}
	contracts.Render()

	labels := make([]string, 0, len(doc.Domains))
	for label := range doc.Domains {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	domains := newTable(w, "Domain", "Node ID", "Endpoints", "Owner")
	for _, label := range labels {
		d := doc.Domains[label]
		endpoint := "-"
		if len(d.Endpoints) > 0 {
			endpoint = d.Endpoints[0]
			if len(d.Endpoints) > 1 {
				endpoint += fmt.Sprintf(" (+%d)", len(d.Endpoints)-1)
			}
		}
		domains.Append([]string{label, d.NodeID, endpoint, d.Owner})
	}
	domains.Render()

	configs := newTable(w, "Config", "Value")
	for _, e := range doc.Configs {
		configs.Append([]string{e.Key, e.Value})
	}
	configs.Render()
}

func renderStorage(w io.Writer, doc *genesis.Document, name string) error {
	sc, ok := layout.ContractByName(name)
	if !ok {
		return fmt.Errorf("unknown system contract %q", name)
	}
	_, acct, ok := doc.Account(sc.Address)
	if !ok {
		return fmt.Errorf("genesis has no alloc entry for %s (%s)", name, sc.Address.Hex())
	}
	storage, err := acct.StorageMap()
	if err != nil {
		return fmt.Errorf("%s storage: %w", name, err)
	}

	table := newTable(w, "Slot", "Value")
	for _, k := range storage.Keys() {
		v, _ := storage.Get(k)
		table.Append([]string{k.Hex(), v.Hex()})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(storage.Len())})
	table.Render()
	return nil
}
