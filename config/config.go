// Package config loads the deploy description of a network: where the
// template and key material live, who administers the system contracts and
// which domains validate at genesis.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"

	"github.com/zircuit-labs/genesis-ops/core/artifact"
	"github.com/zircuit-labs/genesis-ops/core/genesis"
	"github.com/zircuit-labs/genesis-ops/core/keys"
	"github.com/zircuit-labs/genesis-ops/core/layout"
	"github.com/zircuit-labs/genesis-ops/core/sysgen"
)

// EnvPrefix selects the environment overrides. A double underscore separates
// nesting levels: GENESISC_BLOB__BUCKET sets blob.bucket.
const EnvPrefix = "GENESISC_"

var (
	ErrMissing      = errors.New("missing required setting")
	ErrBadStake     = errors.New("initial stake must be a decimal gwei amount")
	ErrNoDomains    = errors.New("no domains configured")
	ErrDomainCount  = errors.New("key material does not match the configured domains")
	ErrStakeTooHigh = errors.New("initial stake overflows 256 bits in wei")
)

// Domain is one validator in the deploy description. Key paths are relative
// to the description file.
type Domain struct {
	Label              string `koanf:"label"`
	Endpoint           string `koanf:"endpoint"`
	KeyPub             string `koanf:"key_pub"`
	StabilizingPK      string `koanf:"stabilizing_pk"`
	InitialStakeInGwei string `koanf:"initial_stake_in_gwei"`
}

// Deploy is the deploy description. Domain order fixes the validator
// ordinal indexes.
type Deploy struct {
	ChainID         string            `koanf:"chain_id"`
	AdminAddr       string            `koanf:"admin_addr"`
	ProxyAdminAddr  string            `koanf:"proxy_admin_addr"`
	GenesisTemplate string            `koanf:"genesis_tpl"`
	Output          string            `koanf:"output"`
	ArchiveDir      string            `koanf:"archive_dir"`
	ArchiveKeep     int               `koanf:"archive_keep"`
	HistoryDSN      string            `koanf:"history_dsn"`
	Blob            artifact.S3Config `koanf:"blob"`
	Domains         []Domain          `koanf:"domains"`
}

// Load reads the JSON description at path and applies GENESISC_ environment
// overrides on top. Relative paths are resolved against the directory of
// path.
func Load(path string) (*Deploy, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, stacktrace.Wrap(fmt.Errorf("failed to read deploy description %s: %w", path, err))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, stacktrace.Wrap(err)
	}

	d := new(Deploy)
	if err := k.Unmarshal("", d); err != nil {
		return nil, stacktrace.Wrap(fmt.Errorf("failed to decode deploy description %s: %w", path, err))
	}
	d.resolvePaths(filepath.Dir(path))
	return d, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func (d *Deploy) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
			return p
		}
		return filepath.Join(base, p)
	}
	d.GenesisTemplate = resolve(d.GenesisTemplate)
	d.Output = resolve(d.Output)
	d.ArchiveDir = resolve(d.ArchiveDir)
	for i := range d.Domains {
		d.Domains[i].KeyPub = resolve(d.Domains[i].KeyPub)
		d.Domains[i].StabilizingPK = resolve(d.Domains[i].StabilizingPK)
	}
}

// Validate checks the settings generate needs before any file is read.
func (d *Deploy) Validate() error {
	if _, _, err := d.Addresses(); err != nil {
		return err
	}
	for name, v := range map[string]string{"genesis_tpl": d.GenesisTemplate, "output": d.Output} {
		if v == "" {
			return stacktrace.Wrap(fmt.Errorf("%w: %s", ErrMissing, name))
		}
	}
	if len(d.Domains) == 0 {
		return stacktrace.Wrap(ErrNoDomains)
	}
	for i, dom := range d.Domains {
		if dom.Label == "" {
			return stacktrace.Wrap(fmt.Errorf("%w: domains[%d].label", ErrMissing, i))
		}
		if _, err := dom.Stake(); err != nil {
			return err
		}
	}
	return nil
}

// Addresses returns the admin and proxy admin addresses.
func (d *Deploy) Addresses() (admin, proxyAdmin common.Address, err error) {
	if admin, err = parseAddress("admin_addr", d.AdminAddr); err != nil {
		return
	}
	proxyAdmin, err = parseAddress("proxy_admin_addr", d.ProxyAdminAddr)
	return
}

func parseAddress(name, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, stacktrace.Wrap(fmt.Errorf("%w: %s", ErrMissing, name))
	}
	addr, err := genesis.ParseAddress(s)
	if err != nil {
		return common.Address{}, stacktrace.Wrap(fmt.Errorf("%s: %w", name, err))
	}
	return addr, nil
}

// Stake returns the initial stake in wei.
func (dom Domain) Stake() (*uint256.Int, error) {
	gwei, err := uint256.FromDecimal(strings.TrimSpace(dom.InitialStakeInGwei))
	if err != nil {
		return nil, stacktrace.Wrap(fmt.Errorf("%w: %s: %q", ErrBadStake, dom.Label, dom.InitialStakeInGwei))
	}
	wei, overflow := new(uint256.Int).MulOverflow(gwei, uint256.NewInt(layout.GweiToWei))
	if overflow {
		return nil, stacktrace.Wrap(fmt.Errorf("%w: %s", ErrStakeTooHigh, dom.Label))
	}
	return wei, nil
}

// KeySources lists the key files of every domain, in domain order.
func (d *Deploy) KeySources() []keys.Source {
	out := make([]keys.Source, len(d.Domains))
	for i, dom := range d.Domains {
		out[i] = keys.Source{Label: dom.Label, PublicKeyFile: dom.KeyPub, StabilizingKeyFile: dom.StabilizingPK}
	}
	return out
}

// Validators joins the domains with their loaded key material. material must
// be in domain order, as returned by keys.Load for KeySources.
func (d *Deploy) Validators(material []keys.Material) ([]sysgen.Validator, error) {
	if len(material) != len(d.Domains) {
		return nil, stacktrace.Wrap(fmt.Errorf("%w: %d domains, %d keys", ErrDomainCount, len(d.Domains), len(material)))
	}
	out := make([]sysgen.Validator, len(d.Domains))
	for i, dom := range d.Domains {
		if material[i].Label != dom.Label {
			return nil, stacktrace.Wrap(fmt.Errorf("%w: expected %s at %d, got %s", ErrDomainCount, dom.Label, i, material[i].Label))
		}
		stake, err := dom.Stake()
		if err != nil {
			return nil, err
		}
		out[i] = sysgen.Validator{
			Label:        dom.Label,
			Index:        i,
			PublicKey:    material[i].PublicKey,
			BLSPublicKey: material[i].StabilizingKey,
			Endpoint:     dom.Endpoint,
			Stake:        stake,
		}
	}
	return out, nil
}
