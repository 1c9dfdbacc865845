package genesis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/zircuit-labs/genesis-ops/core/genlog"
	"github.com/zircuit-labs/genesis-ops/core/layout"
	"github.com/zircuit-labs/genesis-ops/core/slots"
	"github.com/zircuit-labs/genesis-ops/core/sysgen"
)

// Fixed fields of every domain record.
const (
	DomainOwner          = "root"
	DomainStaking        = "200000000"
	DomainCommissionRate = "10"
)

// Observer is told about the outcome of every compile.
type Observer interface {
	CompileSucceeded(validators int, totalStake *uint256.Int, elapsed time.Duration)
	CompileFailed(kind string, elapsed time.Duration)
}

// Compiler turns a validator set, a chain configuration and a template into a
// genesis document. It keeps no state between calls and is safe for
// concurrent use.
type Compiler struct {
	now      func() time.Time
	logger   log.Logger
	observer Observer
}

type Option func(*Compiler)

// WithClock sets the clock used for the epoch start timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) { c.now = now }
}

func WithLogger(logger log.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

func WithObserver(o Observer) Option {
	return func(c *Compiler) { c.observer = o }
}

func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = genlog.NewWith("component", "genesis")
	}
	return c
}

// Compile is NewCompiler(opts...).Compile.
func Compile(validators []sysgen.Validator, configs ConfigList, template *Document, admin, proxyAdmin common.Address, opts ...Option) (*Document, error) {
	return NewCompiler(opts...).Compile(validators, configs, template, admin, proxyAdmin)
}

// Compile lays the system contract storage over a copy of template. Validator
// ordinal indexes follow the order of validators. The template and the inputs
// are never modified; on error no document is returned.
func (c *Compiler) Compile(validators []sysgen.Validator, configs ConfigList, template *Document, admin, proxyAdmin common.Address) (*Document, error) {
	start := time.Now()
	doc, total, err := c.compile(validators, configs, template, admin, proxyAdmin)
	elapsed := time.Since(start)
	if err != nil {
		kind := "unknown"
		if k, ok := KindOf(err); ok {
			kind = k.String()
		}
		c.logger.Error("Genesis compile failed", "kind", kind, "err", err)
		if c.observer != nil {
			c.observer.CompileFailed(kind, elapsed)
		}
		return nil, err
	}
	c.logger.Info("Compiled genesis", "validators", len(validators), "totalStake", total, "elapsed", elapsed)
	if c.observer != nil {
		c.observer.CompileSucceeded(len(validators), total, elapsed)
	}
	return doc, nil
}

func (c *Compiler) compile(validators []sysgen.Validator, configs ConfigList, template *Document, admin, proxyAdmin common.Address) (*Document, *uint256.Int, error) {
	vals, err := prepareValidators(validators)
	if err != nil {
		return nil, nil, err
	}
	if template == nil {
		return nil, nil, fail(KindValidation, "template", ErrEmptyField)
	}
	if admin == (common.Address{}) {
		return nil, nil, fail(KindValidation, "admin address", ErrEmptyField)
	}
	if proxyAdmin == (common.Address{}) {
		return nil, nil, fail(KindValidation, "proxy admin address", ErrEmptyField)
	}

	r := newRetargeter(admin, proxyAdmin)
	doc, err := r.document(template)
	if err != nil {
		return nil, nil, fail(KindValidation, "template", err)
	}
	configs = r.configs(configs)

	accounts := make(map[string]*Account, len(layout.SystemContracts))
	for _, sc := range layout.SystemContracts {
		_, acct, ok := doc.Account(sc.Address)
		if !ok || acct == nil {
			return nil, nil, fail(KindValidation, sc.Name, fmt.Errorf("%w: %s", ErrMissingAlloc, sc.Address.Hex()))
		}
		accounts[sc.Name] = acct
	}

	// Staking registry.
	staking := slots.NewMap()
	total := new(uint256.Int)
	for _, v := range vals {
		m, err := sysgen.BuildValidator(v, len(vals), admin)
		if err != nil {
			return nil, nil, fail(KindValidation, v.Label, err)
		}
		staking.Merge(m)
		if _, overflow := total.AddOverflow(total, v.Stake); overflow {
			return nil, nil, fail(KindOverflow, v.Label, ErrStakeOverflow)
		}
		c.logger.Debug("Laid down validator", "label", v.Label, "index", v.Index, "slots", m.Len())
	}
	staking.Merge(sysgen.StakingCounters(total))

	// Chain configuration registry.
	configs = configs.Set(layout.EpochStartTimestampKey, strconv.FormatInt(c.now().UnixMilli(), 10))
	chaincfg, err := sysgen.BuildChainConfig(configs, layout.StakingAddress)
	if err != nil {
		return nil, nil, fail(KindValidation, "configs", err)
	}

	// Rule manager: only the administrator word, when the template has one.
	rulemng := slots.NewMap()
	if err := patchAdministrator(rulemng, accounts["rulemng"], admin); err != nil {
		return nil, nil, fail(KindValidation, "rulemng", err)
	}

	storage := map[string]slots.Map{
		"staking":  staking,
		"chaincfg": chaincfg,
		"rulemng":  rulemng,
	}
	for _, sc := range layout.SystemContracts {
		m := storage[sc.Name]
		if err := sysgen.Bootstrap(m, sc, admin); err != nil {
			return nil, nil, fail(KindValidation, sc.Name, err)
		}
		mergeStorage(accounts[sc.Name], m)
		c.logger.Debug("Merged system contract storage", "contract", sc.Name, "address", sc.Address, "slots", m.Len())
	}
	accounts["staking"].Balance = total.Hex()

	adminKey, _, ok := doc.Account(admin)
	if !ok {
		adminKey = allocKey(admin)
	}
	doc.Alloc[adminKey] = &Account{Balance: layout.AdminAccountBalance, Nonce: "0x0"}

	doc.Configs = configs
	doc.Domains, err = domainRecords(vals)
	if err != nil {
		return nil, nil, fail(KindValidation, "domains", err)
	}
	return doc, total, nil
}

// prepareValidators copies the validator set, assigning ordinal indexes and
// rejecting anything BuildValidator would.
func prepareValidators(validators []sysgen.Validator) ([]sysgen.Validator, error) {
	if len(validators) == 0 {
		return nil, fail(KindValidation, "validators", ErrEmptyField)
	}
	vals := make([]sysgen.Validator, len(validators))
	seen := make(map[string]struct{}, len(validators))
	for i, v := range validators {
		v.Index = i
		if v.Stake != nil {
			v.Stake = v.Stake.Clone()
		}
		if err := v.Validate(); err != nil {
			return nil, fail(KindValidation, v.Label, err)
		}
		if _, dup := seen[v.Label]; dup {
			return nil, fail(KindValidation, v.Label, ErrDuplicateLabel)
		}
		seen[v.Label] = struct{}{}
		vals[i] = v
	}
	return vals, nil
}

// patchAdministrator writes the template's administrator word with its low 20
// bytes replaced by admin.
func patchAdministrator(m slots.Map, acct *Account, admin common.Address) error {
	slot := sysgen.RuleManagerAdministratorSlot()
	for k, v := range acct.Storage {
		key, ok := parseWord(k)
		if !ok || key != slot {
			continue
		}
		current, ok := parseWord(v)
		if !ok {
			return fmt.Errorf("%w: administrator word %q", ErrMalformedHex, v)
		}
		m.Set(slot, sysgen.SetAdministrator(current, admin))
		return nil
	}
	return nil
}

// mergeStorage writes m into the account storage key by key. Template keys that
// spell one of the written slots differently are replaced by the canonical
// spelling; all other template keys are left alone.
func mergeStorage(acct *Account, m slots.Map) {
	if acct.Storage == nil {
		acct.Storage = make(map[string]string, m.Len())
	}
	for k := range acct.Storage {
		if key, ok := parseWord(k); ok && k != key.Hex() {
			if _, written := m.Get(key); written {
				delete(acct.Storage, k)
			}
		}
	}
	for k, v := range m.Strings() {
		acct.Storage[k] = v
	}
}

func domainRecords(vals []sysgen.Validator) (map[string]DomainRecord, error) {
	out := make(map[string]DomainRecord, len(vals))
	for _, v := range vals {
		poolID, err := v.PoolID()
		if err != nil {
			return nil, err
		}
		out[v.Label] = DomainRecord{
			PubKey:            "0x" + trim0x(v.PublicKey),
			StabilizingPubKey: v.BLSPublicKey,
			Owner:             DomainOwner,
			Endpoints:         []string{v.Endpoint},
			Staking:           DomainStaking,
			CommissionRate:    DomainCommissionRate,
			NodeID:            common.Bytes2Hex(poolID[:]),
		}
	}
	return out, nil
}

// retargeter swaps the placeholder addresses baked into templates for the
// configured ones, wherever they appear as lowercase hex.
type retargeter struct {
	r *strings.Replacer
}

func newRetargeter(admin, proxyAdmin common.Address) *retargeter {
	return &retargeter{r: strings.NewReplacer(
		allocKey(layout.TemplateAdminAddress), allocKey(admin),
		allocKey(layout.TemplateProxyAdminAddress), allocKey(proxyAdmin),
	)}
}

// document returns a retargeted deep copy of d.
func (r *retargeter) document(d *Document) (*Document, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out, err := ParseDocument([]byte(r.r.Replace(string(raw))))
	if err != nil {
		return nil, err
	}
	if out.Alloc == nil {
		out.Alloc = make(map[string]*Account)
	}
	return out, nil
}

func (r *retargeter) configs(l ConfigList) ConfigList {
	out := make(ConfigList, len(l))
	for i, e := range l {
		out[i] = ConfigEntry{Key: e.Key, Value: r.r.Replace(e.Value)}
	}
	return out
}

// parseWord reads a storage key or value: 0x-prefixed hex of at most 64
// digits, left padded.
func parseWord(s string) (common.Hash, bool) {
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if h == "" || len(h) > 2*common.HashLength || !isHex(h) {
		return common.Hash{}, false
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	return common.BytesToHash(common.FromHex(h)), true
}

func trim0x(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
}
