// Package genesis assembles the genesis document of a network: it lays the
// system contract storage computed by sysgen over a template allocation and
// records the validator set.
package genesis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/zircuit-labs/genesis-ops/core/slots"
	"github.com/zircuit-labs/genesis-ops/core/sysgen"
)

// ConfigEntry is one chain configuration pair.
type ConfigEntry = sysgen.ConfigEntry

// ConfigList is the chain configuration in document order. Storage addresses
// of the entries follow that order, so it survives JSON round trips.
type ConfigList []ConfigEntry

// Get returns the value of key.
func (l ConfigList) Get(key string) (string, bool) {
	for _, e := range l {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Set overwrites key in place, or appends it when absent.
func (l ConfigList) Set(key, value string) ConfigList {
	for i := range l {
		if l[i].Key == key {
			l[i].Value = value
			return l
		}
	}
	return append(l, ConfigEntry{Key: key, Value: value})
}

// Clone returns an independent copy of l.
func (l ConfigList) Clone() ConfigList {
	if l == nil {
		return nil
	}
	return append(ConfigList(nil), l...)
}

// MarshalJSON writes l as a JSON object keeping entry order.
func (l ConfigList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of strings in document order. A repeated
// key keeps its first position and its last value.
func (l *ConfigList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("configs: expected object, got %v", tok)
	}
	out := ConfigList{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s", ErrConfigValue, key)
		}
		out = out.Set(key, s)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

// Account is one alloc entry. Fields the compiler does not know about are
// kept in Extra and written back unchanged.
type Account struct {
	Balance string
	Nonce   string
	Code    string
	Storage map[string]string
	Extra   map[string]json.RawMessage
}

// StorageMap parses the account storage into words. Keys and values may use
// any spelling of a 0x-prefixed word of at most 64 hex digits.
func (a *Account) StorageMap() (slots.Map, error) {
	m := slots.NewMap()
	for k, v := range a.Storage {
		key, ok := parseWord(k)
		if !ok {
			return nil, fmt.Errorf("%w: storage key %q", ErrMalformedHex, k)
		}
		value, ok := parseWord(v)
		if !ok {
			return nil, fmt.Errorf("%w: storage value %q at %s", ErrMalformedHex, v, k)
		}
		m.Set(key, value)
	}
	return m, nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	out := maps.Clone(a.Extra)
	if out == nil {
		out = make(map[string]json.RawMessage)
	}
	if err := putField(out, "balance", a.Balance, a.Balance != ""); err != nil {
		return nil, err
	}
	if err := putField(out, "nonce", a.Nonce, a.Nonce != ""); err != nil {
		return nil, err
	}
	if err := putField(out, "code", a.Code, a.Code != ""); err != nil {
		return nil, err
	}
	if err := putField(out, "storage", a.Storage, a.Storage != nil); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Account{}
	for _, f := range []struct {
		name string
		dst  any
	}{
		{"balance", &a.Balance},
		{"nonce", &a.Nonce},
		{"code", &a.Code},
		{"storage", &a.Storage},
	} {
		if err := takeField(raw, f.name, f.dst); err != nil {
			return err
		}
	}
	if len(raw) > 0 {
		a.Extra = raw
	}
	return nil
}

// DomainRecord is the public record of one validator in the document.
type DomainRecord struct {
	PubKey            string   `json:"pubkey"`
	StabilizingPubKey string   `json:"stabilizing_pubkey"`
	Owner             string   `json:"owner"`
	Endpoints         []string `json:"endpoints"`
	Staking           string   `json:"staking"`
	CommissionRate    string   `json:"commission_rate"`
	NodeID            string   `json:"node_id"`
}

// Document is a genesis document. Top-level fields other than alloc, configs
// and domains are kept in Extra.
type Document struct {
	Alloc   map[string]*Account
	Configs ConfigList
	Domains map[string]DomainRecord
	Extra   map[string]json.RawMessage
}

// ParseDocument decodes a genesis document or template.
func ParseDocument(data []byte) (*Document, error) {
	doc := new(Document)
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Account returns the alloc entry of addr and the key it is stored under.
// Keys are matched as addresses, with or without 0x and in any case.
func (d *Document) Account(addr common.Address) (string, *Account, bool) {
	for k, a := range d.Alloc {
		if parsed, err := ParseAddress(k); err == nil && parsed == addr {
			return k, a, true
		}
	}
	return "", nil, false
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := maps.Clone(d.Extra)
	if out == nil {
		out = make(map[string]json.RawMessage)
	}
	if err := putField(out, "alloc", d.Alloc, d.Alloc != nil); err != nil {
		return nil, err
	}
	if err := putField(out, "configs", d.Configs, d.Configs != nil); err != nil {
		return nil, err
	}
	if err := putField(out, "domains", d.Domains, d.Domains != nil); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{}
	if err := takeField(raw, "alloc", &d.Alloc); err != nil {
		return err
	}
	if err := takeField(raw, "configs", &d.Configs); err != nil {
		return err
	}
	if err := takeField(raw, "domains", &d.Domains); err != nil {
		return err
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

// ParseAddress accepts a 20-byte hex address with or without 0x.
func ParseAddress(s string) (common.Address, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(h) != 2*common.AddressLength {
		return common.Address{}, fmt.Errorf("%w: %q", ErrAddressLength, s)
	}
	if !isHex(h) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrMalformedHex, s)
	}
	return common.HexToAddress(h), nil
}

// allocKey is the alloc key spelling used for accounts the compiler adds.
func allocKey(addr common.Address) string {
	return strings.ToLower(strings.TrimPrefix(addr.Hex(), "0x"))
}

func putField(out map[string]json.RawMessage, name string, v any, present bool) error {
	if !present {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	out[name] = b
	return nil
}

func takeField(raw map[string]json.RawMessage, name string, dst any) error {
	b, ok := raw[name]
	if !ok {
		return nil
	}
	delete(raw, name)
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func isHex(s string) bool {
	for _, c := range []byte(s) {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
