package genesis

import (
	"errors"
	"fmt"

	"github.com/zircuit-labs/zkr-go-common/xerrors/stacktrace"

	"github.com/zircuit-labs/genesis-ops/core/slots"
	"github.com/zircuit-labs/genesis-ops/core/sysgen"
)

// Kind classifies compile failures. None of them is retryable.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindKeyMaterial
	KindEncodingBound
	KindOverflow
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindKeyMaterial:
		return "key material"
	case KindEncodingBound:
		return "encoding bound"
	case KindOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	ErrEmptyField     = sysgen.ErrEmptyField
	ErrMalformedHex   = sysgen.ErrMalformedHex
	ErrAddressLength  = errors.New("address must be 20 bytes")
	ErrMissingAlloc   = errors.New("template has no alloc entry for system contract")
	ErrStakeOverflow  = errors.New("aggregate stake overflows 256 bits")
	ErrDuplicateLabel = errors.New("duplicate validator label")
	ErrConfigValue    = errors.New("config value must be a string")
)

// Error is returned by every failing compile. Subject names the input that
// was rejected (a validator label, a contract, a config key).
type Error struct {
	Kind    Kind
	Subject string
	Err     error
}

// NewError creates a new instance of Error with the specified details.
func NewError(kind Kind, subject string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("genesis %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("genesis %s error (%s): %v", e.Kind, e.Subject, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of a compile error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// fail wraps err into a stack-traced *Error. Encoding bound violations keep
// their own kind whatever the caller asked for.
func fail(kind Kind, subject string, err error) error {
	if errors.Is(err, slots.ErrStringTooLong) {
		kind = KindEncodingBound
	}
	return stacktrace.Wrap(NewError(kind, subject, err))
}
