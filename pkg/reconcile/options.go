package reconcile

import (
	"github.com/agentstation/gradesync/pkg/errors"
)

// DuplicatePolicy decides what happens when a local dataset lists the same
// identifier more than once.
type DuplicatePolicy string

const (
	// LastWins keeps the score from the last row carrying the identifier.
	LastWins DuplicatePolicy = "last"
	// FirstWins keeps the score from the first row carrying the identifier.
	FirstWins DuplicatePolicy = "first"
	// RejectDuplicates fails the load with a DuplicateError.
	RejectDuplicates DuplicatePolicy = "error"
)

// ParseDuplicatePolicy converts a flag value into a DuplicatePolicy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case LastWins, FirstWins, RejectDuplicates:
		return p, nil
	case "":
		return LastWins, nil
	default:
		return "", &errors.ValidationError{
			Field:   "duplicates",
			Value:   s,
			Message: "must be one of last, first, error",
		}
	}
}

// options configures a reconciliation run.
type options struct {
	duplicates DuplicatePolicy
	source     string
}

func defaultOptions() *options {
	return &options{
		duplicates: LastWins,
		source:     "local dataset",
	}
}

// Option is a function that configures Reconcile.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithDuplicatePolicy sets how duplicate local identifiers are resolved.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(o *options) error {
		p, err := ParseDuplicatePolicy(string(policy))
		if err != nil {
			return err
		}
		o.duplicates = p
		return nil
	}
}

// WithSource names the local dataset in errors and logs.
func WithSource(name string) Option {
	return func(o *options) error {
		if name != "" {
			o.source = name
		}
		return nil
	}
}
