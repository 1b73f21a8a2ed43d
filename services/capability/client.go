package capability

import (
	"context"
	"errors"
	"fmt"

	"lessontutor/models"
)

var (
	ErrSchemaViolation = errors.New("output does not match schema")
	ErrEmptyResponse   = errors.New("empty response from model")
)

// Client is the text and structured generation service the tutor relies on.
type Client interface {
	Generate(ctx context.Context, messages []models.Message, opts ...Option) (string, error)
	GenerateStructured(ctx context.Context, messages []models.Message, schema Schema, out any, opts ...Option) error
}

// Error reports a failed capability call. Every failure surfaced by a Client
// is an *Error.
type Error struct {
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Options struct {
	Strict      bool
	Temperature float64
}

type Option func(*Options)

func WithStrict(strict bool) Option {
	return func(o *Options) {
		o.Strict = strict
	}
}

func WithTemperature(temperature float64) Option {
	return func(o *Options) {
		o.Temperature = temperature
	}
}

func applyOptions(opts []Option) Options {
	o := Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
