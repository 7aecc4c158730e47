// Package hydrate decodes JSON documents into the JSON-like values the
// flattener walks: map[string]any, []any and scalars.
package hydrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Source names the document being decoded in errors and hooks.
type Source struct {
	Name string
}

func (s Source) label() string {
	if s.Name == "" {
		return "<input>"
	}
	return s.Name
}

// PreHook rewrites a decoded document before it is returned. Returning nil
// keeps the current value.
type PreHook func(Source, any) (any, error)

// PostHook validates the final document.
type PostHook func(Source, any) error

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// Decoder reads one JSON document per call.
type Decoder struct {
	useNumber     bool
	allowTrailing bool
	preHooks      []PreHook
	postHooks     []PostHook
	configureDec  []func(*json.Decoder)
}

// WithUseNumber keeps numbers as json.Number so integers beyond 2^53 and
// literal forms like 1.50 survive.
func WithUseNumber() DecoderOption {
	return func(d *Decoder) {
		d.useNumber = true
	}
}

// WithTrailingData accepts input that continues after the first document.
func WithTrailingData() DecoderOption {
	return func(d *Decoder) {
		d.allowTrailing = true
	}
}

func WithPreHook(hook PreHook) DecoderOption {
	return func(d *Decoder) {
		if hook != nil {
			d.preHooks = append(d.preHooks, hook)
		}
	}
}

func WithPostHook(hook PostHook) DecoderOption {
	return func(d *Decoder) {
		if hook != nil {
			d.postHooks = append(d.postHooks, hook)
		}
	}
}

// WithDecoderConfig exposes the underlying json.Decoder.
func WithDecoderConfig(configure func(*json.Decoder)) DecoderOption {
	return func(d *Decoder) {
		if configure != nil {
			d.configureDec = append(d.configureDec, configure)
		}
	}
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode reads a single document from r and applies the configured hooks.
func (d *Decoder) Decode(src Source, r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	if d.useNumber {
		decoder.UseNumber()
	}
	for _, configure := range d.configureDec {
		configure(decoder)
	}

	var value any
	if err := decoder.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("hydrate: %s: empty document", src.label())
		}
		return nil, fmt.Errorf("hydrate: decode %s: %w", src.label(), err)
	}
	if !d.allowTrailing {
		if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("hydrate: %s: unexpected data after document", src.label())
		}
	}

	for _, hook := range d.preHooks {
		next, err := hook(src, value)
		if err != nil {
			return nil, fmt.Errorf("hydrate: pre-hook for %s failed: %w", src.label(), err)
		}
		if next != nil {
			value = next
		}
	}
	for _, hook := range d.postHooks {
		if err := hook(src, value); err != nil {
			return nil, fmt.Errorf("hydrate: post-hook for %s failed: %w", src.label(), err)
		}
	}
	return value, nil
}

// DecodeBytes decodes data.
func (d *Decoder) DecodeBytes(src Source, data []byte) (any, error) {
	return d.Decode(src, bytes.NewReader(data))
}

// DecodeFile decodes the file at path, using the path as the source name.
func (d *Decoder) DecodeFile(path string) (any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hydrate: open %q: %w", path, err)
	}
	defer file.Close()
	return d.Decode(Source{Name: path}, file)
}

// RequireContainer is a PostHook rejecting documents whose root is not an
// object or array.
func RequireContainer(src Source, value any) error {
	switch value.(type) {
	case map[string]any, []any:
		return nil
	default:
		return fmt.Errorf("%s: root must be an object or array, got %T", src.label(), value)
	}
}
