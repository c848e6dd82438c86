package highlight

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when the configured options cannot be used.
var ErrInvalidConfig = errors.New("invalid highlight config")

// Registry is the ordered, read-only set of configured options.
type Registry struct {
	options []Option
	byModel map[string]int
	byClass map[string]int
}

// NewRegistry validates options and builds a registry. Model values and
// classes must be unique since they are lookup keys in opposite directions.
func NewRegistry(options []Option) (*Registry, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: no options configured", ErrInvalidConfig)
	}

	r := &Registry{
		options: make([]Option, 0, len(options)),
		byModel: make(map[string]int, len(options)),
		byClass: make(map[string]int, len(options)),
	}
	for i, opt := range options {
		if err := opt.Validate(); err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}
		if prev, exists := r.byModel[opt.Model]; exists {
			return nil, fmt.Errorf("%w: model %q used by options %d and %d", ErrInvalidConfig, opt.Model, prev, i)
		}
		if prev, exists := r.byClass[opt.Class]; exists {
			return nil, fmt.Errorf("%w: class %q used by options %d and %d", ErrInvalidConfig, opt.Class, prev, i)
		}
		r.byModel[opt.Model] = i
		r.byClass[opt.Class] = i
		r.options = append(r.options, opt)
	}
	return r, nil
}

// ByModel returns the option with the given model value.
func (r *Registry) ByModel(value string) (Option, bool) {
	i, ok := r.byModel[value]
	if !ok {
		return Option{}, false
	}
	return r.options[i], true
}

// ByClass returns the option rendered with class.
func (r *Registry) ByClass(class string) (Option, bool) {
	i, ok := r.byClass[class]
	if !ok {
		return Option{}, false
	}
	return r.options[i], true
}

// All returns the options in configuration order.
func (r *Registry) All() []Option {
	return append([]Option(nil), r.options...)
}

// Len returns the number of options.
func (r *Registry) Len() int { return len(r.options) }

func (r *Registry) validateValue(value string) error {
	if _, ok := r.byModel[value]; !ok {
		return fmt.Errorf("unknown highlight value %q", value)
	}
	return nil
}
