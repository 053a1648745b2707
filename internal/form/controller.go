// Package form holds the per-form controller: it owns field values and error state,
// validates on submit and hands valid values to a Forwarder.
package form

import (
	"context"
	"errors"
	"strings"

	"learnhub/internal/validation"
)

// FormErrorKey holds errors that belong to the whole form rather than one field.
const FormErrorKey = "form"

var ErrUnknownField = errors.New("form: unknown field")

type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Outcome reports whether a submission reached the Forwarder.
type Outcome int

const (
	Skipped Outcome = iota
	Forwarded
)

func (o Outcome) String() string {
	if o == Forwarded {
		return "forwarded"
	}
	return "skipped"
}

type Kind int

const (
	Text Kind = iota
	Password
	Checkbox
)

type Field struct {
	Name  string
	Value string
	Kind  Kind
}

// Masked reports whether the value must not be echoed back to the user.
func (f Field) Masked() bool {
	return f.Kind == Password
}

// Checked is the checkbox interpretation of the value.
func (f Field) Checked() bool {
	switch strings.ToLower(f.Value) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Forwarder receives a snapshot of valid field values.
type Forwarder func(ctx context.Context, values map[string]string) error

// ErrorPolicy decides what happens to an error returned by the Forwarder.
type ErrorPolicy int

const (
	// DiscardForwardErrors dispatches the forward without waiting and drops its error.
	DiscardForwardErrors ErrorPolicy = iota
	// SurfaceForwardErrors waits for the forward and stores its error under FormErrorKey.
	SurfaceForwardErrors
)

// ParseErrorPolicy maps a config value to a policy. Anything but "surface" discards.
func ParseErrorPolicy(s string) ErrorPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "surface") {
		return SurfaceForwardErrors
	}
	return DiscardForwardErrors
}

type Option func(*Controller)

func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// Controller is not safe for concurrent use. Create one per rendered form.
type Controller struct {
	fields  []Field
	index   map[string]int
	schema  *validation.Schema
	forward Forwarder
	policy  ErrorPolicy
	state   State
	errs    validation.FieldErrors
}

func New(schema *validation.Schema, forward Forwarder, fields []Field, opts ...Option) *Controller {
	c := &Controller{
		fields:  make([]Field, len(fields)),
		index:   make(map[string]int, len(fields)),
		schema:  schema,
		forward: forward,
	}

	copy(c.fields, fields)
	for i, f := range c.fields {
		c.index[f.Name] = i
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Set updates a field in place. Validation waits for Submit.
func (c *Controller) Set(name, value string) error {
	i, ok := c.index[name]
	if !ok {
		return ErrUnknownField
	}
	c.fields[i].Value = value
	return nil
}

// Load sets every known field from values, clearing the ones that are absent.
// Unknown keys are ignored, so a whole request body can be passed in.
func (c *Controller) Load(values map[string]string) {
	for i := range c.fields {
		c.fields[i].Value = values[c.fields[i].Name]
	}
}

// Submit validates the current values and forwards them when they are valid.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.state = Submitting
	defer func() { c.state = Idle }()

	values := c.snapshot()

	result := c.schema.Validate(values)
	if !result.OK() {
		c.errs = result.Errors()
		return Skipped
	}
	c.errs = nil

	if c.policy == SurfaceForwardErrors {
		if err := c.forward(ctx, values); err != nil {
			c.errs = validation.FieldErrors{FormErrorKey: {err.Error()}}
		}
		return Forwarded
	}

	// Outlives the request: no cancellation, no result.
	detached := context.WithoutCancel(ctx)
	go func() {
		_ = c.forward(detached, values)
	}()

	return Forwarded
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Errors() validation.FieldErrors {
	return c.errs
}

func (c *Controller) Field(name string) (Field, bool) {
	i, ok := c.index[name]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

// Fields returns a copy of the fields in declaration order.
func (c *Controller) Fields() []Field {
	fields := make([]Field, len(c.fields))
	copy(fields, c.fields)
	return fields
}

// Value is the current value of a field, or "" when the field does not exist.
func (c *Controller) Value(name string) string {
	f, _ := c.Field(name)
	return f.Value
}

// snapshot copies values out of the fields; request buffers may be reused once the
// handler returns.
func (c *Controller) snapshot() map[string]string {
	values := make(map[string]string, len(c.fields))
	for _, f := range c.fields {
		values[f.Name] = strings.Clone(f.Value)
	}
	return values
}
