package yamljson

import (
	ierrors "github.com/corewell/yamljson/internal/errors"
	"github.com/go-playground/validator/v10"
)

// config is the resolved, validated set of knobs every conversion runs
// against. It is never exposed directly; callers build one through
// Option values passed to the four entry points.
type config struct {
	JSONIndent         int `validate:"gte=0,lte=8"`
	YAMLIndent         int `validate:"gte=2,lte=8"`
	YesNoBool          bool
	AllowDuplicateKeys bool
	MergeKeyName       string `validate:"required"`
	StrictTags         bool
}

// Option configures a conversion. Options compose: later options in the
// argument list override earlier ones.
type Option func(*config)

// WithJSONIndent sets the number of spaces per nesting level in emitted
// JSON text, 0..8. 0 produces compact, single-line JSON.
func WithJSONIndent(n int) Option {
	return func(c *config) { c.JSONIndent = n }
}

// WithYAMLIndent sets the number of spaces per nesting level in emitted
// YAML text, 2..8.
func WithYAMLIndent(n int) Option {
	return func(c *config) { c.YAMLIndent = n }
}

// WithYesNoBool controls whether "yes"/"no" are recognized as booleans
// when parsing YAML, and whether booleans render as "yes"/"no" when
// emitting it. Defaults to on.
func WithYesNoBool(b bool) Option {
	return func(c *config) { c.YesNoBool = b }
}

// WithAllowDuplicateKeys controls whether two sibling mapping entries
// sharing a key are an error (the default) or permitted, in which case
// every entry is written to the emitted JSON text in source order, and
// YAMLToJSONValue's decoder keeps the later value.
func WithAllowDuplicateKeys(b bool) Option {
	return func(c *config) { c.AllowDuplicateKeys = b }
}

// WithMergeKeyName rebinds the merge-key literal away from the
// YAML-standard "<<", for callers whose documents use a different
// convention. Defaults to "<<".
func WithMergeKeyName(name string) Option {
	return func(c *config) { c.MergeKeyName = name }
}

// WithStrictTags controls what happens when an explicit tag conflicts
// with the value it's attached to (e.g. "!!int" on "abc"). When true
// (the default) this is an error; when false the value falls back to a
// plain string. A "!!binary" value that is not valid base64 is an error
// either way.
func WithStrictTags(b bool) Option {
	return func(c *config) { c.StrictTags = b }
}

var validate = validator.New()

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		JSONIndent:   2,
		YAMLIndent:   2,
		YesNoBool:    true,
		MergeKeyName: "<<",
		StrictTags:   true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, ierrors.Wrapf(err, "yamljson: invalid option")
	}
	return cfg, nil
}

// ValidateStruct runs the same validator instance used for internal
// option validation against an arbitrary struct, so callers who decode
// a converted document into a typed Go value can reuse its "validate"
// struct tags and get the same wrapped error shape.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return ierrors.Wrapf(err, "yamljson: validation failed")
	}
	return nil
}
