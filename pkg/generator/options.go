package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/element"
	"github.com/Litote/kgenerator/pkg/model"
	"github.com/Litote/kgenerator/pkg/translator"
)

// Input formats.
const (
	FormatAuto       = ""
	FormatGo         = "go"
	FormatDescriptor = "descriptor"
)

// Default annotation kinds.
const (
	DefaultAnnotation element.AnnotationKind = "kgen.Entity"
	DefaultRegistry   element.AnnotationKind = "kgen.EntityRegistry"
)

// TagFilter makes a struct field transient when its tag Key contains Value.
type TagFilter struct {
	Key   string `json:"key" yaml:"key" mapstructure:"key"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// Options control one generation run.
//
// InDir                  – Go module directory or descriptor file to read
// InputFormat            – go, descriptor or empty to guess from InDir
// Patterns               – go/packages patterns, relative to InDir
// OutDir                 – source output root
// ClassOutDir            – resource output root, defaults to OutDir
// Generators             – names of the generators to run, in order
// Annotation             – direct marker annotation kind
// Registry               – registry annotation kind, empty disables registries
// NullableAnnotations    – nullability markers, default org.jetbrains.annotations.Nullable and kgen.Nullable
// NullableProducerBounds – force `out` projection bounds nullable
// UnsupportedModifiers   – modifiers excluding a field, default static and transient
// AccessorPrefix         – getter prefix, empty picks the input format default
// Renames                – renaming table entries layered over the built-in table
// NamespacePrefix        – prefix prepended to Go namespaces
// ExcludeByTags          – Go struct tag filters marking fields transient
// FailOnError            – report write failures as errors instead of warnings
// Debug                  – emit trace diagnostics
type Options struct {
	InDir                  string            `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	InputFormat            string            `json:"input_format,omitempty" yaml:"input_format,omitempty" toml:"input_format,omitempty" mapstructure:"input_format,omitempty"`
	Patterns               []string          `json:"patterns,omitempty" yaml:"patterns,omitempty" toml:"patterns,omitempty" mapstructure:"patterns,omitempty"`
	OutDir                 string            `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	ClassOutDir            string            `json:"class_out_dir,omitempty" yaml:"class_out_dir,omitempty" toml:"class_out_dir,omitempty" mapstructure:"class_out_dir,omitempty"`
	Generators             []string          `json:"generators,omitempty" yaml:"generators,omitempty" toml:"generators,omitempty" mapstructure:"generators,omitempty"`
	Annotation             string            `json:"annotation,omitempty" yaml:"annotation,omitempty" toml:"annotation,omitempty" mapstructure:"annotation,omitempty"`
	Registry               string            `json:"registry,omitempty" yaml:"registry,omitempty" toml:"registry,omitempty" mapstructure:"registry,omitempty"`
	NullableAnnotations    []string          `json:"nullable_annotations,omitempty" yaml:"nullable_annotations,omitempty" toml:"nullable_annotations,omitempty" mapstructure:"nullable_annotations,omitempty"`
	NullableProducerBounds bool              `json:"nullable_producer_bounds,omitempty" yaml:"nullable_producer_bounds,omitempty" toml:"nullable_producer_bounds,omitempty" mapstructure:"nullable_producer_bounds,omitempty"`
	UnsupportedModifiers   []string          `json:"unsupported_modifiers,omitempty" yaml:"unsupported_modifiers,omitempty" toml:"unsupported_modifiers,omitempty" mapstructure:"unsupported_modifiers,omitempty"`
	AccessorPrefix         string            `json:"accessor_prefix,omitempty" yaml:"accessor_prefix,omitempty" toml:"accessor_prefix,omitempty" mapstructure:"accessor_prefix,omitempty"`
	Renames                map[string]string `json:"renames,omitempty" yaml:"renames,omitempty" toml:"renames,omitempty" mapstructure:"renames,omitempty"`
	NamespacePrefix        string            `json:"namespace_prefix,omitempty" yaml:"namespace_prefix,omitempty" toml:"namespace_prefix,omitempty" mapstructure:"namespace_prefix,omitempty"`
	ExcludeByTags          []TagFilter       `json:"exclude_by_tags,omitempty" yaml:"exclude_by_tags,omitempty" toml:"exclude_by_tags,omitempty" mapstructure:"exclude_by_tags,omitempty"`
	FailOnError            bool              `json:"fail_on_error,omitempty" yaml:"fail_on_error,omitempty" toml:"fail_on_error,omitempty" mapstructure:"fail_on_error,omitempty"`
	Debug                  bool              `json:"debug,omitempty" yaml:"debug,omitempty" toml:"debug,omitempty" mapstructure:"debug,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:       ".",
		Patterns:    []string{"./..."},
		OutDir:      "generated",
		Generators:  []string{"kotlin"},
		Annotation:  string(DefaultAnnotation),
		Registry:    string(DefaultRegistry),
		FailOnError: true,
	}
}

// Normalize fills defaults and parses key:value tag filter strings.
func (o *Options) Normalize(excludeByTagsStrings ...string) error {
	for _, s := range excludeByTagsStrings {
		key, val, ok := strings.Cut(s, ":")
		if !ok || key == "" {
			return fmt.Errorf("invalid tag filter %q, expected key:value", s)
		}
		o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{Key: key, Value: strings.Trim(val, `"`)})
	}
	if o.InDir == "" {
		o.InDir = "."
	}
	if strings.Contains(o.InDir, ".") {
		o.InDir, _ = filepath.Abs(o.InDir)
	}
	if o.InputFormat == FormatAuto {
		o.InputFormat = guessFormat(o.InDir)
	}
	if o.InputFormat != FormatGo && o.InputFormat != FormatDescriptor {
		return fmt.Errorf("unknown input format %q", o.InputFormat)
	}
	if len(o.Patterns) == 0 {
		o.Patterns = []string{"./..."}
	}
	if o.OutDir == "" {
		o.OutDir = "generated"
	}
	if o.ClassOutDir == "" {
		o.ClassOutDir = o.OutDir
	}
	if len(o.Generators) == 0 {
		o.Generators = []string{"kotlin"}
	}
	if o.Annotation == "" {
		o.Annotation = string(DefaultAnnotation)
	}
	if o.AccessorPrefix == "" && o.InputFormat == FormatDescriptor {
		o.AccessorPrefix = model.DefaultAccessorPrefix
	}
	return nil
}

func guessFormat(in string) string {
	switch strings.ToLower(filepath.Ext(in)) {
	case ".yaml", ".yml":
		return FormatDescriptor
	}
	return FormatGo
}

// Translator builds the translator configured by o over table.
func (o *Options) Translator(table translator.Renames, report *diag.Reporter) *translator.Translator {
	opts := []translator.Option{
		translator.WithTable(table),
		translator.WithRenames(o.Renames),
		translator.WithReporter(report),
	}
	if len(o.NullableAnnotations) > 0 {
		kinds := make([]element.AnnotationKind, 0, len(o.NullableAnnotations))
		for _, n := range o.NullableAnnotations {
			kinds = append(kinds, element.AnnotationKind(n))
		}
		opts = append(opts, translator.WithNullableAnnotations(kinds...))
	}
	if o.NullableProducerBounds {
		opts = append(opts, translator.WithNullableProducerBounds())
	}
	return translator.New(opts...)
}

// ModelOptions returns the Env options configured by o.
func (o *Options) ModelOptions(report *diag.Reporter) []model.EnvOption {
	opts := []model.EnvOption{
		model.WithAccessorPrefix(o.AccessorPrefix),
		model.WithEnvReporter(report),
	}
	if len(o.UnsupportedModifiers) > 0 {
		opts = append(opts, model.WithUnsupportedModifiers(element.ParseModifiers(o.UnsupportedModifiers...)...))
	}
	return opts
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option           { return func(o *Options) { o.InDir = d } }
func WithInputFormat(f string) Option     { return func(o *Options) { o.InputFormat = f } }
func WithOutDir(d string) Option          { return func(o *Options) { o.OutDir = d } }
func WithClassOutDir(d string) Option     { return func(o *Options) { o.ClassOutDir = d } }
func WithAnnotation(kind string) Option   { return func(o *Options) { o.Annotation = kind } }
func WithRegistry(kind string) Option     { return func(o *Options) { o.Registry = kind } }
func WithAccessorPrefix(p string) Option  { return func(o *Options) { o.AccessorPrefix = p } }
func WithNamespacePrefix(p string) Option { return func(o *Options) { o.NamespacePrefix = p } }
func WithNullableProducerBounds() Option {
	return func(o *Options) { o.NullableProducerBounds = true }
}
func WithDebug() Option                      { return func(o *Options) { o.Debug = true } }
func WithFailOnError(fail bool) Option       { return func(o *Options) { o.FailOnError = fail } }
func WithGenerators(names ...string) Option  { return func(o *Options) { o.Generators = names } }
func WithPatterns(patterns ...string) Option { return func(o *Options) { o.Patterns = patterns } }
func WithNullableAnnotations(kinds ...string) Option {
	return func(o *Options) { o.NullableAnnotations = append(o.NullableAnnotations, kinds...) }
}
func WithUnsupportedModifiers(ms ...string) Option {
	return func(o *Options) { o.UnsupportedModifiers = ms }
}
func WithRename(source, target string) Option {
	return func(o *Options) {
		if o.Renames == nil {
			o.Renames = map[string]string{}
		}
		o.Renames[source] = target
	}
}
func WithExcludeByTag(key, val string) Option {
	return func(o *Options) { o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{key, val}) }
}
