package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Litote/kgenerator/pkg/action/generate"
	"github.com/Litote/kgenerator/pkg/diag"
	"github.com/Litote/kgenerator/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

// generationFlags are the flags shared by the commands running the generators. Each flag
// is bound to its configuration key when the command runs, so the commands do not shadow
// each other's bindings.
type generationFlags struct {
	fs          *pflag.FlagSet
	excludeTags []string
}

// flag name to configuration key
var generationKeys = map[string]string{
	"input":                    "in_dir",
	"input-format":             "input_format",
	"patterns":                 "patterns",
	"output-directory":         "out_dir",
	"class-output-directory":   "class_out_dir",
	"generators":               "generators",
	"annotation":               "annotation",
	"registry":                 "registry",
	"nullable-annotations":     "nullable_annotations",
	"nullable-producer-bounds": "nullable_producer_bounds",
	"unsupported-modifiers":    "unsupported_modifiers",
	"accessor-prefix":          "accessor_prefix",
	"namespace-prefix":         "namespace_prefix",
	"fail-on-error":            "fail_on_error",
	"debug":                    "debug",
}

func newGenerationFlags(fs *pflag.FlagSet) *generationFlags {
	d := generator.NewOptions()
	g := &generationFlags{fs: fs}
	fs.StringP("input", "i", d.InDir, "go module directory or declaration descriptor file to read")
	fs.String("input-format", d.InputFormat, "input format (go, descriptor), guessed from the input when empty")
	fs.StringSlice("patterns", d.Patterns, "go package patterns, relative to the input directory")
	fs.StringP("output-directory", "o", d.OutDir, "directory to write generated sources")
	fs.String("class-output-directory", d.ClassOutDir, "directory to write generated resources, defaults to the output directory")
	fs.StringSliceP("generators", "g", d.Generators, "generators to run, in order ("+strings.Join(generate.Generators(), ", ")+")")
	fs.StringP("annotation", "a", d.Annotation, "annotation kind marking classes for generation")
	fs.String("registry", d.Registry, "annotation kind listing classes for generation, empty disables registries")
	fs.StringSlice("nullable-annotations", d.NullableAnnotations, "annotation kinds marking nullable types")
	fs.Bool("nullable-producer-bounds", d.NullableProducerBounds, "make out projection bounds nullable")
	fs.StringSlice("unsupported-modifiers", d.UnsupportedModifiers, "modifiers excluding a field from the properties")
	fs.String("accessor-prefix", d.AccessorPrefix, "getter name prefix, empty picks the input format default")
	fs.String("namespace-prefix", d.NamespacePrefix, "prefix prepended to namespaces derived from go import paths")
	fs.Bool("fail-on-error", d.FailOnError, "report output write failures as errors")
	fs.BoolP("debug", "d", d.Debug, "emit debug traces")
	fs.StringSliceVarP(&g.excludeTags, "exclude-tags", "T", []string{}, "make struct fields with matching tags transient, ex: gorm:\"-\"")
	return g
}

// options binds the flags and reads the merged configuration.
func (g *generationFlags) options() (*generator.Options, error) {
	for name, key := range generationKeys {
		if err := viper.BindPFlag(key, g.fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	opts := generator.NewOptions()
	if err := viper.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	if err := opts.Normalize(g.excludeTags...); err != nil {
		return nil, err
	}
	return opts, nil
}

func reporter(opts *generator.Options) *diag.Reporter {
	return diag.New(slog.Default(), opts.Debug)
}

func NewGenerateCommand() *cobra.Command {
	var flags *generationFlags

	// generateCmd represents the kgenerator generate command
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate property references",
		Long:  "Discover annotated classes and run the generators over them",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			slog.With("input", opts.InDir, "format", opts.InputFormat, "generators", opts.Generators).Debug("generating")
			res, err := generate.Run(c.Context(), opts, reporter(opts))
			if err != nil {
				return err
			}
			if res.Errors > 0 {
				return fmt.Errorf("generation reported %d error(s)", res.Errors)
			}
			return nil
		},
	}
	flags = newGenerationFlags(generateCmd.Flags())

	return generateCmd
}
