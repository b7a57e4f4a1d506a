package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/toyz/nestgen/internal/errors"
	"github.com/toyz/nestgen/internal/models"
	"github.com/toyz/nestgen/internal/prompt"
	"github.com/toyz/nestgen/internal/utils"
)

const longHelp = `Generate a NestJS CRUD module for a model and register it in the root module.

Writes a TypeORM entity, create/update DTOs, a service, a controller and a
module under <modelsRoot>/<plural>/, optionally a faker seeder, then imports the
new module into the composition root (src/app.module.ts by default).

Fields come from the first source that provides them: --schema, --fields,
--interactive, or defaults inferred from the model name.

Field DSL:    name[:type[:modifier...]]   types string|number|boolean,
              modifiers required|optional|unique (string, required by default)
Relation DSL: name:kind:target            kinds one-to-many|many-to-one|many-to-many`

const examples = `  nestgen blog
  nestgen product --seed 50
  nestgen category --seed
  nestgen post --fields "title,body:string,views:number:optional" --relations "tags:many-to-many:tag"
  nestgen post --schema post.yaml --dry-run`

// Option customizes the root command, mostly for tests
type Option func(*rootOptions)

type rootOptions struct {
	out    io.Writer
	errOut io.Writer
	driver prompt.PromptDriver
}

// WithOutput redirects all output away from the process streams
func WithOutput(out, errOut io.Writer) Option {
	return func(o *rootOptions) {
		o.out = out
		o.errOut = errOut
	}
}

// WithPrompts answers --interactive questions through driver
func WithPrompts(driver prompt.PromptDriver) Option {
	return func(o *rootOptions) {
		o.driver = driver
	}
}

type flagValues struct {
	seed        int
	fields      string
	relations   string
	schema      string
	config      string
	root        string
	interactive bool
	dryRun      bool
	strict      bool
	noPreflight bool
	verbose     bool
	quiet       bool
}

// NewRootCmd builds the nestgen command
func NewRootCmd(opts ...Option) *cobra.Command {
	o := &rootOptions{}
	for _, opt := range opts {
		opt(o)
	}
	var flags flagValues

	cmd := &cobra.Command{
		Use:           "nestgen <model-name> [flags]",
		Short:         "Scaffold a NestJS CRUD module from a model description",
		Long:          longHelp,
		Example:       examples,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(cmd, args, flags)
			if err != nil {
				return err
			}

			diagnostics := o.newDiagnostics(flags)
			config, err := LoadConfig(flags.root, flags.config)
			if err != nil {
				reportError(diagnostics, err)
				return err
			}
			config.DryRun = flags.dryRun
			config.Verbose = flags.verbose
			config.StrictRegistration = config.StrictRegistration || flags.strict
			config.SkipPreflight = config.SkipPreflight || flags.noPreflight

			gen := NewGenerator(config, diagnostics)
			if o.driver != nil {
				gen.WithPromptDriver(o.driver)
			}
			if err := gen.Run(cmd.Context(), req); err != nil {
				if errors.IsUsage(err) {
					return err
				}
				reportError(diagnostics, err)
				return err
			}
			return nil
		},
	}

	if o.out != nil {
		cmd.SetOut(o.out)
		cmd.SetErr(o.errOut)
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUsageError("%v", err)
	})

	f := cmd.Flags()
	f.IntVar(&flags.seed, "seed", 0, "generate a faker seeder with N records (default 10 when given without a value)")
	f.Lookup("seed").NoOptDefVal = strconv.Itoa(models.DefaultSeedCount)
	f.StringVar(&flags.fields, "fields", "", "field DSL, e.g. \"title,views:number:optional\"")
	f.StringVar(&flags.relations, "relations", "", "relation DSL, e.g. \"tags:many-to-many:tag\"")
	f.StringVar(&flags.schema, "schema", "", "YAML model schema file")
	f.StringVar(&flags.config, "config", "", "config file (default <root>/"+DefaultConfigFile+" when present)")
	f.StringVar(&flags.root, "root", ".", "NestJS project root")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for fields and relations")
	f.BoolVar(&flags.dryRun, "dry-run", false, "show what would be written without touching disk")
	f.BoolVar(&flags.strict, "strict-registration", false, "check the composition root by identifier instead of substring")
	f.BoolVar(&flags.noPreflight, "no-preflight", false, "skip the package.json dependency check")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "only show errors")

	return cmd
}

// buildRequest validates positional arguments. "--seed 50" reaches here as
// a second positional argument because --seed takes an optional value.
func buildRequest(cmd *cobra.Command, args []string, flags flagValues) (Request, error) {
	if len(args) == 0 {
		return Request{}, errors.NewUsageError("model name is required")
	}
	if flags.verbose && flags.quiet {
		return Request{}, errors.NewUsageError("--verbose and --quiet cannot be combined")
	}
	if len(args) > 2 {
		return Request{}, errors.NewUsageError("unexpected arguments: %v", args[1:])
	}

	seedSet := cmd.Flags().Changed("seed")
	seed := flags.seed
	if seedSet && isInteger(args[0]) {
		// "--seed 5 blog" binds 5 as the first positional argument
		if len(args) == 1 {
			return Request{}, errors.NewUsageError("model name is required")
		}
		if !isInteger(args[1]) {
			return Request{}, errors.NewUsageError("model name must come first: nestgen %s --seed %s", args[1], args[0])
		}
	}
	if len(args) == 2 {
		if !seedSet {
			return Request{}, errors.NewUsageError("unexpected argument %q", args[1])
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return Request{}, errors.NewUsageError("invalid seed count %q", args[1])
		}
		seed = n
	}
	if seedSet && seed <= 0 {
		return Request{}, errors.NewUsageError("seed count must be positive, got %d", seed)
	}

	return Request{
		Model:       args[0],
		Seed:        seed,
		Fields:      flags.fields,
		Relations:   flags.relations,
		SchemaFile:  flags.schema,
		Interactive: flags.interactive,
	}, nil
}

func isInteger(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func (o *rootOptions) newDiagnostics(flags flagValues) *utils.DiagnosticSystem {
	var d *utils.DiagnosticSystem
	switch {
	case flags.quiet:
		d = utils.NewQuietDiagnostics()
	case flags.verbose:
		d = utils.NewVerboseDiagnostics()
	default:
		d = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if o.out != nil {
		d.WithWriters(o.out, o.errOut)
	}
	return d
}

func reportError(d *utils.DiagnosticSystem, err error) {
	d.Error("Generation failed: %v", err)
	var gen errors.GeneratorError
	if errors.As(err, &gen) {
		for _, hint := range gen.Suggestions() {
			d.Error("  hint: %s", hint)
		}
	}
}

// Run executes nestgen with args and returns the process exit status. Usage
// errors print the usage text.
func Run(args []string, opts ...Option) int {
	cmd := NewRootCmd(opts...)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if errors.IsUsage(err) {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Error: %v\n\n", err)
		fmt.Fprint(errOut, cmd.UsageString())
	}
	return 1
}

// Execute runs nestgen against the process arguments
func Execute() {
	os.Exit(Run(os.Args[1:]))
}
