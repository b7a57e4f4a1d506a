package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/toyz/nestgen/internal/errors"
	"github.com/toyz/nestgen/internal/layout"
)

// DefaultConfigFile is looked up in the project root when --config is not given
const DefaultConfigFile = "nestgen.yaml"

// Config holds the configuration for the CLI generator
type Config struct {
	// ProjectRoot is the host NestJS project every path is relative to
	ProjectRoot string `yaml:"-"`

	// Host layout; see layout.Planner
	ModelsRoot      string `yaml:"modelsRoot"`
	SeedersRoot     string `yaml:"seedersRoot"`
	CompositionFile string `yaml:"compositionFile"`
	AuthGuard       string `yaml:"authGuard"`
	RolesGuard      string `yaml:"rolesGuard"`
	RolesDecorator  string `yaml:"rolesDecorator"`

	// StrictRegistration checks the composition root token by token instead of
	// by substring
	StrictRegistration bool `yaml:"strictRegistration"`

	// SkipPreflight disables the package.json dependency check
	SkipPreflight bool `yaml:"skipPreflight"`

	// DryRun renders and reports without writing
	DryRun bool `yaml:"-"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"-"`
}

// DefaultConfig returns the configuration for a stock NestJS project in the
// current directory
func DefaultConfig() Config {
	return Config{
		ProjectRoot:     ".",
		ModelsRoot:      layout.DefaultModelsRoot,
		SeedersRoot:     layout.DefaultSeedersRoot,
		CompositionFile: layout.DefaultCompositionFile,
		AuthGuard:       layout.DefaultAuthGuard,
		RolesGuard:      layout.DefaultRolesGuard,
		RolesDecorator:  layout.DefaultRolesDecorator,
	}
}

// LoadConfig overlays a config file onto the defaults. When path is empty the
// project's nestgen.yaml is used if present; an explicit path must exist.
func LoadConfig(root, path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.ProjectRoot = root

	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, errors.WrapConfigurationError(path, "read", err)
	}

	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return Config{}, errors.WrapConfigurationError(path, "parse", err)
	}

	cfg.merge(file)
	return cfg, nil
}

// merge copies every non-zero value of other into c
func (c *Config) merge(other Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.ModelsRoot, other.ModelsRoot)
	set(&c.SeedersRoot, other.SeedersRoot)
	set(&c.CompositionFile, other.CompositionFile)
	set(&c.AuthGuard, other.AuthGuard)
	set(&c.RolesGuard, other.RolesGuard)
	set(&c.RolesDecorator, other.RolesDecorator)
	c.StrictRegistration = c.StrictRegistration || other.StrictRegistration
	c.SkipPreflight = c.SkipPreflight || other.SkipPreflight
}

// Planner returns the layout planner for the configured host locations
func (c Config) Planner() layout.Planner {
	return layout.Planner{
		ModelsRoot:      c.ModelsRoot,
		SeedersRoot:     c.SeedersRoot,
		CompositionFile: c.CompositionFile,
		AuthGuard:       c.AuthGuard,
		RolesGuard:      c.RolesGuard,
		RolesDecorator:  c.RolesDecorator,
	}
}
