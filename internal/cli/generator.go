package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/toyz/nestgen/internal/composition"
	"github.com/toyz/nestgen/internal/errors"
	"github.com/toyz/nestgen/internal/layout"
	"github.com/toyz/nestgen/internal/models"
	"github.com/toyz/nestgen/internal/project"
	"github.com/toyz/nestgen/internal/prompt"
	"github.com/toyz/nestgen/internal/templates"
	"github.com/toyz/nestgen/internal/utils"
	"github.com/toyz/nestgen/internal/utils/fileops"
)

// Request is one model to generate
type Request struct {
	Model       string
	Seed        int    // records to seed; 0 skips the seeder
	Fields      string // field DSL, see models.ParseFields
	Relations   string // relation DSL, see models.ParseRelations
	SchemaFile  string
	Interactive bool
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	Model        string
	Spec         models.ModelSpec
	Files        []fileops.WriteRecord
	Registration composition.Result
	Findings     []project.Finding
	Duration     time.Duration
}

// Generator coordinates the CLI generation process
type Generator struct {
	config      Config
	diagnostics *utils.DiagnosticSystem
	driver      prompt.PromptDriver
	summary     GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		config:      config,
		diagnostics: diagnostics,
	}
}

// WithPromptDriver sets the driver used for --interactive. The survey
// terminal driver is used when none is set.
func (g *Generator) WithPromptDriver(driver prompt.PromptDriver) *Generator {
	g.driver = driver
	return g
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process: build the model, render every
// artifact, write them, then register the module in the composition root.
// The first failure aborts the run; files already written stay on disk.
func (g *Generator) Run(ctx context.Context, req Request) error {
	startTime := time.Now()
	g.summary = GenerationSummary{Model: req.Model}

	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Header(fmt.Sprintf("Generating %s", req.Model))
	g.diagnostics.ProjectRoot(g.config.ProjectRoot)

	spec, err := g.BuildSpec(ctx, req)
	if err != nil {
		return err
	}
	g.summary.Spec = spec
	g.reportSpec(spec)

	fo := fileops.NewFileOps(g.config.ProjectRoot, fileops.WithDryRun(g.config.DryRun))
	g.preflight(fo, spec)

	planner := g.config.Planner()
	l := planner.Plan(spec.Name)

	artifacts, err := templates.RenderAll(spec, planner)
	if err != nil {
		return err
	}

	g.diagnostics.PhaseHeader("Files")
	records, err := fo.Materialize(g.dirs(spec, l), toFiles(artifacts))
	g.summary.Files = records
	for i, record := range records {
		g.reportWrite(artifacts[i], record)
	}
	if err != nil {
		return err
	}

	g.diagnostics.PhaseHeader("Registration")
	names := spec.Names()
	patcher := composition.NewPatcher(fo, composition.Options{Strict: g.config.StrictRegistration})
	res, err := patcher.Register(l.CompositionFile, composition.Registration{
		Symbol:     names.Module,
		ImportPath: layout.ImportPath(l.CompositionFile, l.ModuleFile),
	})
	g.summary.Registration = res
	if err != nil {
		return err
	}
	g.reportRegistration(l.CompositionFile, names.Module, res)

	g.reportRoutes(spec)
	g.summary.Duration = time.Since(startTime)

	g.diagnostics.Summary("Summary", map[string]interface{}{
		"Files written": len(records),
		"Composition":   string(res.Status),
		"Duration":      g.summary.Duration.Round(time.Millisecond),
	})
	g.diagnostics.NextSteps(nextSteps(spec))
	g.diagnostics.GenerationComplete(g.config.DryRun)
	return nil
}

// BuildSpec assembles the ModelSpec from the request. Field sources are tried
// in order (schema file, --fields, interactive answers) and the first that
// yields fields wins; relations from all of them are combined.
func (g *Generator) BuildSpec(ctx context.Context, req Request) (models.ModelSpec, error) {
	if strings.TrimSpace(req.Model) == "" {
		return models.ModelSpec{}, errors.NewUsageError("model name is required")
	}
	builder := models.NewModelBuilder(req.Model)

	if req.SchemaFile != "" {
		schema, err := models.LoadSchema(req.SchemaFile)
		if err != nil {
			return models.ModelSpec{}, err
		}
		if schema.Name != "" && !strings.EqualFold(schema.Name, builder.Name()) {
			g.diagnostics.Warn("schema %s describes %q, generating %q", req.SchemaFile, schema.Name, builder.Name())
		}
		fields, err := schema.FieldSpecs()
		if err != nil {
			return models.ModelSpec{}, errors.WrapSchemaError(req.SchemaFile, err)
		}
		relations, err := schema.RelationSpecs()
		if err != nil {
			return models.ModelSpec{}, errors.WrapSchemaError(req.SchemaFile, err)
		}
		builder.WithFields(fields...).WithRelations(relations...)
		if seed, count := schema.SeedRequested(); seed {
			builder.WithSeed(count)
		}
	}

	if req.Fields != "" {
		fields, err := models.ParseFields(req.Fields)
		if err != nil {
			return models.ModelSpec{}, errors.NewUsageError("--fields: %v", err)
		}
		if builder.HasFields() {
			g.diagnostics.Warn("--fields ignored, the schema file already defines fields")
		}
		builder.WithFields(fields...)
	}
	if req.Relations != "" {
		relations, err := models.ParseRelations(req.Relations)
		if err != nil {
			return models.ModelSpec{}, errors.NewUsageError("--relations: %v", err)
		}
		builder.WithRelations(relations...)
	}

	if req.Interactive {
		driver := g.driver
		if driver == nil {
			driver = prompt.NewSurveyDriver()
		}
		answers, err := prompt.NewCollector(driver).Collect(ctx, builder.Name())
		if err != nil {
			return models.ModelSpec{}, err
		}
		builder.WithFields(answers.Fields...).WithRelations(answers.Relations...)
	}

	if req.Seed > 0 {
		builder.WithSeed(req.Seed)
	}
	return builder.Build()
}

func (g *Generator) preflight(fo *fileops.FileOps, spec models.ModelSpec) {
	if g.config.SkipPreflight {
		return
	}
	findings, err := project.Check(fo, spec.GenerateSeed)
	if err != nil {
		g.diagnostics.Warn("dependency check skipped: %v", err)
		return
	}
	g.summary.Findings = findings
	for _, f := range findings {
		g.diagnostics.Warn("%s", f)
	}
}

// dirs lists the directories to create; the shared seeders directory only
// when a seeder is generated
func (g *Generator) dirs(spec models.ModelSpec, l layout.Layout) []string {
	dirs := []string{l.BaseDir, l.DTODir, l.EntityDir}
	if spec.GenerateSeed {
		dirs = append(dirs, l.SeederDir)
	}
	return dirs
}

func toFiles(artifacts []templates.Artifact) []fileops.File {
	files := make([]fileops.File, len(artifacts))
	for i, a := range artifacts {
		files[i] = fileops.File{Path: a.Path, Content: a.Content}
	}
	return files
}

func (g *Generator) reportSpec(spec models.ModelSpec) {
	g.diagnostics.Info("Fields: %s", strings.Join(spec.FieldNames(), ", "))
	for _, r := range spec.Relations {
		g.diagnostics.Info("Relation: %s (%s %s)", r.Name, r.Kind, r.Target)
	}
	if spec.GenerateSeed {
		g.diagnostics.Info("Seeder: %d records", spec.SeedCount)
	}
}

func (g *Generator) reportWrite(a templates.Artifact, record fileops.WriteRecord) {
	verb := "Writing"
	if record.DryRun {
		verb = "Would write"
	}
	g.diagnostics.PhaseProgress(fmt.Sprintf("%s %-10s %s", verb, a.Kind.Label()+":", record.Path))
	g.diagnostics.Debug("%s %s (%d bytes)", record.Operation, record.Path, record.Bytes)
}

func (g *Generator) reportRegistration(file, symbol string, res composition.Result) {
	switch res.Status {
	case composition.StatusRegistered:
		g.diagnostics.PhaseItem(fmt.Sprintf("Updated %s (imported %s)", file, symbol))
		if res.AnchorImport != "" {
			g.diagnostics.Verbose("import placed after: %s", res.AnchorImport)
		}
		g.diagnostics.Verbose("imports list now has %d entries", res.Entries)
	case composition.StatusAlreadyRegistered:
		g.diagnostics.PhaseItem(fmt.Sprintf("%s already registered in %s", symbol, file))
	}
	for _, w := range res.Warnings {
		g.diagnostics.Warn("%s", w)
	}
}

func (g *Generator) reportRoutes(spec models.ModelSpec) {
	n := spec.Names()
	g.diagnostics.PhaseHeader("Routes")
	for _, r := range Routes(n.Route) {
		g.diagnostics.Route(r.Method, r.Path)
	}
}

// Route is one generated HTTP endpoint
type Route struct {
	Method string
	Path   string
}

// Routes lists the endpoints the generated controller exposes
func Routes(prefix string) []Route {
	base := "/" + prefix
	return []Route{
		{"POST", base},
		{"GET", base},
		{"GET", base + "/:id"},
		{"PATCH", base + "/:id"},
		{"DELETE", base + "/:id"},
	}
}

func nextSteps(spec models.ModelSpec) []string {
	steps := []string{
		"npm run start:dev",
		"Visit http://localhost:3000/api for Swagger docs",
	}
	if spec.GenerateSeed {
		steps = append(steps, fmt.Sprintf("npm run seed (to generate %d dummy records)", spec.SeedCount))
	}
	return steps
}
