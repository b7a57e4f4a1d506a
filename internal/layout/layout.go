// Package layout decides where every generated artifact lives in the host
// project. Emitters, the materializer and the composition patcher all ask the
// Planner so that cross-file imports resolve.
package layout

import (
	"path"
	"strings"

	"github.com/toyz/nestgen/internal/naming"
)

// Default host locations, matching a stock NestJS project.
const (
	DefaultModelsRoot      = "src/modules"
	DefaultSeedersRoot     = "src/database/seeders"
	DefaultCompositionFile = "src/app.module.ts"
	DefaultAuthGuard       = "src/modules/auth/guards/jwt-auth.guard.ts"
	DefaultRolesGuard      = "src/common/guards/roles.guard.ts"
	DefaultRolesDecorator  = "src/common/decorators/roles.decorator.ts"
)

// Planner computes Layouts. All paths are slash-separated and relative to the
// project root.
type Planner struct {
	ModelsRoot      string
	SeedersRoot     string
	CompositionFile string
	AuthGuard       string
	RolesGuard      string
	RolesDecorator  string
}

// NewPlanner returns a Planner using the default host locations.
func NewPlanner() Planner {
	return Planner{
		ModelsRoot:      DefaultModelsRoot,
		SeedersRoot:     DefaultSeedersRoot,
		CompositionFile: DefaultCompositionFile,
		AuthGuard:       DefaultAuthGuard,
		RolesGuard:      DefaultRolesGuard,
		RolesDecorator:  DefaultRolesDecorator,
	}
}

// Layout is the derived file tree for one model.
type Layout struct {
	Model string

	BaseDir   string
	DTODir    string
	EntityDir string
	SeederDir string

	EntityFile     string
	CreateDTOFile  string
	UpdateDTOFile  string
	ServiceFile    string
	ControllerFile string
	ModuleFile     string
	SeederFile     string

	CompositionFile string
	AuthGuard       string
	RolesGuard      string
	RolesDecorator  string
}

// Plan derives the Layout for a model name.
func (p Planner) Plan(model string) Layout {
	stem := naming.ToKebabCase(model)
	pluralStem := naming.ToKebabCase(naming.Pluralize(model))

	base := path.Join(clean(p.ModelsRoot), naming.Pluralize(model))
	dto := path.Join(base, "dto")
	entities := path.Join(base, "entities")
	seeders := clean(p.SeedersRoot)

	return Layout{
		Model:     model,
		BaseDir:   base,
		DTODir:    dto,
		EntityDir: entities,
		SeederDir: seeders,

		EntityFile:     path.Join(entities, stem+".entity.ts"),
		CreateDTOFile:  path.Join(dto, "create-"+stem+".dto.ts"),
		UpdateDTOFile:  path.Join(dto, "update-"+stem+".dto.ts"),
		ServiceFile:    path.Join(base, pluralStem+".service.ts"),
		ControllerFile: path.Join(base, pluralStem+".controller.ts"),
		ModuleFile:     path.Join(base, pluralStem+".module.ts"),
		SeederFile:     path.Join(seeders, stem+".seeder.ts"),

		CompositionFile: clean(p.CompositionFile),
		AuthGuard:       clean(p.AuthGuard),
		RolesGuard:      clean(p.RolesGuard),
		RolesDecorator:  clean(p.RolesDecorator),
	}
}

// Dirs lists the directories the model's artifacts are written into.
func (l Layout) Dirs() []string {
	return []string{l.BaseDir, l.DTODir, l.EntityDir, l.SeederDir}
}

// ImportPath returns the TypeScript module specifier that file from uses to
// import file to, e.g. "../../tags/entities/tag.entity".
func ImportPath(from, to string) string {
	fromParts := split(path.Dir(clean(from)))
	toParts := split(clean(to))

	common := 0
	for common < len(fromParts) && common < len(toParts)-1 && fromParts[common] == toParts[common] {
		common++
	}

	var parts []string
	for range fromParts[common:] {
		parts = append(parts, "..")
	}
	parts = append(parts, toParts[common:]...)

	spec := strings.TrimSuffix(strings.Join(parts, "/"), ".ts")
	if !strings.HasPrefix(spec, "../") {
		spec = "./" + spec
	}
	return spec
}

func clean(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "./")
}

func split(p string) []string {
	if p == "." || p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
