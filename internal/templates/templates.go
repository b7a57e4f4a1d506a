// Package templates renders the TypeScript artifacts for one model. Every
// Generate function is pure: the same ModelSpec and Planner always yield the
// same text.
package templates

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/toyz/nestgen/internal/errors"
	"github.com/toyz/nestgen/internal/layout"
	"github.com/toyz/nestgen/internal/models"
	"github.com/toyz/nestgen/internal/naming"
)

var defaultRegistry = NewTemplateRegistry()

// Well-known module specifiers
const (
	typeormModule        = "typeorm"
	nestCommonModule     = "@nestjs/common"
	nestTypeormModule    = "@nestjs/typeorm"
	nestSwaggerModule    = "@nestjs/swagger"
	classValidatorModule = "class-validator"
	fakerModule          = "@faker-js/faker"
)

// typeormDecorators fixes the order decorators appear in the entity import
var typeormDecorators = []string{
	"Entity",
	"PrimaryGeneratedColumn",
	"Column",
	"CreateDateColumn",
	"UpdateDateColumn",
	"DeleteDateColumn",
	"OneToMany",
	"ManyToOne",
	"ManyToMany",
	"JoinTable",
}

// validatorOrder fixes the order validators appear in the DTO import
var validatorOrder = []string{"IsString", "IsNumber", "IsBoolean", "IsNotEmpty", "IsOptional"}

// ColumnData is one scalar column of an entity
type ColumnData struct {
	Decorator string
	Name      string
	Type      string
}

// EntityRelationData is one relation property of an entity
type EntityRelationData struct {
	Decorators []string
	Name       string
	Type       string
}

// EntityData feeds the entity template
type EntityData struct {
	Imports   string
	Table     string
	Class     string
	Columns   []ColumnData
	Relations []EntityRelationData
}

// PropertyData is one DTO property
type PropertyData struct {
	ApiProperty string
	Validators  []string
	Name        string
	Optional    bool
	Type        string
}

// DTOData feeds both DTO templates
type DTOData struct {
	Imports    string
	Name       string
	CreateDTO  string
	Properties []PropertyData
}

// InjectionData is one repository injected into the service
type InjectionData struct {
	Entity     string
	Repository string
}

// ServiceRelationData is a relation resolved from an id list before saving
type ServiceRelationData struct {
	Name       string
	IDs        string
	Repository string
	Single     bool
}

// ServiceData feeds the service template
type ServiceData struct {
	Imports    string
	Class      string
	Service    string
	Repository string
	Var        string
	CreateDTO  string
	UpdateDTO  string
	CreateVar  string
	UpdateVar  string
	Injections []InjectionData
	Relations  []ServiceRelationData
	IDFields   string
}

// ControllerData feeds the controller template
type ControllerData struct {
	Imports     string
	Model       string
	Plural      string
	Class       string
	PluralClass string
	Route       string
	Controller  string
	Service     string
	ServiceVar  string
	CreateDTO   string
	UpdateDTO   string
	CreateVar   string
	UpdateVar   string
}

// ModuleData feeds the module template
type ModuleData struct {
	Imports    string
	Entities   []string
	Controller string
	Service    string
	Module     string
}

// SeedFieldData is one faked property
type SeedFieldData struct {
	Name string
	Expr string
}

// SeederData feeds the seeder template
type SeederData struct {
	Imports    string
	Class      string
	SeedFunc   string
	Repository string
	Var        string
	Plural     string
	PluralVar  string
	Count      int
	Fields     []SeedFieldData
}

// GenerateEntity renders the TypeORM entity
func GenerateEntity(spec models.ModelSpec, planner layout.Planner) (string, error) {
	tu := DefaultTemplateUtils
	names := spec.Names()
	l := planner.Plan(spec.Name)

	used := map[string]bool{
		"Entity":                 true,
		"PrimaryGeneratedColumn": true,
		"CreateDateColumn":       true,
		"UpdateDateColumn":       true,
		"DeleteDateColumn":       true,
	}

	data := EntityData{Table: names.Table, Class: names.Class}

	for _, f := range spec.Fields {
		decorator, err := tu.ColumnDecorator(f)
		if err != nil {
			return "", errors.WrapTemplateError(EntityTemplate, "prepare", err)
		}
		used["Column"] = true
		data.Columns = append(data.Columns, ColumnData{Decorator: decorator, Name: f.Name, Type: string(f.Type)})
	}

	for _, r := range spec.Relations {
		target := naming.Derive(r.Target)
		rel := EntityRelationData{Name: r.Name, Type: target.Class + "[]"}

		switch r.Kind {
		case models.ManyToOne:
			used["ManyToOne"] = true
			rel.Type = target.Class
			rel.Decorators = []string{"@ManyToOne(() => " + target.Class + ")"}
		case models.OneToMany:
			used["OneToMany"] = true
			param := tu.ParamName(r.Target)
			rel.Decorators = []string{
				"@OneToMany(() => " + target.Class + ", (" + param + ") => " + param + "." + tu.ParamName(spec.Name) + ")",
			}
		case models.ManyToMany:
			used["ManyToMany"] = true
			used["JoinTable"] = true
			rel.Decorators = []string{"@ManyToMany(() => " + target.Class + ")", "@JoinTable()"}
		}
		data.Relations = append(data.Relations, rel)
	}

	im := NewImportManager()
	for _, dec := range typeormDecorators {
		if used[dec] {
			im.Add(typeormModule, dec)
		}
	}
	addRelatedEntityImports(im, spec, planner, l.EntityFile)
	data.Imports = im.GenerateImports()

	return executeTemplate(EntityTemplate, defaultRegistry.MustGet(EntityTemplate), data)
}

// GenerateCreateDto renders the create DTO
func GenerateCreateDto(spec models.ModelSpec, planner layout.Planner) (string, error) {
	tu := DefaultTemplateUtils
	names := spec.Names()

	used := make(map[string]bool)
	data := DTOData{Name: names.CreateDTO}

	for _, f := range spec.Fields {
		typeValidator := tu.TypeValidator(f.Type)
		presence := tu.PresenceValidator(f)
		used[typeValidator] = true
		used[presence] = true

		api := "@ApiProperty({ example: " + tu.ExampleValue(f)
		if !f.Required {
			api += ", required: false"
		}
		api += " })"

		data.Properties = append(data.Properties, PropertyData{
			ApiProperty: api,
			Validators:  []string{"@" + typeValidator + "()", "@" + presence + "()"},
			Name:        f.Name,
			Optional:    !f.Required,
			Type:        string(f.Type),
		})
	}

	for _, r := range spec.IDRelations() {
		used["IsOptional"] = true
		used["IsString"] = true
		data.Properties = append(data.Properties, PropertyData{
			ApiProperty: "@ApiProperty({ example: ['" + tu.RelationExample(r.Target) + "'], required: false })",
			Validators:  []string{"@IsOptional()", "@IsString({ each: true })"},
			Name:        r.IDsField(),
			Optional:    true,
			Type:        "string[]",
		})
	}

	im := NewImportManager()
	for _, v := range validatorOrder {
		if used[v] {
			im.Add(classValidatorModule, v)
		}
	}
	im.Add(nestSwaggerModule, "ApiProperty")
	data.Imports = im.GenerateImports()

	return executeTemplate(CreateDTOTemplate, defaultRegistry.MustGet(CreateDTOTemplate), data)
}

// GenerateUpdateDto renders the update DTO as a PartialType of the create DTO
func GenerateUpdateDto(spec models.ModelSpec, planner layout.Planner) (string, error) {
	names := spec.Names()
	l := planner.Plan(spec.Name)

	im := NewImportManager()
	im.Add(nestSwaggerModule, "PartialType")
	im.Add(layout.ImportPath(l.UpdateDTOFile, l.CreateDTOFile), names.CreateDTO)

	data := DTOData{
		Imports:   im.GenerateImports(),
		Name:      names.UpdateDTO,
		CreateDTO: names.CreateDTO,
	}
	return executeTemplate(UpdateDTOTemplate, defaultRegistry.MustGet(UpdateDTOTemplate), data)
}

// GenerateService renders the service with one injected repository per
// distinct relation target
func GenerateService(spec models.ModelSpec, planner layout.Planner) (string, error) {
	tu := DefaultTemplateUtils
	names := spec.Names()
	l := planner.Plan(spec.Name)

	data := ServiceData{
		Class:      names.Class,
		Service:    names.Service,
		Repository: names.Repository,
		Var:        tu.ParamName(spec.Name),
		CreateDTO:  names.CreateDTO,
		UpdateDTO:  names.UpdateDTO,
		CreateVar:  naming.ToCamelCase(names.CreateDTO),
		UpdateVar:  naming.ToCamelCase(names.UpdateDTO),
		Injections: []InjectionData{{Entity: names.Class, Repository: names.Repository}},
	}

	for _, target := range spec.RelatedTargets() {
		t := naming.Derive(target)
		data.Injections = append(data.Injections, InjectionData{Entity: t.Class, Repository: t.Repository})
	}

	var idFields []string
	for _, r := range spec.IDRelations() {
		ids := r.IDsField()
		idFields = append(idFields, ids)
		data.Relations = append(data.Relations, ServiceRelationData{
			Name:       r.Name,
			IDs:        ids,
			Repository: naming.Derive(r.Target).Repository,
			Single:     r.Kind == models.ManyToOne,
		})
	}
	data.IDFields = strings.Join(idFields, ", ")

	im := NewImportManager()
	im.Add(nestCommonModule, "Injectable", "NotFoundException")
	im.Add(nestTypeormModule, "InjectRepository")
	if len(data.Relations) > 0 {
		im.Add(typeormModule, "In")
	}
	im.Add(typeormModule, "Repository")
	im.Add(layout.ImportPath(l.ServiceFile, l.EntityFile), names.Class)
	im.Add(layout.ImportPath(l.ServiceFile, l.CreateDTOFile), names.CreateDTO)
	im.Add(layout.ImportPath(l.ServiceFile, l.UpdateDTOFile), names.UpdateDTO)
	addRelatedEntityImports(im, spec, planner, l.ServiceFile)
	data.Imports = im.GenerateImports()

	return executeTemplate(ServiceTemplate, defaultRegistry.MustGet(ServiceTemplate), data)
}

// GenerateController renders the CRUD controller
func GenerateController(spec models.ModelSpec, planner layout.Planner) (string, error) {
	names := spec.Names()
	l := planner.Plan(spec.Name)

	im := NewImportManager()
	im.Add(nestCommonModule, "Controller", "Get", "Post", "Body", "Patch", "Param", "Delete", "Query", "UseGuards")
	im.Add(nestSwaggerModule, "ApiTags", "ApiOperation", "ApiResponse", "ApiBearerAuth", "ApiQuery")
	im.Add(layout.ImportPath(l.ControllerFile, l.ServiceFile), names.Service)
	im.Add(layout.ImportPath(l.ControllerFile, l.CreateDTOFile), names.CreateDTO)
	im.Add(layout.ImportPath(l.ControllerFile, l.UpdateDTOFile), names.UpdateDTO)
	im.Add(layout.ImportPath(l.ControllerFile, l.AuthGuard), "JwtAuthGuard")
	im.Add(layout.ImportPath(l.ControllerFile, l.RolesGuard), "RolesGuard")
	im.Add(layout.ImportPath(l.ControllerFile, l.RolesDecorator), "Roles")

	data := ControllerData{
		Imports:     im.GenerateImports(),
		Model:       spec.Name,
		Plural:      names.Plural,
		Class:       names.Class,
		PluralClass: names.PluralClass,
		Route:       names.Route,
		Controller:  names.Controller,
		Service:     names.Service,
		ServiceVar:  names.ServiceVar,
		CreateDTO:   names.CreateDTO,
		UpdateDTO:   names.UpdateDTO,
		CreateVar:   naming.ToCamelCase(names.CreateDTO),
		UpdateVar:   naming.ToCamelCase(names.UpdateDTO),
	}
	return executeTemplate(ControllerTemplate, defaultRegistry.MustGet(ControllerTemplate), data)
}

// GenerateModule renders the NestJS module
func GenerateModule(spec models.ModelSpec, planner layout.Planner) (string, error) {
	names := spec.Names()
	l := planner.Plan(spec.Name)

	im := NewImportManager()
	im.Add(nestCommonModule, "Module")
	im.Add(nestTypeormModule, "TypeOrmModule")
	im.Add(layout.ImportPath(l.ModuleFile, l.ServiceFile), names.Service)
	im.Add(layout.ImportPath(l.ModuleFile, l.ControllerFile), names.Controller)
	im.Add(layout.ImportPath(l.ModuleFile, l.EntityFile), names.Class)
	addRelatedEntityImports(im, spec, planner, l.ModuleFile)

	entities := []string{names.Class}
	for _, target := range spec.RelatedTargets() {
		entities = append(entities, naming.Derive(target).Class)
	}

	data := ModuleData{
		Imports:    im.GenerateImports(),
		Entities:   entities,
		Controller: names.Controller,
		Service:    names.Service,
		Module:     names.Module,
	}
	return executeTemplate(ModuleTemplate, defaultRegistry.MustGet(ModuleTemplate), data)
}

// GenerateSeeder renders the faker seeder
func GenerateSeeder(spec models.ModelSpec, planner layout.Planner) (string, error) {
	tu := DefaultTemplateUtils
	names := spec.Names()
	l := planner.Plan(spec.Name)

	count := spec.SeedCount
	if count <= 0 {
		count = models.DefaultSeedCount
	}

	im := NewImportManager()
	im.Add(typeormModule, "DataSource")
	im.Add(fakerModule, "faker")
	im.Add(layout.ImportPath(l.SeederFile, l.EntityFile), names.Class)

	data := SeederData{
		Imports:    im.GenerateImports(),
		Class:      names.Class,
		SeedFunc:   names.SeedFunc,
		Repository: names.Repository,
		Var:        tu.ParamName(spec.Name),
		Plural:     names.Plural,
		PluralVar:  naming.ToCamelCase(names.Plural),
		Count:      count,
	}
	for _, f := range spec.Fields {
		data.Fields = append(data.Fields, SeedFieldData{Name: f.Name, Expr: tu.FakerExpression(f)})
	}

	return executeTemplate(SeederTemplate, defaultRegistry.MustGet(SeederTemplate), data)
}

// addRelatedEntityImports imports each distinct related entity once, skipping
// the model itself
func addRelatedEntityImports(im *ImportManager, spec models.ModelSpec, planner layout.Planner, from string) {
	for _, target := range spec.RelatedTargets() {
		im.Add(layout.ImportPath(from, planner.Plan(target).EntityFile), naming.Derive(target).Class)
	}
}

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}
