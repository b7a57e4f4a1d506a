package naming

// Names is every symbol and file stem derived from one model name. Emitters and
// the composition patcher read from here instead of recomputing.
type Names struct {
	Model       string // blog
	Class       string // Blog
	Plural      string // blogs
	PluralClass string // Blogs
	Table       string // blogs
	Route       string // blogs
	Service     string // BlogsService
	Controller  string // BlogsController
	Module      string // BlogsModule
	CreateDTO   string // CreateBlogDto
	UpdateDTO   string // UpdateBlogDto
	Repository  string // blogRepository
	ServiceVar  string // blogsService
	SeedFunc    string // seedBlogs
}

// Derive computes the Names for a model.
func Derive(model string) Names {
	class := CapitalizeFirst(model)
	plural := Pluralize(model)
	pluralClass := Pluralize(class)

	return Names{
		Model:       model,
		Class:       class,
		Plural:      plural,
		PluralClass: pluralClass,
		Table:       ToSnakeCase(plural),
		Route:       plural,
		Service:     pluralClass + "Service",
		Controller:  pluralClass + "Controller",
		Module:      pluralClass + "Module",
		CreateDTO:   "Create" + class + "Dto",
		UpdateDTO:   "Update" + class + "Dto",
		Repository:  ToCamelCase(model) + "Repository",
		ServiceVar:  ToCamelCase(plural) + "Service",
		SeedFunc:    "seed" + pluralClass,
	}
}
