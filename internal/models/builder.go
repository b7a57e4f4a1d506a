package models

import "strings"

// ModelBuilder assembles a ModelSpec from the different input sources.
// Field sources are offered in precedence order: the first non-empty field
// list wins and inferred defaults are used when none was given. Relations from
// every source are concatenated.
type ModelBuilder struct {
	name         string
	fields       []FieldSpec
	relations    []RelationSpec
	generateSeed bool
	seedCount    int
}

// NewModelBuilder creates a builder for the given model name. The name is
// lower-cased.
func NewModelBuilder(name string) *ModelBuilder {
	return &ModelBuilder{
		name:      strings.ToLower(strings.TrimSpace(name)),
		seedCount: DefaultSeedCount,
	}
}

// Name returns the normalized model name.
func (b *ModelBuilder) Name() string {
	return b.name
}

// HasFields reports whether an explicit field source has been applied.
func (b *ModelBuilder) HasFields() bool {
	return len(b.fields) > 0
}

// WithFields offers a field list. It is ignored if an earlier source already
// supplied fields.
func (b *ModelBuilder) WithFields(fields ...FieldSpec) *ModelBuilder {
	if len(b.fields) == 0 && len(fields) > 0 {
		b.fields = copyFields(fields)
	}
	return b
}

// WithRelations appends relations.
func (b *ModelBuilder) WithRelations(relations ...RelationSpec) *ModelBuilder {
	b.relations = append(b.relations, relations...)
	return b
}

// WithSeed enables seeder generation with the given record count.
func (b *ModelBuilder) WithSeed(count int) *ModelBuilder {
	b.generateSeed = true
	b.seedCount = count
	return b
}

// Build validates and returns the ModelSpec. The result shares no slices with
// the builder.
func (b *ModelBuilder) Build() (ModelSpec, error) {
	fields := b.fields
	if len(fields) == 0 {
		fields = InferFields(b.name)
	}

	spec := ModelSpec{
		Name:         b.name,
		Fields:       copyFields(fields),
		Relations:    copyRelations(b.relations),
		GenerateSeed: b.generateSeed,
		SeedCount:    b.seedCount,
	}

	if err := spec.Validate(); err != nil {
		return ModelSpec{}, err
	}
	return spec, nil
}
