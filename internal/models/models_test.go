package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	generrors "github.com/toyz/nestgen/internal/errors"
)

func TestInferFields(t *testing.T) {
	tests := []struct {
		model string
		want  []string
	}{
		{"blogpost", []string{"title", "content", "published"}},
		{"widget", []string{"name", "description"}},
		{"user", []string{"email", "name"}},
		{"coauthor", []string{"email", "name"}},
		{"product", []string{"name", "description", "price", "stock"}},
		{"tag", []string{"name", "description"}},
		// "userpost" matches both user and post; the user rule is first
		{"userpost", []string{"email", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			spec := ModelSpec{Fields: InferFields(tt.model)}
			assert.Equal(t, tt.want, spec.FieldNames())
		})
	}
}

func TestInferFieldsTypes(t *testing.T) {
	fields := InferFields("blogpost")
	require.Len(t, fields, 3)
	assert.Equal(t, FieldBoolean, fields[2].Type)
	assert.True(t, fields[2].Required)

	product := InferFields("product")
	assert.Equal(t, FieldNumber, product[2].Type)
	assert.False(t, product[1].Required)

	tag := InferFields("tag")
	assert.True(t, tag[0].Unique)
}

func TestInferFieldsReturnsCopy(t *testing.T) {
	first := InferFields("widget")
	first[0].Name = "mutated"

	assert.Equal(t, "name", InferFields("widget")[0].Name)
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields("title, views:number:optional, slug:string:unique, live:bool")
	require.NoError(t, err)

	assert.Equal(t, []FieldSpec{
		{Name: "title", Type: FieldString, Required: true},
		{Name: "views", Type: FieldNumber, Required: false},
		{Name: "slug", Type: FieldString, Required: true, Unique: true},
		{Name: "live", Type: FieldBoolean, Required: true},
	}, fields)
}

func TestParseFieldsErrors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{":string", "empty field name"},
		{"title:date", `unknown type "date"`},
		{"title:string:primary", `unknown modifier "primary"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseFields(tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseFieldsEmpty(t *testing.T) {
	fields, err := ParseFields("  ")
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestParseRelations(t *testing.T) {
	relations, err := ParseRelations("tags:many-to-many:tag, author:ManyToOne:User")
	require.NoError(t, err)

	assert.Equal(t, []RelationSpec{
		{Name: "tags", Kind: ManyToMany, Target: "tag"},
		{Name: "author", Kind: ManyToOne, Target: "user"},
	}, relations)

	_, err = ParseRelations("tags:many-to-many")
	assert.ErrorContains(t, err, "expected 'name:kind:target'")

	_, err = ParseRelations("tags:has-many:tag")
	assert.ErrorContains(t, err, "unknown relation kind")
}

func TestRelationFieldShape(t *testing.T) {
	rel := RelationSpec{Name: "tags", Kind: ManyToMany, Target: "tag"}
	assert.Equal(t, "tagIds", rel.IDsField())
	assert.True(t, rel.Kind.CarriesIDs())
	assert.False(t, OneToMany.CarriesIDs())
}

func TestBuilder(t *testing.T) {
	explicit := []FieldSpec{{Name: "title", Type: FieldString, Required: true}}

	spec, err := NewModelBuilder("  BlogPost ").
		WithFields(explicit...).
		WithFields(FieldSpec{Name: "ignored", Type: FieldString}).
		WithRelations(RelationSpec{Name: "tags", Kind: ManyToMany, Target: "tag"}).
		WithSeed(25).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "blogpost", spec.Name)
	assert.Equal(t, []string{"title"}, spec.FieldNames())
	assert.True(t, spec.GenerateSeed)
	assert.Equal(t, 25, spec.SeedCount)

	// the built model must not alias the caller's slice
	explicit[0].Name = "changed"
	assert.Equal(t, "title", spec.Fields[0].Name)
}

func TestBuilderDefaults(t *testing.T) {
	spec, err := NewModelBuilder("widget").Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "description"}, spec.FieldNames())
	assert.False(t, spec.GenerateSeed)
	assert.Equal(t, DefaultSeedCount, spec.SeedCount)
	assert.Empty(t, spec.Relations)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	spec := ModelSpec{
		Name: "blog-post",
		Fields: []FieldSpec{
			{Name: "title", Type: FieldString},
			{Name: "title", Type: "date"},
		},
		Relations: []RelationSpec{
			{Name: "tag", Kind: ManyToOne, Target: "tag"},
			{Name: "tags", Kind: ManyToMany, Target: "tag"},
		},
		GenerateSeed: true,
		SeedCount:    0,
	}

	err := spec.Validate()
	require.Error(t, err)

	var multi *generrors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, 5, multi.Count())
	assert.True(t, multi.HasCode(generrors.ValidationErrorCode))
	assert.Contains(t, err.Error(), "DTO field tagIds already used by relation tag")
}

func TestValidateModelNames(t *testing.T) {
	tags := []RelationSpec{{Name: "tags", Kind: ManyToMany, Target: "tag"}}

	tests := []struct {
		name      string
		spec      ModelSpec
		wantError string
	}{
		{name: "data with relation", spec: ModelSpec{Name: "data", Fields: InferFields("data"), Relations: tags}},
		{name: "plain model", spec: ModelSpec{Name: "Product", Fields: InferFields("Product")}},
		{
			name:      "reserved word",
			spec:      ModelSpec{Name: "delete", Fields: InferFields("delete")},
			wantError: "delete is a reserved word in TypeScript",
		},
		{
			name:      "capitalized reserved word",
			spec:      ModelSpec{Name: "Interface", Fields: InferFields("Interface")},
			wantError: "interface is a reserved word in TypeScript",
		},
		{
			name:      "framework symbol",
			spec:      ModelSpec{Name: "module", Fields: InferFields("module")},
			wantError: "class Module would shadow a framework symbol",
		},
		{
			name:      "typeorm symbol",
			spec:      ModelSpec{Name: "repository", Fields: InferFields("repository")},
			wantError: "class Repository would shadow a framework symbol",
		},
		{
			name:      "id parameter",
			spec:      ModelSpec{Name: "id", Fields: InferFields("id")},
			wantError: "collides with the generated id parameter",
		},
		{
			name: "reserved relation target",
			spec: ModelSpec{
				Name:      "post",
				Fields:    InferFields("post"),
				Relations: []RelationSpec{{Name: "children", Kind: OneToMany, Target: "package"}},
			},
			wantError: "invalid relations[0].target \"package\"",
		},
		{
			name:      "ids field shadows model variable",
			spec:      ModelSpec{Name: "tagIds", Fields: InferFields("tagIds"), Relations: tags},
			wantError: "DTO field tagIds collides with the model variable",
		},
		{
			name:      "built-in column",
			spec:      ModelSpec{Name: "post", Fields: []FieldSpec{{Name: "createdAt", Type: FieldString}}},
			wantError: "is a built-in entity column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestValidateSuggestsAlternativeName(t *testing.T) {
	err := ModelSpec{Name: "new", Fields: InferFields("new")}.Validate()
	require.Error(t, err)

	var multi *generrors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	require.Equal(t, 1, multi.Count())
	assert.Equal(t, []string{"Pick a more specific name, e.g. 'newItem'"}, multi.Errors[0].Suggestions())
}

func TestRelatedTargets(t *testing.T) {
	spec := ModelSpec{
		Name: "post",
		Relations: []RelationSpec{
			{Name: "tags", Kind: ManyToMany, Target: "tag"},
			{Name: "author", Kind: ManyToOne, Target: "user"},
			{Name: "editor", Kind: ManyToOne, Target: "user"},
			{Name: "parent", Kind: ManyToOne, Target: "post"},
			{Name: "comments", Kind: OneToMany, Target: "comment"},
		},
	}

	assert.Equal(t, []string{"tag", "user", "comment"}, spec.RelatedTargets())
	assert.Len(t, spec.IDRelations(), 4)
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post.yaml")
	doc := strings.Join([]string{
		"name: post",
		"fields:",
		"  - name: title",
		"  - name: views",
		"    type: number",
		"    required: false",
		"    default: 0",
		"relations:",
		"  - name: tags",
		"    kind: many-to-many",
		"    target: Tag",
		"seed:",
		"  count: 25",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	schema, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Equal(t, "post", schema.Name)

	fields, err := schema.FieldSpecs()
	require.NoError(t, err)
	assert.Equal(t, []FieldSpec{
		{Name: "title", Type: FieldString, Required: true},
		{Name: "views", Type: FieldNumber, Required: false, Default: 0},
	}, fields)

	relations, err := schema.RelationSpecs()
	require.NoError(t, err)
	assert.Equal(t, []RelationSpec{{Name: "tags", Kind: ManyToMany, Target: "tag"}}, relations)

	seed, count := schema.SeedRequested()
	assert.True(t, seed)
	assert.Equal(t, 25, count)
}

func TestLoadSchemaRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: post\ncolumns: []\n"), 0o644))

	_, err := LoadSchema(path)
	require.Error(t, err)
	assert.Equal(t, generrors.SchemaErrorCode, generrors.CodeOf(err))
}

func TestLoadSchemaMissingFile(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, generrors.FileSystemErrorCode, generrors.CodeOf(err))
}

func TestSchemaSeedDisabled(t *testing.T) {
	schema, err := DecodeSchema(strings.NewReader("name: post\nseed:\n  enabled: false\n  count: 5\n"))
	require.NoError(t, err)

	seed, _ := schema.SeedRequested()
	assert.False(t, seed)
}
