package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"category", "categories"},
		{"bus", "buses"},
		{"product", "products"},
		{"Category", "Categories"},
		{"glass", "glasses"},
		{"", "s"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Pluralize(tt.in))
		})
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tags", "tag"},
		{"categories", "category"},
		{"buses", "bus"},
		{"author", "author"},
		{"address", "address"},
		{"s", "s"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Singularize(tt.in))
		})
	}
}

func TestSingularizeInvertsPluralize(t *testing.T) {
	for _, word := range []string{"tag", "category", "bus", "product", "user"} {
		assert.Equal(t, word, Singularize(Pluralize(word)), word)
	}
}

func TestCaseTransforms(t *testing.T) {
	assert.Equal(t, "Blog", CapitalizeFirst("blog"))
	assert.Equal(t, "BlogPost", CapitalizeFirst("blogPost"))
	assert.Equal(t, "", CapitalizeFirst(""))
	assert.Equal(t, "blogPost", ToCamelCase("BlogPost"))

	assert.Equal(t, "blog-post", ToKebabCase("blogPost"))
	assert.Equal(t, "blog_post", ToSnakeCase("blogPost"))
	assert.Equal(t, "blog_post_tags", ToSnakeCase("blogPostTags"))

	// separator-free lowercase input is a no-op
	assert.Equal(t, "blogposts", ToSnakeCase("blogposts"))
	assert.Equal(t, "blogposts", ToKebabCase("blogposts"))
}

func TestRelationIDsField(t *testing.T) {
	assert.Equal(t, "tagIds", RelationIDsField("tags"))
	assert.Equal(t, "authorIds", RelationIDsField("author"))
	assert.Equal(t, "categoryIds", RelationIDsField("categories"))
}

func TestDerive(t *testing.T) {
	n := Derive("category")

	assert.Equal(t, Names{
		Model:       "category",
		Class:       "Category",
		Plural:      "categories",
		PluralClass: "Categories",
		Table:       "categories",
		Route:       "categories",
		Service:     "CategoriesService",
		Controller:  "CategoriesController",
		Module:      "CategoriesModule",
		CreateDTO:   "CreateCategoryDto",
		UpdateDTO:   "UpdateCategoryDto",
		Repository:  "categoryRepository",
		ServiceVar:  "categoriesService",
		SeedFunc:    "seedCategories",
	}, n)

	assert.Equal(t, n, Derive("category"), "derivation must be deterministic")
}

func TestReservedNames(t *testing.T) {
	for _, w := range []string{"delete", "new", "class", "package", "interface", "in", "await"} {
		assert.True(t, IsReservedWord(w), w)
	}
	assert.False(t, IsReservedWord("Delete"))
	assert.False(t, IsReservedWord("data"))

	for _, s := range []string{"Module", "Repository", "In", "Injectable", "Promise", "DataSource"} {
		assert.True(t, IsFrameworkSymbol(s), s)
	}
	assert.False(t, IsFrameworkSymbol("Blog"))
	assert.False(t, IsFrameworkSymbol("module"))
}
