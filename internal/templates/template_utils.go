package templates

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/toyz/nestgen/internal/models"
	"github.com/toyz/nestgen/internal/naming"
)

// TemplateUtils provides common utilities for template generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// ColumnDecorator renders the @Column decorator for a field. Options appear in
// the order unique, nullable, default.
func (tu *TemplateUtils) ColumnDecorator(field models.FieldSpec) (string, error) {
	var opts []string
	if field.Unique {
		opts = append(opts, "unique: true")
	}
	if !field.Required {
		opts = append(opts, "nullable: true")
	}
	if field.HasDefault() {
		def, err := json.Marshal(field.Default)
		if err != nil {
			return "", fmt.Errorf("field %s: default value is not serializable: %w", field.Name, err)
		}
		opts = append(opts, "default: "+string(def))
	}

	if len(opts) == 0 {
		return "@Column()", nil
	}
	return "@Column({ " + strings.Join(opts, ", ") + " })", nil
}

// TypeValidator returns the class-validator decorator name for a field type
func (tu *TemplateUtils) TypeValidator(t models.FieldType) string {
	switch t {
	case models.FieldNumber:
		return "IsNumber"
	case models.FieldBoolean:
		return "IsBoolean"
	default:
		return "IsString"
	}
}

// PresenceValidator returns IsNotEmpty for required fields and IsOptional otherwise
func (tu *TemplateUtils) PresenceValidator(field models.FieldSpec) string {
	if field.Required {
		return "IsNotEmpty"
	}
	return "IsOptional"
}

// ExampleValue renders the swagger example literal for a field
func (tu *TemplateUtils) ExampleValue(field models.FieldSpec) string {
	switch field.Type {
	case models.FieldNumber:
		return "1"
	case models.FieldBoolean:
		return "true"
	default:
		return "'Example " + field.Name + "'"
	}
}

// RelationExample returns a stable identifier used as the swagger example for
// a relation's id list. It is derived from the target name so re-rendering is
// byte-identical.
func (tu *TemplateUtils) RelationExample(target string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(target)).String()
}

// fakerRule maps a field to a faker expression
type fakerRule struct {
	match func(name string, t models.FieldType) bool
	expr  string
}

func nameContains(subs ...string) func(string, models.FieldType) bool {
	return func(name string, _ models.FieldType) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

func typeIs(want models.FieldType) func(string, models.FieldType) bool {
	return func(_ string, t models.FieldType) bool {
		return t == want
	}
}

// fakerRules is evaluated in order and the first match wins, so a numeric
// field called "title" still gets a sentence.
var fakerRules = []fakerRule{
	{nameContains("title"), "faker.lorem.sentence()"},
	{nameContains("description", "content"), "faker.lorem.paragraph()"},
	{nameContains("email"), "faker.internet.email()"},
	{nameContains("name"), "faker.person.fullName()"},
	{nameContains("url", "link"), "faker.internet.url()"},
	{nameContains("image", "photo"), "faker.image.url()"},
	{typeIs(models.FieldNumber), "faker.number.int({ min: 1, max: 100 })"},
	{typeIs(models.FieldBoolean), "faker.datatype.boolean()"},
}

const fallbackFaker = "faker.lorem.word()"

// FakerExpression picks the fake-value expression for a seeded field
func (tu *TemplateUtils) FakerExpression(field models.FieldSpec) string {
	name := strings.ToLower(field.Name)
	for _, rule := range fakerRules {
		if rule.match(name, field.Type) {
			return rule.expr
		}
	}
	return fallbackFaker
}

// ParamName is the local variable used for a model inside generated code
func (tu *TemplateUtils) ParamName(model string) string {
	return naming.ToCamelCase(model)
}

// DefaultTemplateUtils provides a global instance for convenience
var DefaultTemplateUtils = NewTemplateUtils()
