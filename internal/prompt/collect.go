package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/toyz/nestgen/internal/models"
)

var (
	fieldTypes    = []models.FieldType{models.FieldString, models.FieldNumber, models.FieldBoolean}
	relationKinds = []models.RelationKind{models.ManyToOne, models.ManyToMany, models.OneToMany}
)

// Answers is what the operator described
type Answers struct {
	Fields    []models.FieldSpec
	Relations []models.RelationSpec
}

// Collector runs the question flow for one model
type Collector struct {
	driver PromptDriver
}

// NewCollector creates a Collector asking through driver
func NewCollector(driver PromptDriver) *Collector {
	return &Collector{driver: driver}
}

// Collect asks for fields until an empty name is entered, then for relations
// until the operator declines another. No fields means the inferred defaults
// apply.
func (c *Collector) Collect(ctx context.Context, model string) (Answers, error) {
	var answers Answers
	seen := make(map[string]bool)

	for {
		name, err := c.driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("Field name for %s (empty to finish):", model),
			Help:      "A TypeScript identifier such as title or publishedAt",
			Validator: identifierOrEmpty(seen),
		})
		if err != nil {
			return Answers{}, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			break
		}

		field, err := c.askField(ctx, name)
		if err != nil {
			return Answers{}, err
		}
		seen[name] = true
		answers.Fields = append(answers.Fields, field)
	}

	for {
		more, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Add a relation to %s?", model),
		})
		if err != nil {
			return Answers{}, err
		}
		if !more {
			break
		}

		relation, err := c.askRelation(ctx, seen)
		if err != nil {
			return Answers{}, err
		}
		seen[relation.Name] = true
		answers.Relations = append(answers.Relations, relation)
	}

	return answers, nil
}

func (c *Collector) askField(ctx context.Context, name string) (models.FieldSpec, error) {
	idx, err := c.driver.Select(ctx, SelectConfig{
		Message: fmt.Sprintf("Type of %s:", name),
		Options: fieldTypeOptions(),
	})
	if err != nil {
		return models.FieldSpec{}, err
	}
	if idx < 0 || idx >= len(fieldTypes) {
		return models.FieldSpec{}, fmt.Errorf("no field type selected for %s", name)
	}

	required, err := c.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Is %s required?", name), Default: true})
	if err != nil {
		return models.FieldSpec{}, err
	}
	unique, err := c.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Is %s unique?", name)})
	if err != nil {
		return models.FieldSpec{}, err
	}

	return models.FieldSpec{Name: name, Type: fieldTypes[idx], Required: required, Unique: unique}, nil
}

func (c *Collector) askRelation(ctx context.Context, seen map[string]bool) (models.RelationSpec, error) {
	name, err := c.driver.Input(ctx, InputConfig{
		Message:   "Relation property name:",
		Help:      "For example tags or author",
		Validator: identifier(seen),
	})
	if err != nil {
		return models.RelationSpec{}, err
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message: fmt.Sprintf("Kind of %s:", name),
		Options: relationKindOptions(),
	})
	if err != nil {
		return models.RelationSpec{}, err
	}
	if idx < 0 || idx >= len(relationKinds) {
		return models.RelationSpec{}, fmt.Errorf("no relation kind selected for %s", name)
	}

	target, err := c.driver.Input(ctx, InputConfig{
		Message:   fmt.Sprintf("Target model of %s:", name),
		Validator: identifier(nil),
	})
	if err != nil {
		return models.RelationSpec{}, err
	}

	return models.RelationSpec{
		Name:   strings.TrimSpace(name),
		Kind:   relationKinds[idx],
		Target: strings.ToLower(strings.TrimSpace(target)),
	}, nil
}

func identifierOrEmpty(seen map[string]bool) func(string) error {
	check := identifier(seen)
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return check(s)
	}
}

func identifier(seen map[string]bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if !models.IsIdentifier(s) {
			return fmt.Errorf("%q is not a valid identifier", s)
		}
		if seen[s] {
			return fmt.Errorf("%s is already defined", s)
		}
		return nil
	}
}

func fieldTypeOptions() []string {
	out := make([]string, len(fieldTypes))
	for i, t := range fieldTypes {
		out[i] = string(t)
	}
	return out
}

func relationKindOptions() []string {
	out := make([]string, len(relationKinds))
	for i, k := range relationKinds {
		out[i] = string(k)
	}
	return out
}
