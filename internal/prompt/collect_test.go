package prompt

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/nestgen/internal/models"
)

// scriptedDriver replays canned answers in order and fails on a mismatch in
// prompt kind
type scriptedDriver struct {
	steps []step
	pos   int
	asked []string
}

type step struct {
	kind   string
	text   string
	yes    bool
	choice int
}

func input(s string) step { return step{kind: "input", text: s} }
func confirm(b bool) step { return step{kind: "confirm", yes: b} }
func choose(i int) step   { return step{kind: "select", choice: i} }

func (d *scriptedDriver) done() bool { return d.pos == len(d.steps) }

func (d *scriptedDriver) next(kind, message string) (step, error) {
	d.asked = append(d.asked, message)
	if d.pos >= len(d.steps) {
		return step{}, fmt.Errorf("unexpected %s prompt %q", kind, message)
	}
	s := d.steps[d.pos]
	d.pos++
	if s.kind != kind {
		return step{}, fmt.Errorf("prompt %q: want %s, got %s", message, s.kind, kind)
	}
	return s, nil
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s, err := d.next("input", cfg.Message)
	if err != nil {
		return "", err
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(s.text); err != nil {
			return "", err
		}
	}
	return s.text, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s, err := d.next("confirm", cfg.Message)
	return s.yes, err
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s, err := d.next("select", cfg.Message)
	return s.choice, err
}

func TestCollectFieldsAndRelations(t *testing.T) {
	driver := &scriptedDriver{steps: []step{
		input("title"), choose(0), confirm(true), confirm(true),
		input("views"), choose(1), confirm(false), confirm(false),
		input(""),
		confirm(true), input("tags"), choose(1), input("Tag"),
		confirm(false),
	}}

	answers, err := NewCollector(driver).Collect(context.Background(), "post")
	require.NoError(t, err)
	assert.True(t, driver.done())

	want := Answers{
		Fields: []models.FieldSpec{
			{Name: "title", Type: models.FieldString, Required: true, Unique: true},
			{Name: "views", Type: models.FieldNumber},
		},
		Relations: []models.RelationSpec{
			{Name: "tags", Kind: models.ManyToMany, Target: "tag"},
		},
	}
	if diff := cmp.Diff(want, answers); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Field name for post (empty to finish):", driver.asked[0])
}

func TestCollectNothingFallsBackToDefaults(t *testing.T) {
	driver := &scriptedDriver{steps: []step{input(""), confirm(false)}}

	answers, err := NewCollector(driver).Collect(context.Background(), "widget")
	require.NoError(t, err)
	assert.Empty(t, answers.Fields)
	assert.Empty(t, answers.Relations)
}

func TestCollectRejectsDuplicateField(t *testing.T) {
	driver := &scriptedDriver{steps: []step{
		input("title"), choose(0), confirm(true), confirm(false),
		input("title"),
	}}

	_, err := NewCollector(driver).Collect(context.Background(), "post")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is already defined")
}

func TestIdentifierValidation(t *testing.T) {
	check := identifierOrEmpty(map[string]bool{"name": true})

	assert.NoError(t, check(""))
	assert.NoError(t, check("publishedAt"))
	assert.Error(t, check("1st"))
	assert.Error(t, check("name"))
}

func TestCollectStopsOnAbort(t *testing.T) {
	driver := &abortDriver{}

	_, err := NewCollector(driver).Collect(context.Background(), "post")
	assert.ErrorIs(t, err, ErrAborted)
}

type abortDriver struct{}

func (abortDriver) Input(context.Context, InputConfig) (string, error)   { return "", ErrAborted }
func (abortDriver) Confirm(context.Context, ConfirmConfig) (bool, error) { return false, ErrAborted }
func (abortDriver) Select(context.Context, SelectConfig) (int, error)    { return 0, ErrAborted }
