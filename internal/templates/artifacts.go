package templates

import (
	"github.com/toyz/nestgen/internal/layout"
	"github.com/toyz/nestgen/internal/models"
)

// ArtifactKind identifies one generated file of a model
type ArtifactKind string

const (
	KindEntity     ArtifactKind = "entity"
	KindCreateDTO  ArtifactKind = "create-dto"
	KindUpdateDTO  ArtifactKind = "update-dto"
	KindService    ArtifactKind = "service"
	KindController ArtifactKind = "controller"
	KindModule     ArtifactKind = "module"
	KindSeeder     ArtifactKind = "seeder"
)

// Label is the human-readable name used in progress output
func (k ArtifactKind) Label() string {
	switch k {
	case KindEntity:
		return "Entity"
	case KindCreateDTO:
		return "Create DTO"
	case KindUpdateDTO:
		return "Update DTO"
	case KindService:
		return "Service"
	case KindController:
		return "Controller"
	case KindModule:
		return "Module"
	case KindSeeder:
		return "Seeder"
	default:
		return string(k)
	}
}

// Artifact is a rendered file, not yet written
type Artifact struct {
	Kind    ArtifactKind
	Path    string
	Content string
}

// Emitter renders one artifact
type Emitter func(spec models.ModelSpec, planner layout.Planner) (string, error)

type emitterEntry struct {
	kind ArtifactKind
	emit Emitter
	path func(layout.Layout) string
}

var emitters = []emitterEntry{
	{KindEntity, GenerateEntity, func(l layout.Layout) string { return l.EntityFile }},
	{KindCreateDTO, GenerateCreateDto, func(l layout.Layout) string { return l.CreateDTOFile }},
	{KindUpdateDTO, GenerateUpdateDto, func(l layout.Layout) string { return l.UpdateDTOFile }},
	{KindService, GenerateService, func(l layout.Layout) string { return l.ServiceFile }},
	{KindController, GenerateController, func(l layout.Layout) string { return l.ControllerFile }},
	{KindModule, GenerateModule, func(l layout.Layout) string { return l.ModuleFile }},
	{KindSeeder, GenerateSeeder, func(l layout.Layout) string { return l.SeederFile }},
}

// RenderAll validates spec and renders every artifact in memory. The seeder is
// only included when seeding was requested. Nothing is written.
func RenderAll(spec models.ModelSpec, planner layout.Planner) ([]Artifact, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	l := planner.Plan(spec.Name)

	artifacts := make([]Artifact, 0, len(emitters))
	for _, e := range emitters {
		if e.kind == KindSeeder && !spec.GenerateSeed {
			continue
		}

		content, err := e.emit(spec, planner)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Kind: e.kind, Path: e.path(l), Content: content})
	}
	return artifacts, nil
}
