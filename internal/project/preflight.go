// Package project inspects the host NestJS project before generating into it.
// Findings are advisory: generation proceeds regardless.
package project

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/toyz/nestgen/internal/errors"
	"github.com/toyz/nestgen/internal/utils/fileops"
)

// ManifestFile is the npm manifest at the project root
const ManifestFile = "package.json"

// Manifest is the part of package.json the preflight reads
type Manifest struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Version returns the declared range for pkg from either dependency block
func (m *Manifest) Version(pkg string) (string, bool) {
	if v, ok := m.Dependencies[pkg]; ok {
		return v, true
	}
	v, ok := m.DevDependencies[pkg]
	return v, ok
}

// Requirement is a package the generated code imports
type Requirement struct {
	Package    string
	MinVersion string // semver, empty for any version
	Reason     string
}

var baseRequirements = []Requirement{
	{Package: "@nestjs/common", Reason: "controllers, services and modules"},
	{Package: "@nestjs/typeorm", Reason: "repository injection"},
	{Package: "typeorm", Reason: "entity decorators"},
	{Package: "@nestjs/swagger", Reason: "DTO and controller documentation"},
	{Package: "class-validator", Reason: "DTO validation"},
}

var seedRequirements = []Requirement{
	{Package: "@faker-js/faker", MinVersion: "v8.0.0", Reason: "seeders use the faker.person API"},
}

// Requirements returns what the generated code needs, seeder packages included
// when seeding
func Requirements(seeding bool) []Requirement {
	reqs := append([]Requirement(nil), baseRequirements...)
	if seeding {
		reqs = append(reqs, seedRequirements...)
	}
	return reqs
}

// Finding is one preflight problem
type Finding struct {
	Package  string
	Declared string
	Message  string
}

func (f Finding) String() string {
	if f.Declared == "" {
		return fmt.Sprintf("%s: %s", f.Package, f.Message)
	}
	return fmt.Sprintf("%s@%s: %s", f.Package, f.Declared, f.Message)
}

// Check reads package.json through fo and checks it against the requirements.
// A missing manifest is itself a finding.
func Check(fo *fileops.FileOps, seeding bool) ([]Finding, error) {
	if !fo.IsFile(ManifestFile) {
		return []Finding{{Package: ManifestFile, Message: "not found, the project root may not be a NestJS project"}}, nil
	}

	content, err := fo.ReadFile(ManifestFile)
	if err != nil {
		return nil, err
	}
	manifest, err := ParseManifest([]byte(content))
	if err != nil {
		return nil, err
	}
	return Evaluate(manifest, Requirements(seeding)), nil
}

// ParseManifest decodes package.json content
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "invalid package.json", err).
			WithLocation(errors.SourceLocation{File: ManifestFile})
	}
	return &m, nil
}

// Evaluate checks the manifest against reqs. Ranges that do not reduce to a
// plain version (tags, URLs, workspace links) are accepted as-is.
func Evaluate(m *Manifest, reqs []Requirement) []Finding {
	var findings []Finding
	for _, req := range reqs {
		declared, ok := m.Version(req.Package)
		if !ok {
			findings = append(findings, Finding{
				Package: req.Package,
				Message: fmt.Sprintf("missing dependency (%s)", req.Reason),
			})
			continue
		}
		if req.MinVersion == "" {
			continue
		}

		v, ok := lowerBound(declared)
		if !ok {
			continue
		}
		if semver.Compare(v, req.MinVersion) < 0 {
			findings = append(findings, Finding{
				Package:  req.Package,
				Declared: declared,
				Message:  fmt.Sprintf("%s or newer required (%s)", strings.TrimPrefix(semver.Major(req.MinVersion), "v"), req.Reason),
			})
		}
	}

	sort.SliceStable(findings, func(i, j int) bool { return findings[i].Package < findings[j].Package })
	return findings
}

// lowerBound reduces an npm range such as "^8.4.1", "~7.6", ">=8" or "8.x" to
// the lowest version it admits
func lowerBound(rng string) (string, bool) {
	rng = strings.TrimSpace(rng)
	if i := strings.Index(rng, "||"); i >= 0 {
		rng = strings.TrimSpace(rng[:i])
	}
	if i := strings.IndexAny(rng, " \t"); i >= 0 {
		rng = rng[:i]
	}
	rng = strings.TrimLeft(rng, "^~>=v")

	parts := strings.Split(rng, ".")
	for i, p := range parts {
		if p == "x" || p == "X" || p == "*" {
			parts = parts[:i]
			break
		}
	}
	if len(parts) == 0 {
		return "", false
	}

	v := "v" + strings.Join(parts, ".")
	if !semver.IsValid(v) {
		return "", false
	}
	return semver.Canonical(v), true
}
