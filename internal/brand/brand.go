// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package brand loads reusable brand profiles. A profile carries the four
// configuration strings the drafting prompts embed (tone, target audience,
// value proposition, brand persona) so callers do not retype them per run.
package brand

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Profile is the on-disk brand configuration (brand.yaml).
type Profile struct {
	// Tone sets the writing tone for drafted posts.
	Tone string `json:"tone" yaml:"tone"`

	// TargetAudience describes who the posts are written for.
	TargetAudience string `json:"target_audience" yaml:"target_audience"`

	// ValueProposition states the value the posts should convey.
	ValueProposition string `json:"value_proposition" yaml:"value_proposition"`

	// BrandPersona describes the authorial voice.
	BrandPersona string `json:"brand_persona" yaml:"brand_persona"`
}

// LoadProfile reads and validates a brand profile YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading brand profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing brand profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("brand profile %s: %w", path, err)
	}
	return &p, nil
}

// Validate reports which required fields are missing.
func (p *Profile) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"tone", p.Tone},
		{"target_audience", p.TargetAudience},
		{"value_proposition", p.ValueProposition},
		{"brand_persona", p.BrandPersona},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ApplyTo fills the brand fields of req that the caller left empty, leaving
// explicit values untouched so flags override the profile.
func (p *Profile) ApplyTo(req *types.PostRequest) {
	if req.Tone == "" {
		req.Tone = p.Tone
	}
	if req.TargetAudience == "" {
		req.TargetAudience = p.TargetAudience
	}
	if req.ValueProposition == "" {
		req.ValueProposition = p.ValueProposition
	}
	if req.BrandPersona == "" {
		req.BrandPersona = p.BrandPersona
	}
}
