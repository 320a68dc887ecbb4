package model

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ai "github.com/mchlmayer/thumbpro"
)

// Table maps each role to its candidates in priority order.
// A Table is read-only once built and safe for concurrent use.
type Table struct {
	candidates map[Role][]Candidate
}

// NewTable builds a table from per-role candidate lists. Each candidate's Role
// is set from the key it is listed under.
func NewTable(byRole map[Role][]Candidate) (*Table, error) {
	t := &Table{candidates: make(map[Role][]Candidate, len(byRole))}
	for role, list := range byRole {
		if !role.Valid() {
			return nil, fmt.Errorf("unknown role %q", role)
		}
		out := make([]Candidate, len(list))
		for i, c := range list {
			c.Role = role
			if err := c.Validate(); err != nil {
				return nil, err
			}
			out[i] = c
		}
		t.candidates[role] = out
	}
	return t, nil
}

// DefaultTable returns the built-in candidate table.
func DefaultTable() *Table {
	return &Table{candidates: map[Role][]Candidate{
		RoleImageSynthesis: {
			Imagen4.Candidate(RoleImageSynthesis),
			Imagen4Fast.Candidate(RoleImageSynthesis),
			Gemini25FlashImage.Candidate(RoleImageSynthesis),
			GPTImage1.Candidate(RoleImageSynthesis),
			DallE3.Candidate(RoleImageSynthesis),
		},
		RoleImageEdit: {
			Gemini25FlashImage.Candidate(RoleImageEdit),
			Gemini20FlashImagePreview.Candidate(RoleImageEdit),
		},
		RoleVisionDescribe: {
			Gemini25Flash.Candidate(),
			Gemini25FlashLite.Candidate(),
			ClaudeSonnet45.Candidate(),
		},
	}}
}

// Candidates returns a copy of the candidates for role, highest priority first.
func (t *Table) Candidates(role Role) []Candidate {
	list := t.candidates[role]
	out := make([]Candidate, len(list))
	copy(out, list)
	return out
}

// Validate checks every role has at least one candidate.
func (t *Table) Validate() error {
	var errs []error
	for _, role := range Roles {
		if len(t.candidates[role]) == 0 {
			errs = append(errs, fmt.Errorf("no candidates for %s", role))
		}
	}
	return errors.Join(errs...)
}

// tableFile is the YAML representation of a Table.
type tableFile struct {
	ImageSynthesis []tableEntry `yaml:"image_synthesis,omitempty"`
	ImageEdit      []tableEntry `yaml:"image_edit,omitempty"`
	VisionDescribe []tableEntry `yaml:"vision_describe,omitempty"`
}

type tableEntry struct {
	Provider string `yaml:"provider"`
	ID       string `yaml:"id"`
}

// ParseTable parses a YAML candidate table. Roles missing from the document
// keep the candidates of DefaultTable.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse model table YAML: %w", err)
	}

	byRole := map[Role][]Candidate{}
	def := DefaultTable()
	for role, entries := range map[Role][]tableEntry{
		RoleImageSynthesis: f.ImageSynthesis,
		RoleImageEdit:      f.ImageEdit,
		RoleVisionDescribe: f.VisionDescribe,
	} {
		if len(entries) == 0 {
			byRole[role] = def.Candidates(role)
			continue
		}
		list := make([]Candidate, len(entries))
		for i, e := range entries {
			list[i] = Candidate{ID: e.ID, Provider: ai.Provider(e.Provider)}
		}
		byRole[role] = list
	}

	t, err := NewTable(byRole)
	if err != nil {
		return nil, fmt.Errorf("invalid model table: %w", err)
	}
	return t, nil
}

// LoadTable reads a YAML candidate table from path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model table file: %w", err)
	}
	return ParseTable(data)
}

// MarshalYAML renders the table in the format ParseTable reads.
func (t *Table) MarshalYAML() (any, error) {
	entries := func(role Role) []tableEntry {
		var out []tableEntry
		for _, c := range t.candidates[role] {
			out = append(out, tableEntry{Provider: c.Provider.String(), ID: c.ID})
		}
		return out
	}
	return tableFile{
		ImageSynthesis: entries(RoleImageSynthesis),
		ImageEdit:      entries(RoleImageEdit),
		VisionDescribe: entries(RoleVisionDescribe),
	}, nil
}
