package model

import (
	"fmt"

	ai "github.com/mchlmayer/thumbpro"
)

// Role is the capability a candidate model is used for.
type Role string

const (
	// RoleImageSynthesis generates an image from a text prompt alone.
	RoleImageSynthesis Role = "image_synthesis"

	// RoleImageEdit generates an image from a prompt plus inline reference images.
	RoleImageEdit Role = "image_edit"

	// RoleVisionDescribe produces a textual description of reference images.
	RoleVisionDescribe Role = "vision_describe"
)

// Roles lists every role in table order.
var Roles = []Role{RoleImageSynthesis, RoleImageEdit, RoleVisionDescribe}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleImageSynthesis, RoleImageEdit, RoleVisionDescribe:
		return true
	}
	return false
}

// String returns the role identifier.
func (r Role) String() string { return string(r) }

// Candidate is one backend model that may serve a role.
// Candidates are immutable values.
type Candidate struct {
	ID       string
	Provider ai.Provider
	Role     Role
}

// String returns "provider/id".
func (c Candidate) String() string {
	return fmt.Sprintf("%s/%s", c.Provider, c.ID)
}

// Validate checks the candidate names a model, a known provider and a known role.
func (c Candidate) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("candidate for %s has no model id", c.Role)
	}
	switch c.Provider {
	case ai.ProviderGoogle, ai.ProviderOpenAI, ai.ProviderAnthropic:
	default:
		return fmt.Errorf("candidate %s has unknown provider %q", c.ID, c.Provider)
	}
	if !c.Role.Valid() {
		return fmt.Errorf("candidate %s has unknown role %q", c.ID, c.Role)
	}
	return nil
}
