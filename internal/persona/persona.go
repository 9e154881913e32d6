// Package persona models the target customer the interview simulation
// plays against: either an individual consumer or an employee buying for
// an organization.
package persona

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind discriminates the two persona shapes.
type Kind string

const (
	KindIndividual   Kind = "b2c"
	KindOrganization Kind = "b2b"
)

// BudgetAuthority describes who controls the money the persona would spend.
type BudgetAuthority string

const (
	BudgetPersonal    BudgetAuthority = "personal"
	BudgetHousehold   BudgetAuthority = "household"
	BudgetCostCenter  BudgetAuthority = "cost-center"
	BudgetRecommender BudgetAuthority = "recommender"
	BudgetNone        BudgetAuthority = "no-authority"
)

// Persona is the locked description of the simulated customer. It is
// written once at session creation and never mutated afterwards.
type Persona struct {
	Kind Kind `json:"type"`

	// Shared fields.
	JobToBeDone        string `json:"jtbd"`
	CurrentAlternative string `json:"currentAlternative"`

	// Individual (b2c) fields.
	AgeRange         string `json:"ageRange,omitempty"`
	Location         string `json:"location,omitempty"`
	Psychographics   string `json:"psychographics,omitempty"`
	DisposableIncome int    `json:"disposableIncome,omitempty"`

	// Organization (b2b) fields.
	Industry    string `json:"industry,omitempty"`
	Role        string `json:"role,omitempty"`
	CompanySize string `json:"companySize,omitempty"`

	BudgetAuthority BudgetAuthority `json:"budgetAuthority,omitempty"`
}

// NewID returns a fresh client-generated persona identifier. The backend
// treats the id as opaque.
func NewID() string {
	return "custom-persona-" + uuid.NewString()
}

// Validate reports the first missing required field, or nil.
func (p Persona) Validate() error {
	if p.Kind != KindIndividual && p.Kind != KindOrganization {
		return fmt.Errorf("unknown persona kind %q", p.Kind)
	}
	if strings.TrimSpace(p.JobToBeDone) == "" {
		return fmt.Errorf("job-to-be-done is required")
	}
	if strings.TrimSpace(p.CurrentAlternative) == "" {
		return fmt.Errorf("current alternative is required")
	}
	switch p.Kind {
	case KindIndividual:
		if strings.TrimSpace(p.Psychographics) == "" {
			return fmt.Errorf("psychographics is required for an individual persona")
		}
	case KindOrganization:
		if strings.TrimSpace(p.Industry) == "" {
			return fmt.Errorf("industry is required for an organization persona")
		}
		if strings.TrimSpace(p.Role) == "" {
			return fmt.Errorf("role is required for an organization persona")
		}
	}
	if p.BudgetAuthority == "" {
		return fmt.Errorf("budget authority is required")
	}
	return nil
}

// Label returns a short human-readable description for headers and
// status bars.
func (p Persona) Label() string {
	switch p.Kind {
	case KindOrganization:
		parts := []string{}
		if p.Role != "" {
			parts = append(parts, p.Role)
		}
		if p.Industry != "" {
			parts = append(parts, p.Industry)
		}
		if len(parts) == 0 {
			return "Business buyer"
		}
		return strings.Join(parts, ", ")
	default:
		if p.Psychographics != "" {
			return firstSentence(p.Psychographics)
		}
		return "Individual consumer"
	}
}

// Encode serializes the persona for the session context store.
func (p Persona) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode persona: %w", err)
	}
	return string(data), nil
}

// Decode parses a persona previously written by Encode.
func Decode(raw string) (Persona, error) {
	var p Persona
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Persona{}, fmt.Errorf("decode persona: %w", err)
	}
	return p, nil
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".;\n"); i > 0 {
		return s[:i]
	}
	if r := []rune(s); len(r) > 60 {
		return string(r[:60]) + "…"
	}
	return s
}
