package persona

import (
	"strings"
	"testing"
)

func validIndividual() Persona {
	return Persona{
		Kind:               KindIndividual,
		JobToBeDone:        "track household spending without spreadsheets",
		CurrentAlternative: "a shared Google Sheet",
		AgeRange:           "25-34",
		Location:           "Austin, TX",
		Psychographics:     "Budget-conscious renter. Distrusts subscriptions.",
		DisposableIncome:   300,
		BudgetAuthority:    BudgetPersonal,
	}
}

func validOrganization() Persona {
	return Persona{
		Kind:               KindOrganization,
		JobToBeDone:        "reconcile inventory across three warehouses",
		CurrentAlternative: "nightly CSV exports into Excel",
		Industry:           "wholesale distribution",
		Role:               "operations manager",
		CompanySize:        "50-200",
		BudgetAuthority:    BudgetRecommender,
	}
}

func TestValidate(t *testing.T) {
	if err := validIndividual().Validate(); err != nil {
		t.Errorf("valid individual rejected: %v", err)
	}
	if err := validOrganization().Validate(); err != nil {
		t.Errorf("valid organization rejected: %v", err)
	}
}

func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Persona)
	}{
		{"unknown kind", func(p *Persona) { p.Kind = "b2g" }},
		{"missing jtbd", func(p *Persona) { p.JobToBeDone = "  " }},
		{"missing alternative", func(p *Persona) { p.CurrentAlternative = "" }},
		{"missing budget authority", func(p *Persona) { p.BudgetAuthority = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validIndividual()
			tc.mutate(&p)
			if p.Validate() == nil {
				t.Error("expected validation error")
			}
		})
	}

	t.Run("individual without psychographics", func(t *testing.T) {
		p := validIndividual()
		p.Psychographics = ""
		if p.Validate() == nil {
			t.Error("expected validation error")
		}
	})
	t.Run("organization without role", func(t *testing.T) {
		p := validOrganization()
		p.Role = ""
		if p.Validate() == nil {
			t.Error("expected validation error")
		}
	})
}

func TestEncodeDecode(t *testing.T) {
	orig := validOrganization()

	raw, err := orig.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != orig {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, orig)
	}

	if _, err := Decode("{not json"); err == nil {
		t.Error("expected decode error for malformed input")
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if !strings.HasPrefix(a, "custom-persona-") {
		t.Errorf("id %q missing prefix", a)
	}
	if a == b {
		t.Error("ids should be unique")
	}
}

func TestLabel(t *testing.T) {
	org := validOrganization()
	if got := org.Label(); got != "operations manager, wholesale distribution" {
		t.Errorf("organization label = %q", got)
	}

	org.Role, org.Industry = "", ""
	if got := org.Label(); got != "Business buyer" {
		t.Errorf("empty organization label = %q", got)
	}

	ind := validIndividual()
	if got := ind.Label(); got != "Budget-conscious renter" {
		t.Errorf("individual label = %q", got)
	}

	ind.Psychographics = ""
	if got := ind.Label(); got != "Individual consumer" {
		t.Errorf("empty individual label = %q", got)
	}

	ind.Psychographics = strings.Repeat("x", 80)
	if got := ind.Label(); len([]rune(got)) != 61 {
		t.Errorf("long psychographics not truncated: %d runes", len([]rune(got)))
	}
}
