package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Entity ID prefixes for gate-2 collections.
const (
	PrefixOutcome = "O"
	PrefixOption  = "P"
	PrefixBenefit = "B"
	PrefixKPI     = "K"
)

// FormatRecordID renders a counter value as a 6-digit record ID.
func FormatRecordID(n int) string {
	return fmt.Sprintf("%06d", n)
}

// NewEntityID returns prefix followed by six uppercase hex characters.
func NewEntityID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(hex[:6])
}

// NormalizeIDs assigns IDs to any gate-2 entity that lacks one.
func (g *Gate2Data) NormalizeIDs() {
	for i := range g.Outcomes {
		if g.Outcomes[i].ID == "" {
			g.Outcomes[i].ID = NewEntityID(PrefixOutcome)
		}
	}
	for i := range g.Options {
		if g.Options[i].ID == "" {
			g.Options[i].ID = NewEntityID(PrefixOption)
		}
	}
	for i := range g.Benefits {
		if g.Benefits[i].ID == "" {
			g.Benefits[i].ID = NewEntityID(PrefixBenefit)
		}
	}
	for i := range g.KPIs {
		if g.KPIs[i].ID == "" {
			g.KPIs[i].ID = NewEntityID(PrefixKPI)
		}
	}
}
