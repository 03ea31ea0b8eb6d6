package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBRP_Defaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewBRP("000007", "Fleet", "GOV-7", "", "", now)

	assert.Equal(t, 1, r.Gate)
	assert.Equal(t, StatusDraft, r.Status)
	assert.Equal(t, TypeProject, r.ProgrammeType)
	assert.Equal(t, "Fleet", r.G1.ProjectName)
	assert.NotNil(t, r.G2.Benefits)
	assert.NotNil(t, r.History)
	assert.Equal(t, StatusDraft, r.DeriveStatus())
}

func TestDeriveStatus(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		r    BRP
		want Status
	}{
		{"fresh", BRP{Gate: 1, CreatedAt: created, UpdatedAt: created}, StatusDraft},
		{"updated", BRP{Gate: 2, CreatedAt: created, UpdatedAt: created.Add(time.Minute)}, StatusInProgress},
		{"explicit complete any case", BRP{Gate: 3, Status: "complete", CreatedAt: created, UpdatedAt: created}, StatusComplete},
		{"final gate", BRP{Gate: 7, CreatedAt: created, UpdatedAt: created}, StatusComplete},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.DeriveStatus())
		})
	}
}

func TestTouch_DerivesInProgress(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewBRP("000001", "A", "N", TypeProject, StatusDraft, created)
	r.Touch(created.Add(time.Hour))
	assert.Equal(t, StatusInProgress, r.Status)
}

func TestNormalize_ClampsGate(t *testing.T) {
	r := (&BRP{Gate: 42}).Normalize()
	assert.Equal(t, 7, r.Gate)
	r = (&BRP{Gate: 0}).Normalize()
	assert.Equal(t, 1, r.Gate)
}

func TestCollection_SearchAndSort(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCollection()
	c.Records = append(c.Records,
		NewBRP("000002", "Network Refresh", "GOV-CYB", TypeProject, "", base.Add(2*time.Hour)),
		NewBRP("000001", "Fleet Uplift", "GOV-FLT", TypeProject, "", base.Add(time.Hour)),
	)

	byID := c.SortedByID()
	assert.Equal(t, "000001", byID[0].ID)

	hits := c.Search("gov")
	require.Len(t, hits, 2)
	assert.Equal(t, "000002", hits[0].ID, "newest first")

	hits = c.Search("FLEET")
	require.Len(t, hits, 1)
	assert.Equal(t, "000001", hits[0].ID)

	assert.Empty(t, c.Search("   "))
	assert.Nil(t, c.LastOpened())
	c.SetLastOpened("000002")
	assert.Equal(t, "000002", c.LastOpened().ID)
}

func TestNormalizeIDs_AssignsPrefixedIDs(t *testing.T) {
	g := Gate2Data{Outcomes: []Outcome{{Name: "o"}}, Benefits: []Benefit{{ID: "Bkeep"}}, KPIs: []KPI{{}}}
	g.NormalizeIDs()
	assert.Regexp(t, `^O[0-9A-F]{6}$`, g.Outcomes[0].ID)
	assert.Equal(t, "Bkeep", g.Benefits[0].ID)
	assert.Regexp(t, `^K[0-9A-F]{6}$`, g.KPIs[0].ID)
	assert.Equal(t, "000042", FormatRecordID(42))
}
