package domain

import (
	"sort"
	"strings"
)

// Collection is the whole persisted document: every record, the ID counter,
// the last opened record and the portfolio audit trail.
type Collection struct {
	IDCounter    int     `json:"idCounter"`
	Records      []*BRP  `json:"records"`
	LastOpenedID *string `json:"lastOpenedId"`
	Audit        []Event `json:"audit"`
}

// NewCollection returns an empty document.
func NewCollection() *Collection {
	return &Collection{Records: []*BRP{}, Audit: []Event{}}
}

// Normalize repairs nil slices and out-of-range gates after decoding.
func (c *Collection) Normalize() *Collection {
	if c.Records == nil {
		c.Records = []*BRP{}
	}
	if c.Audit == nil {
		c.Audit = []Event{}
	}
	kept := c.Records[:0]
	for _, r := range c.Records {
		if r == nil {
			continue
		}
		kept = append(kept, r.Normalize())
	}
	c.Records = kept
	return c
}

// Find returns the record with the given ID, or nil.
func (c *Collection) Find(id string) *BRP {
	for _, r := range c.Records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// LastOpened returns the last opened record, or nil.
func (c *Collection) LastOpened() *BRP {
	if c.LastOpenedID == nil {
		return nil
	}
	return c.Find(*c.LastOpenedID)
}

// SetLastOpened records id as the currently open record.
func (c *Collection) SetLastOpened(id string) {
	c.LastOpenedID = &id
}

// SortedByID returns the records ordered by ID ascending.
func (c *Collection) SortedByID() []*BRP {
	out := append([]*BRP(nil), c.Records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SortedByUpdated returns the records ordered by updatedAt, newest first.
func (c *Collection) SortedByUpdated() []*BRP {
	out := append([]*BRP(nil), c.Records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

// Search matches q case-insensitively against ID, title and project number.
// Results are newest first.
func (c *Collection) Search(q string) []*BRP {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	var hits []*BRP
	for _, r := range c.SortedByUpdated() {
		if strings.Contains(strings.ToLower(r.ID), q) ||
			strings.Contains(strings.ToLower(r.Title), q) ||
			strings.Contains(strings.ToLower(r.ProjectNumber), q) {
			hits = append(hits, r)
		}
	}
	return hits
}
