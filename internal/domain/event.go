package domain

import "time"

const (
	// MaxRecordHistory caps each record's local event log.
	MaxRecordHistory = 500
	// MaxAuditTrail caps the portfolio-wide audit trail.
	MaxAuditTrail = 2000
)

// AuditEventType tags audit entries mirrored from record histories.
const AuditEventType = "brp_event"

type Action string

const (
	ActionCreate          Action = "create"
	ActionSaveDraft       Action = "save_draft"
	ActionAutoSave        Action = "auto_save"
	ActionEdit            Action = "edit"
	ActionAdvance         Action = "advance"
	ActionMovePrev        Action = "move_prev"
	ActionCloseout        Action = "closeout"
	ActionGate2Add        Action = "gate2_add"
	ActionGate2Remove     Action = "gate2_remove"
	ActionGate2Update     Action = "gate2_update"
	ActionGate5Add        Action = "gate5_add"
	ActionGate5Remove     Action = "gate5_remove"
	ActionGovernanceView  Action = "governance_view"
	ActionGovernancePrint Action = "governance_print"
	ActionSeeded          Action = "created"
)

// EventMeta carries the typed details of an event. Zero fields are omitted.
type EventMeta struct {
	Gate          int      `json:"gate,omitempty"`
	FromGate      int      `json:"fromGate,omitempty"`
	ToGate        int      `json:"toGate,omitempty"`
	Kind          ItemKind `json:"kind,omitempty"`
	ItemID        string   `json:"itemId,omitempty"`
	Index         *int     `json:"idx,omitempty"`
	Selected      *bool    `json:"selected,omitempty"`
	Title         string   `json:"title,omitempty"`
	ProjectNumber string   `json:"projectNumber,omitempty"`
	Status        Status   `json:"status,omitempty"`
	From          string   `json:"from,omitempty"`
}

// Event is one entry of a record history or of the audit trail.
type Event struct {
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
	Type   string    `json:"type,omitempty"`
	BRPID  string    `json:"brpId,omitempty"`
	Action Action    `json:"action"`
	Meta   EventMeta `json:"meta"`
}

// AppendBounded appends e and drops the oldest entries so that at most
// limit remain. The returned slice never aliases a trimmed prefix.
func AppendBounded(log []Event, e Event, limit int) []Event {
	log = append(log, e)
	if limit <= 0 || len(log) <= limit {
		return log
	}
	trimmed := make([]Event, limit)
	copy(trimmed, log[len(log)-limit:])
	return trimmed
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool { return &v }
