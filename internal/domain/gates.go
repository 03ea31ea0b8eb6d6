package domain

import "math"

const (
	FirstGate = 1
	FinalGate = 7
)

// GateDef describes one of the seven governance gates.
type GateDef struct {
	Number int
	Name   string
	Short  string
	Phase  string
	Body   string
}

// Gates is the fixed gate catalogue, indexed by Number-1.
var Gates = []GateDef{
	{1, "Gate 1 - Identification", "Identification", "Identification (ID)", "Create the BRP shell and capture early project intent."},
	{2, "Gate 2 - Identification Updates", "ID Updates", "Identification (ID)", "Refine and validate Gate 1 information before analysis begins."},
	{3, "Gate 3 - Options Analysis & Measurement", "Options Analysis", "Options Analysis (OA)", "Add benefit reporting dates, frequency, and expected realization."},
	{4, "Gate 4 - Project Charter & PMP", "Charter/PMP", "Options Analysis (OA)", "Record KPI actuals and lessons learned as the project transitions to definition."},
	{5, "Gate 5 - Definition", "Definition", "Definition (DEF)", "Lock in scope, approved benefits, and transition activities."},
	{6, "Gate 6 - Implementation", "Implementation", "Implementation (IMP)", "Operational monitoring: KPI actuals + benefit realization progress."},
	{7, "Gate 7 - Closeout", "Closeout", "Transition to Closeout", "Finalize values, lessons learned, sign-off and archive."},
}

// ClampGate forces g into [FirstGate, FinalGate].
func ClampGate(g int) int {
	if g < FirstGate {
		return FirstGate
	}
	if g > FinalGate {
		return FinalGate
	}
	return g
}

// Gate returns the definition for g after clamping.
func Gate(g int) GateDef {
	return Gates[ClampGate(g)-1]
}

// ProgressPercent maps gate 1..7 onto 0..100. Gate 1 is 0%, gate 7 is 100%.
func ProgressPercent(gate int) int {
	g := ClampGate(gate)
	pct := int(math.Round(float64(g-1) / float64(FinalGate-1) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
