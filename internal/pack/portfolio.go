package pack

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/brp/internal/domain"
)

// MaxKPISeries caps the KPI averages reported by Portfolio.
const MaxKPISeries = 6

// Stats summarizes a whole collection.
type Stats struct {
	Total       int
	ByStatus    map[domain.Status]int
	ByGate      [domain.FinalGate]int
	AverageGate float64
	KPIs        []KPISeries
}

// KPISeries averages baseline, target and latest actual across every KPI
// sharing a name. Count fields say how many values fed each average.
type KPISeries struct {
	Name          string
	Baseline      float64
	Target        float64
	Actual        float64
	BaselineCount int
	TargetCount   int
	ActualCount   int
}

// StatusPercent returns the share of records with status s, rounded.
func (s Stats) StatusPercent(st domain.Status) int {
	return percent(s.ByStatus[st], s.Total)
}

// GatePercent returns the share of records sitting at gate g, rounded.
func (s Stats) GatePercent(g int) int {
	if g < domain.FirstGate || g > domain.FinalGate {
		return 0
	}
	return percent(s.ByGate[g-1], s.Total)
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(n)/float64(total)*100 + 0.5)
}

// Portfolio computes status, gate and KPI statistics over records.
func Portfolio(records []*domain.BRP) Stats {
	st := Stats{
		Total: len(records),
		ByStatus: map[domain.Status]int{
			domain.StatusDraft:      0,
			domain.StatusInProgress: 0,
			domain.StatusComplete:   0,
		},
	}

	type acc struct {
		name                     string
		baseline, target, actual []float64
	}
	var order []string
	byName := make(map[string]*acc)
	gateSum := 0

	for _, r := range records {
		gate := domain.ClampGate(r.Gate)
		gateSum += gate
		st.ByGate[gate-1]++
		st.ByStatus[r.DeriveStatus()]++

		latest := LatestKPIActuals(r)
		for _, k := range r.G2.KPIs {
			name := strings.TrimSpace(k.Name)
			if name == "" {
				continue
			}
			a, ok := byName[name]
			if !ok {
				a = &acc{name: name}
				byName[name] = a
				order = append(order, name)
			}
			if v, ok := ToNum(k.Baseline); ok {
				a.baseline = append(a.baseline, v)
			}
			if v, ok := ToNum(k.TargetByOption); ok {
				a.target = append(a.target, v)
			}
			if v, ok := ToNum(latest[k.ID].Value); ok {
				a.actual = append(a.actual, v)
			}
		}
	}

	if st.Total > 0 {
		st.AverageGate = float64(gateSum) / float64(st.Total)
	}
	for i, name := range order {
		if i == MaxKPISeries {
			break
		}
		a := byName[name]
		st.KPIs = append(st.KPIs, KPISeries{
			Name:          name,
			Baseline:      mean(a.baseline),
			Target:        mean(a.target),
			Actual:        mean(a.actual),
			BaselineCount: len(a.baseline),
			TargetCount:   len(a.target),
			ActualCount:   len(a.actual),
		})
	}
	return st
}

// ToNum extracts a number from free text such as "$1,200" or "18 hrs".
// Every character other than digits, '.' and '-' is discarded first.
func ToNum(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
