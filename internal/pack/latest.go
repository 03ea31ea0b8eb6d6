package pack

import (
	"strings"

	"github.com/alexanderramin/brp/internal/domain"
)

// LatestActual is the most recent KPI actual found across gates 4..7.
type LatestActual struct {
	Value string
	Date  domain.Date
	Gate  int
}

// actualGates is the scan order for KPI actuals.
var actualGates = []int{4, 5, 6, 7}

// LatestKPIActuals maps KPI ID to its latest recorded actual. Rows with no
// value are ignored. The highest date wins; on equal or missing dates the
// row found last in gate order wins.
func LatestKPIActuals(r *domain.BRP) map[string]LatestActual {
	out := make(map[string]LatestActual)
	for _, g := range actualGates {
		for _, row := range r.KPIActuals(g) {
			if row.KPIID == "" || strings.TrimSpace(row.ActualValue) == "" {
				continue
			}
			cur, seen := out[row.KPIID]
			if seen && domain.CompareDates(row.ActualDate, cur.Date) < 0 {
				continue
			}
			out[row.KPIID] = LatestActual{Value: strings.TrimSpace(row.ActualValue), Date: row.ActualDate, Gate: g}
		}
	}
	return out
}
