package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/pack"
)

const shareBarWidth = 20

// FormatStats renders portfolio analytics: status split, gate distribution
// and KPI averages.
func FormatStats(s pack.Stats) string {
	if s.Total == 0 {
		return RenderBox("Portfolio", Dim("No BRPs yet. Run `brp create` or `brp seed`."))
	}

	var b strings.Builder
	b.WriteString(RenderFields([][2]string{
		{"Total", strconv.Itoa(s.Total)},
		{"Average gate", fmt.Sprintf("%.1f", s.AverageGate)},
	}))

	b.WriteString("\n" + Header("By status") + "\n")
	rows := [][]string{}
	for _, st := range []domain.Status{domain.StatusDraft, domain.StatusInProgress, domain.StatusComplete} {
		rows = append(rows, []string{
			StatusPill(st),
			strconv.Itoa(s.ByStatus[st]),
			RenderShareBar(s.StatusPercent(st), shareBarWidth),
			fmt.Sprintf("%d%%", s.StatusPercent(st)),
		})
	}
	b.WriteString(RenderTable([]string{"STATUS", "COUNT", "SHARE", ""}, rows))

	b.WriteString("\n" + Header("By gate") + "\n")
	rows = [][]string{}
	for g := domain.FirstGate; g <= domain.FinalGate; g++ {
		rows = append(rows, []string{
			GateBadge(g),
			strconv.Itoa(s.ByGate[g-1]),
			RenderShareBar(s.GatePercent(g), shareBarWidth),
			fmt.Sprintf("%d%%", s.GatePercent(g)),
		})
	}
	b.WriteString(RenderTable([]string{"GATE", "COUNT", "SHARE", ""}, rows))

	if len(s.KPIs) > 0 {
		b.WriteString("\n" + Header("KPI averages") + "\n")
		rows = [][]string{}
		for _, k := range s.KPIs {
			rows = append(rows, []string{
				Bold(k.Name),
				average(k.Baseline, k.BaselineCount),
				average(k.Target, k.TargetCount),
				average(k.Actual, k.ActualCount),
			})
		}
		b.WriteString(RenderTable([]string{"KPI", "BASELINE", "TARGET", "ACTUAL"}, rows))
	}

	return RenderBox("Portfolio", strings.TrimRight(b.String(), "\n"))
}

func average(v float64, n int) string {
	if n == 0 {
		return Dim("--")
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + Dim(fmt.Sprintf(" (n=%d)", n))
}
