package domain

// syncRows returns exactly one row per id in ids, in ids order. Existing rows
// are reused (first match wins); ids without a row get newRow(id). Rows whose
// key is not in ids are dropped.
func syncRows[R any](ids []string, rows []R, key func(R) string, newRow func(id string) R) []R {
	existing := make(map[string]R, len(rows))
	for _, row := range rows {
		k := key(row)
		if _, dup := existing[k]; !dup {
			existing[k] = row
		}
	}
	out := make([]R, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if row, ok := existing[id]; ok {
			out = append(out, row)
			continue
		}
		out = append(out, newRow(id))
	}
	return out
}

func (g *Gate2Data) benefitIDs() []string {
	ids := make([]string, 0, len(g.Benefits))
	for _, b := range g.Benefits {
		ids = append(ids, b.ID)
	}
	return ids
}

func (g *Gate2Data) kpiIDs() []string {
	ids := make([]string, 0, len(g.KPIs))
	for _, k := range g.KPIs {
		ids = append(ids, k.ID)
	}
	return ids
}

// SyncReporting aligns g3 reporting rows with the g2 benefits.
func SyncReporting(g2 *Gate2Data, rows []ReportingRow) []ReportingRow {
	return syncRows(g2.benefitIDs(), rows,
		func(r ReportingRow) string { return r.BenefitID },
		func(id string) ReportingRow {
			return ReportingRow{BenefitID: id, Frequency: FrequencyQuarterly}
		})
}

// SyncActuals aligns KPI-actual rows with the g2 KPIs.
func SyncActuals(g2 *Gate2Data, rows []KPIActual) []KPIActual {
	return syncRows(g2.kpiIDs(), rows,
		func(r KPIActual) string { return r.KPIID },
		func(id string) KPIActual { return KPIActual{KPIID: id} })
}

// SyncRealization aligns realization rows with the g2 benefits.
func SyncRealization(g2 *Gate2Data, rows []RealizationRow) []RealizationRow {
	return syncRows(g2.benefitIDs(), rows,
		func(r RealizationRow) string { return r.BenefitID },
		func(id string) RealizationRow { return RealizationRow{BenefitID: id} })
}

// SyncDerivedLists brings every gate 3..7 row collection into 1:1
// correspondence with the g2 benefit and KPI lists. Idempotent.
func (r *BRP) SyncDerivedLists() {
	r.Normalize()
	g2 := &r.G2
	r.G3.BenefitReporting = SyncReporting(g2, r.G3.BenefitReporting)
	r.G4.KPIActuals = SyncActuals(g2, r.G4.KPIActuals)
	r.G5.KPIActuals = SyncActuals(g2, r.G5.KPIActuals)
	r.G6.KPIActuals = SyncActuals(g2, r.G6.KPIActuals)
	r.G7.KPIActuals = SyncActuals(g2, r.G7.KPIActuals)
	r.G6.Realized = SyncRealization(g2, r.G6.Realized)
	r.G7.Realized = SyncRealization(g2, r.G7.Realized)
}
