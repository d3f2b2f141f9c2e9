package views

import (
	"sort"
	"strconv"

	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/table"
)

const AssetSummaryView = "asset-summary"

var summaryColumns = []string{
	"category", "location", "total_qty", "out_of_service_qty", "total_assigned", "available_qty",
}

// SummaryRow is the availability of one (category, location) group.
// AvailableQty can go negative when the source tables disagree.
type SummaryRow struct {
	Category        string `json:"category"`
	Location        string `json:"location"`
	TotalQty        int    `json:"total_qty"`
	OutOfServiceQty int    `json:"out_of_service_qty"`
	TotalAssigned   int    `json:"total_assigned"`
	AvailableQty    int    `json:"available_qty"`
}

func (s SummaryRow) toRow() table.Row {
	return table.Row{
		"category":           s.Category,
		"location":           s.Location,
		"total_qty":          strconv.Itoa(s.TotalQty),
		"out_of_service_qty": strconv.Itoa(s.OutOfServiceQty),
		"total_assigned":     strconv.Itoa(s.TotalAssigned),
		"available_qty":      strconv.Itoa(s.AvailableQty),
	}
}

type groupKey struct {
	category string
	location string
}

// Summarize groups assets by category and location. total_assigned counts the
// Assigned assignment rows that reference an asset of the group, so
// TotalQty == OutOfServiceQty + TotalAssigned + AvailableQty always holds.
// Assigned rows pointing at no known asset are reported as diagnostics.
func Summarize(assets, assignments []table.Row) ([]SummaryRow, []Diagnostic) {
	assignedByAsset := make(map[string]int)
	for _, row := range WithStatus(assignments, metadata.StatusAssigned) {
		assignedByAsset[row.Get("asset_id")]++
	}

	groups := make(map[groupKey]*SummaryRow)
	counted := make(map[string]bool)
	for _, asset := range assets {
		key := groupKey{category: asset.Get("category"), location: asset.Get("location")}
		g, ok := groups[key]
		if !ok {
			g = &SummaryRow{Category: key.category, Location: key.location}
			groups[key] = g
		}

		g.TotalQty++
		if table.IsFalsy(asset.Get("is_active")) {
			g.OutOfServiceQty++
		}

		id := asset.Get("asset_id")
		if !counted[id] {
			counted[id] = true
			g.TotalAssigned += assignedByAsset[id]
		}
	}

	var diagnostics []Diagnostic
	for _, row := range WithStatus(assignments, metadata.StatusAssigned) {
		if !counted[row.Get("asset_id")] {
			diagnostics = append(diagnostics, Diagnostic{
				View:   AssetSummaryView,
				Table:  "assets_master",
				Key:    "asset_id",
				Value:  row.Get("asset_id"),
				RowID:  row.Get("assignment_id"),
				Reason: "no matching row",
			})
		}
	}

	summary := make([]SummaryRow, 0, len(groups))
	for _, g := range groups {
		g.AvailableQty = g.TotalQty - g.OutOfServiceQty - g.TotalAssigned
		summary = append(summary, *g)
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Category != summary[j].Category {
			return summary[i].Category < summary[j].Category
		}
		return summary[i].Location < summary[j].Location
	})

	return summary, diagnostics
}

func AvailabilitySummary(assets, assignments []table.Row) View {
	summary, diagnostics := Summarize(assets, assignments)

	rows := make([]table.Row, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, s.toRow())
	}

	return View{
		Name:        AssetSummaryView,
		Columns:     summaryColumns,
		Rows:        rows,
		Diagnostics: diagnostics,
	}
}
