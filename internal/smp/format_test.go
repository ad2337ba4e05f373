package smp

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWeekTable builds a table like the scraped one: 24 hourly rows plus the
// three aggregate rows, one column per date.
func newWeekTable(cols ...string) *Table {
	table := &Table{DateColumns: cols}
	for h := 1; h <= 24; h++ {
		row := Row{Label: fmt.Sprintf("%dh", h), Cells: make(map[string]string)}
		for i, col := range cols {
			row.Cells[col] = fmt.Sprintf("%.1f", 80.0+float64(h)+float64(i))
		}
		table.Rows = append(table.Rows, row)
	}
	for _, label := range []string{LabelMax, LabelMin, LabelWeightedAvg} {
		row := Row{Label: label, Cells: make(map[string]string)}
		for _, col := range cols {
			row.Cells[col] = "100.0"
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func TestSeverityMarker(t *testing.T) {
	assert.Equal(t, "🔴", SeverityMarker("150"))
	assert.Equal(t, "🟡", SeverityMarker("100"))
	assert.Equal(t, "🟢", SeverityMarker("50"))
	assert.Equal(t, "", SeverityMarker("n/a"))
	assert.Equal(t, "", SeverityMarker(""))

	// Boundary values: 120 is still medium, 90 is still low.
	assert.Equal(t, "🟡", SeverityMarker("120"))
	assert.Equal(t, "🟢", SeverityMarker("90"))
	assert.Equal(t, "🔴", SeverityMarker("120.1"))
}

func TestFormatReportEmptyTable(t *testing.T) {
	report := FormatReport(&Table{}, "", RegionMainland, refDate)
	assert.Contains(t, report, "⚠️ 데이터를 가져올 수 없습니다.")

	report = FormatReport(nil, "", RegionMainland, refDate)
	assert.Contains(t, report, "⚠️ 데이터를 가져올 수 없습니다.")
}

func TestFormatReportDefaultShowsAllOfThree(t *testing.T) {
	table := newWeekTable("09.28", "09.29", "09.30")
	report := FormatReport(table, "", RegionMainland, refDate)

	for _, col := range table.DateColumns {
		assert.Contains(t, report, "<b>📅 "+col+"</b>")
	}
	assert.Contains(t, report, "🌍 <b>KPX SMP 데이터 - 육지</b>")
	assert.Contains(t, report, "원/kWh")
}

func TestFormatReportExplicitDateSelectsSingleColumn(t *testing.T) {
	table := newWeekTable("09.24", "09.25", "09.26", "09.27", "09.28", "09.29", "09.30")
	report := FormatReport(table, "2025-09-24", RegionMainland, refDate)

	assert.Contains(t, report, "<b>📅 09.24</b>")
	for _, col := range table.DateColumns[1:] {
		assert.NotContains(t, report, "<b>📅 "+col+"</b>")
	}
}

func TestFormatReportAggregates(t *testing.T) {
	table := newWeekTable("09.30")
	report := FormatReport(table, "", RegionMainland, refDate)

	assert.Contains(t, report, "🔴 최대: 100.0 원/kWh")
	assert.Contains(t, report, "🟢 최소: 100.0 원/kWh")
	assert.Contains(t, report, "📊 평균: 100.0 원/kWh")
}

func TestFormatReportMissingAggregatesOmitted(t *testing.T) {
	table := newWeekTable("09.30")
	// Strip the aggregate rows; only hourly rows remain.
	var rows []Row
	for _, r := range table.Rows {
		if IsHourlyLabel(r.Label) {
			rows = append(rows, r)
		}
	}
	table.Rows = rows

	report := FormatReport(table, "", RegionMainland, refDate)
	assert.NotContains(t, report, "최대")
	assert.NotContains(t, report, "최소")
	assert.Contains(t, report, "1h")
}

func TestFormatReportNonNumericCellPassesThrough(t *testing.T) {
	table := newWeekTable("09.30")
	table.Rows[0].Cells["09.30"] = "점검중"
	table.Rows[1].Cells["09.30"] = ""

	var report string
	require.NotPanics(t, func() {
		report = FormatReport(table, "", RegionMainland, refDate)
	})

	// Non-numeric text appears unannotated; the missing cell's line is
	// dropped entirely.
	assert.Contains(t, report, "점검중")
	assert.NotContains(t, report, "🔴  1h")
	assert.NotContains(t, report, "\n🟢  2h")
}

func TestFormatReportJejuHeader(t *testing.T) {
	table := newWeekTable("09.30")
	report := FormatReport(table, "", RegionJeju, refDate)
	assert.Contains(t, report, "🏝 <b>KPX SMP 데이터 - 제주</b>")
}

func TestFormatReportSeverityPerLine(t *testing.T) {
	table := &Table{DateColumns: []string{"09.30"}}
	table.Rows = []Row{
		{Label: "1h", Cells: map[string]string{"09.30": "150.0"}},
		{Label: "2h", Cells: map[string]string{"09.30": "100.0"}},
		{Label: "3h", Cells: map[string]string{"09.30": "50.0"}},
	}

	report := FormatReport(table, "", RegionMainland, refDate)
	assert.Contains(t, report, "🔴  1h:   150.0 원/kWh")
	assert.Contains(t, report, "🟡  2h:   100.0 원/kWh")
	assert.Contains(t, report, "🟢  3h:    50.0 원/kWh")
}

func TestFormatWeeklyHeader(t *testing.T) {
	sunday := time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC)
	header := FormatWeeklyHeader(sunday)
	assert.Contains(t, header, "지난주 주간 리포트")
	assert.Contains(t, header, "2025.09.22 (월) ~ 2025.09.28 (일)")
}

func TestFormatReportIsChunkable(t *testing.T) {
	table := newWeekTable("09.24", "09.25", "09.26", "09.27", "09.28", "09.29", "09.30")
	report := FormatReport(table, "이번주", RegionMainland, refDate)

	parts := SplitMessage(report, 4000)
	assert.Equal(t, report, strings.Join(parts, "\n"))
}
