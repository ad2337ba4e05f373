package smp

import (
	"regexp"
	"time"
)

// Region selects which KPX price table to query. The mainland and Jeju
// grids are served by the same endpoint, distinguished only by the `mid`
// routing parameter.
type Region string

const (
	RegionMainland Region = "mainland"
	RegionJeju     Region = "jeju"
)

// Mid returns the KPX `mid` query parameter for the region.
func (r Region) Mid() string {
	if r == RegionJeju {
		return "a10606080200"
	}
	return "a10606080100"
}

// Label returns the Korean display name used in reports.
func (r Region) Label() string {
	if r == RegionJeju {
		return "제주"
	}
	return "육지"
}

// Icon returns the emoji shown next to the region name.
func (r Region) Icon() string {
	if r == RegionJeju {
		return "🏝"
	}
	return "🌍"
}

// Aggregate row labels as they appear in the KPX table.
const (
	LabelMax         = "최대"
	LabelMin         = "최소"
	LabelWeightedAvg = "가중평균"
)

// hourlyLabel matches time-slot row labels such as "1h" or "24h".
var hourlyLabel = regexp.MustCompile(`^\d{1,2}h$`)

// IsHourlyLabel reports whether a row label denotes an hourly time slot.
func IsHourlyLabel(label string) bool {
	return hourlyLabel.MatchString(label)
}

// Row is one table row: a label (hourly slot or aggregate marker) and the
// raw cell text per date column. A missing cell is the empty string; cells
// are not coerced to numbers until the formatter inspects them.
type Row struct {
	Label string
	Cells map[string]string
}

// Table is the scraped SMP table. DateColumns holds the header's date
// display strings (e.g. "09.28") in document order.
type Table struct {
	DateColumns []string
	Rows        []Row

	// LowConfidence marks a table found through the first-table fallback
	// rather than the conTable class match.
	LowConfidence bool
}

// Empty reports whether the table carries no usable data.
func (t *Table) Empty() bool {
	return t == nil || len(t.DateColumns) == 0 || len(t.Rows) == 0
}

// HourlyRows returns the rows whose label is an hourly time slot, in
// table order.
func (t *Table) HourlyRows() []Row {
	var rows []Row
	for _, r := range t.Rows {
		if IsHourlyLabel(r.Label) {
			rows = append(rows, r)
		}
	}
	return rows
}

// Cell returns the raw cell text for the row with the given label, or ""
// when the row or cell is absent.
func (t *Table) Cell(label, dateCol string) string {
	for _, r := range t.Rows {
		if r.Label == label {
			return r.Cells[dateCol]
		}
	}
	return ""
}

// RunStatus describes the outcome of one pipeline run for a region. It is
// operational metadata only; no price data is retained across requests.
type RunStatus struct {
	Region        Region    `json:"region"`
	When          time.Time `json:"when"`
	OK            bool      `json:"ok"`
	Error         string    `json:"error,omitempty"`
	ReportLength  int       `json:"reportLength"`
	LowConfidence bool      `json:"lowConfidence"`
}

// StatusRecorder is the contract the in-memory status store must satisfy.
type StatusRecorder interface {
	Record(status RunStatus)
	Latest(region Region) (RunStatus, bool)
}
