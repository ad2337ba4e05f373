package smp

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTableHTML renders a KPX-style price table page. withClass controls
// whether the table carries the conTable class marker.
func buildTableHTML(cols []string, withClass bool) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"content\">")
	if withClass {
		b.WriteString(`<table class="conTable tdCenter">`)
	} else {
		b.WriteString("<table>")
	}

	b.WriteString("<thead><tr><th>구분</th>")
	for _, col := range cols {
		fmt.Fprintf(&b, "<th>%s</th>", col)
	}
	b.WriteString("</tr></thead><tbody>")

	for h := 1; h <= 24; h++ {
		fmt.Fprintf(&b, "<tr><td>%dh</td>", h)
		for i := range cols {
			fmt.Fprintf(&b, "<td>%.1f</td>", 80.0+float64(h)+float64(i))
		}
		b.WriteString("</tr>")
	}
	for _, label := range []string{LabelMax, LabelMin, LabelWeightedAvg} {
		fmt.Fprintf(&b, "<tr><td>%s</td>", label)
		for range cols {
			b.WriteString("<td>100.0</td>")
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table></div></body></html>")
	return b.String()
}

func TestExtractTable(t *testing.T) {
	cols := []string{"09.24", "09.25", "09.26", "09.27", "09.28", "09.29", "09.30"}
	table, err := ExtractTable(zerolog.Nop(), buildTableHTML(cols, true))
	require.NoError(t, err)

	assert.Equal(t, cols, table.DateColumns)
	assert.False(t, table.LowConfidence)
	assert.Len(t, table.HourlyRows(), 24)

	assert.Equal(t, "81.0", table.Cell("1h", "09.24"))
	assert.Equal(t, "110.0", table.Cell("24h", "09.30"))
	assert.Equal(t, "100.0", table.Cell(LabelMax, "09.26"))
	assert.Equal(t, "100.0", table.Cell(LabelWeightedAvg, "09.30"))
}

func TestExtractTableFallbackToFirstTable(t *testing.T) {
	table, err := ExtractTable(zerolog.Nop(), buildTableHTML([]string{"09.29", "09.30"}, false))
	require.NoError(t, err)

	assert.True(t, table.LowConfidence)
	assert.Equal(t, []string{"09.29", "09.30"}, table.DateColumns)
	assert.Len(t, table.HourlyRows(), 24)
}

func TestExtractTablePrefersClassMatch(t *testing.T) {
	// A navigation table precedes the data table; the class marker must win.
	html := `<html><body>
		<table><tr><th>메뉴</th><th>링크</th></tr><tr><td>a</td><td>b</td></tr></table>
		` + buildTableHTML([]string{"09.30"}, true) + `</body></html>`

	table, err := ExtractTable(zerolog.Nop(), html)
	require.NoError(t, err)
	assert.False(t, table.LowConfidence)
	assert.Equal(t, []string{"09.30"}, table.DateColumns)
}

func TestExtractTableNoTable(t *testing.T) {
	_, err := ExtractTable(zerolog.Nop(), "<html><body><p>점검 중입니다</p></body></html>")
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestExtractTableMissingCells(t *testing.T) {
	html := `<table class="conTable">
		<tr><th>구분</th><th>09.29</th><th>09.30</th></tr>
		<tr><td>1h</td><td>91.5</td></tr>
	</table>`

	table, err := ExtractTable(zerolog.Nop(), html)
	require.NoError(t, err)
	assert.Equal(t, "91.5", table.Cell("1h", "09.29"))
	assert.Equal(t, "", table.Cell("1h", "09.30"))
}

func TestExtractCSRFToken(t *testing.T) {
	html := `<form><input type="hidden" name="_csrf" value="tok-123"/></form>`
	assert.Equal(t, "tok-123", extractCSRFToken(html))
	assert.Equal(t, "", extractCSRFToken("<html><body></body></html>"))
}
