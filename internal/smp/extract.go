package smp

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// ErrNoTable is returned when the document contains no table element at all.
var ErrNoTable = errors.New("no table element found in document")

// ExtractTable locates the SMP price table in raw HTML and converts it into
// a Table. The conTable class marker is preferred; when it is absent the
// first table in the document is used instead and the result is flagged as
// low confidence, since a page-structure change could hand us an unrelated
// table.
func ExtractTable(logger zerolog.Logger, rawHTML string) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	table := &Table{}

	sel := doc.Find("table.conTable").First()
	if sel.Length() == 0 {
		sel = doc.Find("table").First()
		if sel.Length() == 0 {
			return nil, ErrNoTable
		}
		table.LowConfidence = true
		logger.Warn().Msg("conTable class not found, falling back to first table in document")
	}

	sel.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}

		if len(table.DateColumns) == 0 {
			// Header row: label column followed by one column per date.
			if len(cells) >= 2 {
				table.DateColumns = cells[1:]
			}
			return
		}

		row := Row{Label: cells[0], Cells: make(map[string]string)}
		for j, col := range table.DateColumns {
			if j+1 < len(cells) {
				row.Cells[col] = cells[j+1]
			}
		}
		table.Rows = append(table.Rows, row)
	})

	if len(table.DateColumns) == 0 {
		return nil, errors.New("table has no header row with date columns")
	}

	if n := len(table.HourlyRows()); n < 24 {
		logger.Warn().Int("hourly_rows", n).Msg("table has fewer than 24 hourly rows")
	}

	return table, nil
}

// extractCSRFToken pulls the anti-forgery token embedded as a hidden form
// field. An empty token is tolerated; the server may still answer the POST.
func extractCSRFToken(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	return doc.Find(`input[name="_csrf"]`).First().AttrOr("value", "")
}
