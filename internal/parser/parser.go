// Package parser extracts the line-item dataset from a portal report
// page.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dquispe/comparador-presupuestal/internal/budget"
)

// The portal marks its data table with the "Data" class.
const dataTableSelector = "table.Data"

// A qualifying row exposes at least this many cells; the label sits in
// the 2nd cell and the accrued amount in the 8th.
const (
	minCells   = 8
	labelCell  = 1
	amountCell = 7
)

type lineItem struct {
	label  string
	amount float64
}

// ParseDataset locates the first data table in the decoded page and
// folds its qualifying rows into a Dataset. Labels are normalized
// before insertion, so rows sharing a normalized label collapse to the
// last parsed amount. Rows whose amount does not parse are skipped.
func ParseDataset(page string) (*budget.Dataset, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find(dataTableSelector).First()
	if table.Length() == 0 {
		return nil, &budget.ParseError{Msg: "no se encontró la tabla de datos en la página"}
	}

	items := extractRows(table)
	if len(items) == 0 {
		return nil, &budget.ParseError{Msg: "la tabla de datos no contiene filas numéricas"}
	}

	dataset := budget.NewDataset()
	for _, item := range items {
		dataset.Set(budget.NormalizeLabel(item.label), item.amount)
	}
	return dataset, nil
}

func extractRows(table *goquery.Selection) []lineItem {
	var items []lineItem
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td, th")
		if cells.Length() < minCells {
			return
		}
		label := strings.TrimSpace(cells.Eq(labelCell).Text())
		raw := strings.ReplaceAll(strings.TrimSpace(cells.Eq(amountCell).Text()), ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Header and separator rows land here; not an error.
			return
		}
		items = append(items, lineItem{label: label, amount: amount})
	})
	return items
}
