package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dquispe/comparador-presupuestal/internal/budget"
)

func dataRow(label, amount string) string {
	return fmt.Sprintf(
		"<tr><td>x</td><td> %s </td><td></td><td></td><td></td><td></td><td></td><td> %s </td></tr>",
		label, amount,
	)
}

func pageWithRows(rows ...string) string {
	return `<html><body>
<table class="Mensajes"><tr><td>aviso</td></tr></table>
<table class="Data">
<tr><th>#</th><th>Concepto</th><th>PIA</th><th>PIM</th><th>Certificación</th><th>Compromiso</th><th>Atención</th><th>Devengado</th></tr>
` + strings.Join(rows, "\n") + `
</table>
</body></html>`
}

func TestParseDataset_ExtractsLabelsAndAmounts(t *testing.T) {
	t.Parallel()

	page := pageWithRows(
		dataRow("PERSONAL Y OBLIGACIONES SOCIALES", "1,005,000,000.50"),
		dataRow("BIENES Y SERVICIOS", "250000"),
	)

	ds, err := ParseDataset(page)

	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	amount, ok := ds.Amount("PERSONAL Y OBLIGACIONES SOCIALES")
	require.True(t, ok)
	require.InDelta(t, 1_005_000_000.50, amount, 1e-6)
	amount, ok = ds.Amount("BIENES Y SERVICIOS")
	require.True(t, ok)
	require.Equal(t, 250000.0, amount)
}

func TestParseDataset_NormalizesLabelsInline(t *testing.T) {
	t.Parallel()

	page := pageWithRows(dataRow("ADQUISICIÓN DE ACTIVOS", "1,000"))

	ds, err := ParseDataset(page)

	require.NoError(t, err)
	_, ok := ds.Amount("ADQUISICION DE ACTIVOS")
	require.True(t, ok)
	require.Equal(t, []string{"ADQUISICION DE ACTIVOS"}, ds.Labels())
}

func TestParseDataset_DuplicateLabelsCollapseToLastAmount(t *testing.T) {
	t.Parallel()

	page := pageWithRows(
		dataRow("Personal", "100"),
		dataRow("Personal", "900"),
	)

	ds, err := ParseDataset(page)

	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	amount, _ := ds.Amount("Personal")
	require.Equal(t, 900.0, amount)
}

func TestParseDataset_SkipsRowsWithUnparsableAmounts(t *testing.T) {
	t.Parallel()

	page := pageWithRows(
		dataRow("Subtotal", "—"),
		dataRow("Personal", "42"),
	)

	ds, err := ParseDataset(page)

	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	_, ok := ds.Amount("Subtotal")
	require.False(t, ok)
}

func TestParseDataset_CountsHeaderCellsTowardColumns(t *testing.T) {
	t.Parallel()

	// The portal marks the row-number cell as <th>; the row still
	// qualifies and cell indexes follow document order.
	page := `<html><body><table class="Data">
<tr><th>1</th><td>Personal</td><td></td><td></td><td></td><td></td><td></td><td>42</td></tr>
</table></body></html>`

	ds, err := ParseDataset(page)

	require.NoError(t, err)
	amount, ok := ds.Amount("Personal")
	require.True(t, ok)
	require.Equal(t, 42.0, amount)
}

func TestParseDataset_UsesFirstDataTable(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<table class="Data">` + dataRow("Primera", "10") + `</table>
<table class="Data">` + dataRow("Segunda", "20") + `</table>
</body></html>`

	ds, err := ParseDataset(page)

	require.NoError(t, err)
	require.Equal(t, []string{"Primera"}, ds.Labels())
}

func TestParseDataset_NoDataTable(t *testing.T) {
	t.Parallel()

	page := `<html><body><table class="Mensajes"><tr><td>sin resultados</td></tr></table></body></html>`

	_, err := ParseDataset(page)

	var perr *budget.ParseError
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Error(), "no se encontró la tabla")
}

func TestParseDataset_TableWithoutNumericRows(t *testing.T) {
	t.Parallel()

	// Rows with fewer than 8 cells never qualify, so the table yields
	// no numeric data at all.
	page := `<html><body>
<table class="Data">
<tr><td>uno</td><td>dos</td><td>tres</td></tr>
<tr><td>cuatro</td><td>cinco</td></tr>
</table>
</body></html>`

	_, err := ParseDataset(page)

	var perr *budget.ParseError
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Error(), "no contiene filas numéricas")
}
