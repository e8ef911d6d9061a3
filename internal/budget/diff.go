package budget

import (
	"math"
	"sort"
)

// millionsDivisor converts raw currency units to millions.
const millionsDivisor = 1_000_000

// Diff merges two yearly datasets into ranked comparison rows. Labels
// missing on one side default to amount 0. The pre-sort order is the
// current dataset's insertion order followed by prior-only labels in
// their insertion order; the stable sort by VariacionS descending
// keeps that order for ties.
func Diff(current, prior *Dataset, yearActual, yearAnterior int) ComparisonResult {
	labels := make([]string, 0, current.Len()+prior.Len())
	labels = append(labels, current.Labels()...)
	for _, label := range prior.Labels() {
		if _, ok := current.Amount(label); !ok {
			labels = append(labels, label)
		}
	}

	rows := make([]ComparisonRow, 0, len(labels))
	for _, label := range labels {
		currAmount, _ := current.Amount(label)
		priorAmount, _ := prior.Amount(label)

		montoActual := scaleToMillions(currAmount)
		montoAnterior := scaleToMillions(priorAmount)

		rows = append(rows, ComparisonRow{
			Concepto:            label,
			MontoAnterior:       montoAnterior,
			MontoActual:         montoActual,
			VariacionS:          montoActual - montoAnterior,
			VariacionPorcentaje: variationPercent(montoActual, montoAnterior),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].VariacionS > rows[j].VariacionS
	})

	return ComparisonResult{
		YearActual:   yearActual,
		YearAnterior: yearAnterior,
		Data:         rows,
	}
}

// scaleToMillions truncates toward zero: 2,999,999 scales to 2 and
// -2,999,999 to -2.
func scaleToMillions(amount float64) int64 {
	return int64(amount / millionsDivisor)
}

// variationPercent is ((actual/anterior)*100 - 100) rounded to one
// decimal. A zero prior amount yields exactly 0: a policy choice to
// avoid division by zero, not a numerical result.
func variationPercent(montoActual, montoAnterior int64) float64 {
	if montoAnterior == 0 {
		return 0
	}
	pct := (float64(montoActual)/float64(montoAnterior))*100 - 100
	return math.Round(pct*10) / 10
}
