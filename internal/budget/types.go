// Package budget defines the domain model shared across subsystems:
// line-item datasets extracted from portal report pages, the
// year-over-year comparison output, and the error taxonomy.
package budget

// Dataset is an insertion-ordered mapping from normalized line-item
// label (concepto) to its raw accrued amount in source currency units.
// Setting an existing label overwrites the amount without moving the
// label's position (last write wins).
type Dataset struct {
	labels  []string
	amounts map[string]float64
}

// NewDataset returns an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{amounts: make(map[string]float64)}
}

// Set records the amount for a label, overwriting any previous value.
func (d *Dataset) Set(label string, amount float64) {
	if _, ok := d.amounts[label]; !ok {
		d.labels = append(d.labels, label)
	}
	d.amounts[label] = amount
}

// Amount returns the amount for a label and whether it is present.
func (d *Dataset) Amount(label string) (float64, bool) {
	amount, ok := d.amounts[label]
	return amount, ok
}

// Labels returns the labels in insertion order.
func (d *Dataset) Labels() []string {
	return d.labels
}

// Len returns the number of distinct labels.
func (d *Dataset) Len() int {
	return len(d.labels)
}

// ComparisonRow is one line item of the year-over-year comparison.
// Amounts are scaled to millions by truncation toward zero.
type ComparisonRow struct {
	Concepto            string  `json:"concepto"`
	MontoAnterior       int64   `json:"montoAnterior"`
	MontoActual         int64   `json:"montoActual"`
	VariacionS          int64   `json:"variacionS"`
	VariacionPorcentaje float64 `json:"variacionPorcentaje"`
}

// ComparisonResult is the full comparison returned to API clients,
// with rows ordered by VariacionS descending.
type ComparisonResult struct {
	YearActual   int             `json:"yearActual"`
	YearAnterior int             `json:"yearAnterior"`
	Data         []ComparisonRow `json:"data"`
}
