package budget

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel strips diacritics from a line-item label so that
// differently-accented spellings of the same concepto collapse to one
// dataset key: canonical decomposition (NFD) followed by removal of
// combining marks. "Educación" becomes "Educacion".
func NormalizeLabel(label string) string {
	// transform.Chain keeps per-call buffers, so build it per call
	// rather than sharing one across goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, label)
	if err != nil {
		return label
	}
	return out
}
