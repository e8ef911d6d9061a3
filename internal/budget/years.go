package budget

import (
	"regexp"
	"strconv"
)

var yearToken = regexp.MustCompile(`y=(\d{4})`)

// ResolveYears extracts the 4-digit fiscal year following the first
// "y=" token in rawURL and derives the prior-year URL by replacing
// that occurrence with the previous year. No other part of the URL is
// inspected.
func ResolveYears(rawURL string) (yearActual, yearAnterior int, priorURL string, err error) {
	loc := yearToken.FindStringSubmatchIndex(rawURL)
	if loc == nil {
		return 0, 0, "", &ValidationError{Msg: "falta el parámetro de año (y=) en la URL"}
	}
	yearActual, err = strconv.Atoi(rawURL[loc[2]:loc[3]])
	if err != nil {
		return 0, 0, "", &ValidationError{Msg: "falta el parámetro de año (y=) en la URL"}
	}
	yearAnterior = yearActual - 1
	priorURL = rawURL[:loc[2]] + strconv.Itoa(yearAnterior) + rawURL[loc[3]:]
	return yearActual, yearAnterior, priorURL, nil
}
