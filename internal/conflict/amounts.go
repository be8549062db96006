package conflict

import (
	"regexp"
	"strconv"
	"strings"
)

// Currency patterns, applied in order. The first pattern's amounts are in
// thousands ($45k), the second carries a thousands separator ($15,000), the
// last is a bare dollar figure ($500).
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+)[kK]`),
	regexp.MustCompile(`\$(\d+,\d+)`),
	regexp.MustCompile(`\$(\d+)`),
}

// ExtractAmounts pulls every numeric currency amount out of a fact's
// content, in pattern order. A trailing k multiplies by 1000. Comparisons
// elsewhere use only the first amount of each fact.
func ExtractAmounts(text string) []float64 {
	var amounts []float64
	for i, pattern := range amountPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			raw := strings.ReplaceAll(match[1], ",", "")
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			if i == 0 {
				value *= 1000
			}
			amounts = append(amounts, value)
		}
	}
	return amounts
}

// FormatCurrency renders an amount the way conflict descriptions show it:
// thousands collapse to $Nk, smaller amounts stay verbatim.
func FormatCurrency(amount float64) string {
	if amount >= 1000 {
		return "$" + strconv.FormatFloat(amount/1000, 'f', -1, 64) + "k"
	}
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}
