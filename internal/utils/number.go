package utils

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Round rounds x to the nearest integer, with halves rounded towards positive infinity.
// Scores are rounded this way so that -2.5 becomes -2 and 2.5 becomes 3.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// FormatNumber renders x in its shortest decimal form: 3 prints as "3", 2.5 as "2.5".
// Infinities and NaN are spelled out.
func FormatNumber(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.IsNaN(x):
		return "NaN"
	}

	return strconv.FormatFloat(x, 'f', -1, 64)
}

// FormatFixed renders x with exactly digits decimals. Values lying exactly halfway between
// two candidates round away from zero, so 0.625 prints as "0.63" with two digits.
func FormatFixed(x float64, digits int) string {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return FormatNumber(x)
	}

	const prec = 256
	scaled := new(big.Float).SetPrec(prec).SetFloat64(math.Abs(x))
	scaled.Mul(scaled, new(big.Float).SetPrec(prec).SetFloat64(math.Pow10(digits)))

	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(prec).Sub(scaled, new(big.Float).SetPrec(prec).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return strconv.FormatFloat(x, 'f', digits, 64)
	}

	text := whole.Add(whole, big.NewInt(1)).String()
	if len(text) <= digits {
		text = strings.Repeat("0", digits-len(text)+1) + text
	}
	if digits > 0 {
		text = text[:len(text)-digits] + "." + text[len(text)-digits:]
	}
	if x < 0 {
		text = "-" + text
	}

	return text
}
