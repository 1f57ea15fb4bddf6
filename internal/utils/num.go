package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// одно число, вокруг него допускается только валюта/единицы без цифр
	rxSingleNum = regexp.MustCompile(`^\D*?([-+]?[\d.,]+)\D*$`)
	maxCount    = decimal.NewFromInt(1<<31 - 1)
	spaces      = strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "", "\t", "")
)

// ParseDecimal парсит "1 234,50", "1,234.50", "$10.00", "197 ,00" (NBSP/NNBSP), "1e3" и т.п.
// Currency or unit text may surround a single number; text with digits on
// both sides ("5 boxes of 10", "200 (2 pallets)") is not a number and
// returns false, as does blank input.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	// убрать неразрывные/узкие пробелы и обычные пробелы
	s = spaces.Replace(s)
	m := rxSingleNum.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, false
	}
	num := normalizeSeparators(strings.TrimPrefix(m[1], "+"))
	if strings.Trim(num, "-.") == "" || strings.Count(num, ".") > 1 {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseCount parses a non-negative whole number such as a stock level or MOQ.
// "1,000", "12.0" and "5 шт" are accepted; "-3" and "2.5" are not.
func ParseCount(s string) (int, bool) {
	d, ok := ParseDecimal(s)
	if !ok || d.IsNegative() || !d.IsInteger() || d.GreaterThan(maxCount) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// normalizeSeparators turns the decimal separator into '.' and drops
// thousands separators. When both ',' and '.' occur, the last one is the
// decimal separator. A lone ',' followed by exactly three digits is read as
// a thousands separator ("1,000"), otherwise as a decimal comma ("197,00").
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma < 0:
		return s
	case lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ",") > 1:
		return strings.ReplaceAll(s, ",", "")
	default:
		if digitsAfter(s[lastComma+1:]) == 3 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	}
}

func digitsAfter(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n++
	}
	return n
}
