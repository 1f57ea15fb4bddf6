package match

import (
	"regexp"
	"strings"

	"order-intake/internal/catalog"
)

// "(WID-BL-01)" и прочие коды в скобках
var rxParens = regexp.MustCompile(`\([^()]*\)`)

var rxNonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Normalize prepares a free-text product reference: parenthesized parts are
// removed, then the text is lowercased with whitespace collapsed.
func Normalize(ref string) string {
	return catalog.NameKey(rxParens.ReplaceAllString(ref, " "))
}

// process готовит строку для скоринга: пунктуация → пробел, нижний регистр, схлопнуть пробелы.
func process(s string) string {
	return collapseSpaces(rxNonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
