package sheet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// column identifies a recognised line-item column.
type column string

const (
	colCode        column = "code"
	colDescription column = "description"
	colQuantity    column = "quantity"
	colUnitPrice   column = "unit_price"
	colTotal       column = "total"
	colWeight      column = "net_weight"
)

// headerAliases lists the normalised header spellings accepted per column.
var headerAliases = map[column][]string{
	colCode:        {"code", "hs code", "hs", "tariff code", "nomenclature", "code sh", "sh code", "product code"},
	colDescription: {"description", "designation", "libelle", "goods description", "article"},
	colQuantity:    {"quantity", "qty", "quantite", "qte", "nombre"},
	colUnitPrice:   {"unit price", "price", "prix unitaire", "pu", "unit value", "valeur unitaire"},
	colTotal:       {"total", "amount", "montant", "line total", "total price", "prix total", "valeur"},
	colWeight:      {"net weight", "weight", "poids net", "poids", "net weight kg", "poids net kg"},
}

var aliasIndex = func() map[string]column {
	idx := make(map[string]column)
	for col, aliases := range headerAliases {
		for _, a := range aliases {
			idx[a] = col
		}
	}
	return idx
}()

// NormalizeHeader lower-cases h, drops accents and collapses everything that
// is not a letter or digit into single spaces.
func NormalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, h)
	if err != nil {
		plain = h
	}
	fields := strings.FieldsFunc(strings.ToLower(plain), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

// mapHeader returns the position of each recognised column in row.
func mapHeader(row []string) map[column]int {
	positions := make(map[column]int)
	for i, cell := range row {
		col, ok := aliasIndex[NormalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, seen := positions[col]; !seen {
			positions[col] = i
		}
	}
	return positions
}
