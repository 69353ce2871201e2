package engine

import (
	"sort"
	"strings"
	"unicode"
)

// TariffRepository looks tariff lines up by normalized code and searches them
// for manual code correction.
type TariffRepository interface {
	Tariff(code string) (TariffEntry, bool)
	SearchTariffs(query string, limit int) []TariffEntry
}

// ExemptionRepository looks up conformity-certification entries.
type ExemptionRepository interface {
	Exemption(code string) (ExemptionEntry, bool)
}

// PortFeeRepository looks up per-tonne port levies by cargo category.
type PortFeeRepository interface {
	PortFee(category string) (PortFeeEntry, bool)
}

// RateTables bundles the three reference tables the engine reads.
type RateTables interface {
	TariffRepository
	ExemptionRepository
	PortFeeRepository
}

// NormalizeCode strips whitespace and punctuation from a product code and
// upper-cases it, so "8517.12.00 00" and "85171200 00" match.
func NormalizeCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Tables is an immutable in-memory RateTables built once from loaded rows.
// It is safe for concurrent reads.
type Tables struct {
	tariffs    map[string]TariffEntry
	tariffKeys []string
	exemptions map[string]ExemptionEntry
	portFees   map[string]PortFeeEntry
}

// NewTables indexes the given rows. Later rows win on duplicate codes.
func NewTables(tariffs []TariffEntry, exemptions []ExemptionEntry, portFees []PortFeeEntry) *Tables {
	t := &Tables{
		tariffs:    make(map[string]TariffEntry, len(tariffs)),
		exemptions: make(map[string]ExemptionEntry, len(exemptions)),
		portFees:   make(map[string]PortFeeEntry, len(portFees)),
	}
	for _, entry := range tariffs {
		key := NormalizeCode(entry.Code)
		if key == "" {
			continue
		}
		entry.Code = key
		t.tariffs[key] = entry
	}
	t.tariffKeys = make([]string, 0, len(t.tariffs))
	for key := range t.tariffs {
		t.tariffKeys = append(t.tariffKeys, key)
	}
	sort.Strings(t.tariffKeys)

	for _, entry := range exemptions {
		key := NormalizeCode(entry.Code)
		if key == "" {
			continue
		}
		entry.Code = key
		t.exemptions[key] = entry
	}
	for _, entry := range portFees {
		key := normalizeCategory(entry.Category)
		if key == "" {
			continue
		}
		t.portFees[key] = entry
	}
	return t
}

func (t *Tables) Tariff(code string) (TariffEntry, bool) {
	entry, ok := t.tariffs[NormalizeCode(code)]
	return entry, ok
}

// SearchTariffs returns entries whose code starts with the normalized query or
// whose description contains the query, case-insensitively, in code order.
// A non-positive limit means no limit.
func (t *Tables) SearchTariffs(query string, limit int) []TariffEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	codeQuery := NormalizeCode(query)
	textQuery := strings.ToLower(query)

	var out []TariffEntry
	for _, key := range t.tariffKeys {
		entry := t.tariffs[key]
		if (codeQuery != "" && strings.HasPrefix(key, codeQuery)) ||
			strings.Contains(strings.ToLower(entry.Description), textQuery) {
			out = append(out, entry)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

func (t *Tables) Exemption(code string) (ExemptionEntry, bool) {
	entry, ok := t.exemptions[NormalizeCode(code)]
	return entry, ok
}

func (t *Tables) PortFee(category string) (PortFeeEntry, bool) {
	entry, ok := t.portFees[normalizeCategory(category)]
	return entry, ok
}

// Len returns the number of tariff, exemption and port-fee entries.
func (t *Tables) Len() (tariffs, exemptions, portFees int) {
	return len(t.tariffs), len(t.exemptions), len(t.portFees)
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
