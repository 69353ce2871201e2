package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownCode is returned when a correction names a code absent from the Tariff Table.
var ErrUnknownCode = errors.New("engine: code not in tariff table")

// UnmatchedLine is a line whose product code has no Tariff Table entry. Such
// lines compute to zero duty, RRR and RCP until corrected.
type UnmatchedLine struct {
	Index       int    `json:"index"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ResolveTariffs returns a copy of lines with every tariff snapshot re-read
// from tariffs. Snapshots are never carried over from a previous resolution.
func ResolveTariffs(lines []LineItem, tariffs TariffRepository) []LineItem {
	out := make([]LineItem, len(lines))
	for i, line := range lines {
		line.Tariff = nil
		if entry, ok := tariffs.Tariff(line.Code); ok {
			snapshot := entry
			line.Tariff = &snapshot
		}
		out[i] = line
	}
	return out
}

// Unmatched lists lines without a tariff snapshot.
func Unmatched(lines []LineItem) []UnmatchedLine {
	var out []UnmatchedLine
	for i, line := range lines {
		if line.Tariff == nil {
			out = append(out, UnmatchedLine{Index: i, Code: line.Code, Description: line.Description})
		}
	}
	return out
}

// Resolver supports manual correction of unmatched codes.
type Resolver struct {
	tariffs TariffRepository
}

func NewResolver(tariffs TariffRepository) *Resolver {
	return &Resolver{tariffs: tariffs}
}

// Search finds candidate tariff lines by code prefix or description text.
func (r *Resolver) Search(query string, limit int) []TariffEntry {
	return r.tariffs.SearchTariffs(query, limit)
}

// Correct returns a copy of lines where line index carries code and that
// code's full tariff snapshot.
func (r *Resolver) Correct(lines []LineItem, index int, code string) ([]LineItem, error) {
	if index < 0 || index >= len(lines) {
		return nil, fmt.Errorf("%w: line index %d out of range", ErrInvalidLine, index)
	}
	entry, ok := r.tariffs.Tariff(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCode, code)
	}
	out := make([]LineItem, len(lines))
	copy(out, lines)
	out[index].Code = entry.Code
	out[index].Tariff = &entry
	return out, nil
}
