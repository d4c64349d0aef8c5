// Package normalizer converts locale-formatted amount cells into decimal values.
// It handles currency symbols, grouping separators, trailing negative markers,
// and malformed export artifacts.
package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dpereyra/historial-firmante/internal/domain/report/table"
)

// Convention selects which separator groups thousands and which marks the
// decimal point. It is a fixed deployment choice, never detected per file.
type Convention struct {
	Grouping rune
	Decimal  rune
}

var (
	// Argentine convention: 21.354.480,00
	Argentine = Convention{Grouping: '.', Decimal: ','}
	// American convention: 21,354,480.00
	American = Convention{Grouping: ',', Decimal: '.'}
)

// maxCellLen is the length beyond which a cell is assumed to be a
// column-misalignment artifact rather than an amount.
const maxCellLen = 50

// currencySymbols are stripped before any numeric interpretation.
var currencySymbols = []string{"$", "€", "£", "R$", "¥", "₹", "ARS", "USD"}

// Outcome is the tagged result of normalizing one cell: either a finite
// decimal value, or an explicit unparsable marker carrying the raw text.
// Unparsable cells are never silently coerced to zero here; the aggregation
// layer decides how to account for them.
type Outcome struct {
	Value      decimal.Decimal
	Unparsable bool
	Raw        string
}

// Zero is the outcome for absent amounts.
func Zero() Outcome {
	return Outcome{Value: decimal.Zero}
}

func unparsable(raw string) Outcome {
	return Outcome{Unparsable: true, Raw: raw}
}

// Normalize converts a single cell into an Outcome under the given convention.
// Empty cells yield zero (absence means "no amount stated"), native numbers
// pass through untouched, and text goes through symbol stripping, separator
// canonicalization and a defensive character filter before conversion.
func Normalize(cell table.Cell, conv Convention) Outcome {
	if cell.IsNumber() {
		return Outcome{Value: decimal.NewFromFloat(cell.Float())}
	}

	raw := cell.String()
	s := strings.TrimSpace(raw)
	if s == "" {
		return Zero()
	}
	if len(s) > maxCellLen {
		return unparsable(raw)
	}

	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.TrimSpace(s)

	// Keep only digits, the convention's separators and sign markers. Stray
	// punctuation and quoting artifacts from malformed exports are dropped.
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == conv.Grouping || r == conv.Decimal || r == '-':
			return r
		}
		return -1
	}, s)

	if s == "" {
		return unparsable(raw)
	}

	// Some exports suffix the negative sign: "100,00-".
	if strings.HasSuffix(s, "-") && !strings.HasPrefix(s, "-") {
		s = "-" + strings.TrimSuffix(s, "-")
	}

	s = strings.ReplaceAll(s, string(conv.Grouping), "")
	if conv.Decimal != '.' {
		s = strings.ReplaceAll(s, string(conv.Decimal), ".")
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return unparsable(raw)
	}
	return Outcome{Value: value}
}
