// Package measure resolves catalog unit codes into measurement kinds and
// converts raw dimensions into canonical feet / square feet for pricing.
package measure

import "strings"

// Kind determines which pricing formula applies to a line item
type Kind string

const (
	KindArea     Kind = "area"     // length x width, priced per sqft
	KindLength   Kind = "length"   // running feet
	KindQuantity Kind = "quantity" // counted units
	KindFixed    Kind = "fixed"    // flat amount, dimensions ignored
)

// kindByUnitCode is the fixed unit-code table. Codes not listed here degrade
// to quantity pricing rather than erroring, so a new catalog unit never
// breaks totals.
var kindByUnitCode = map[string]Kind{
	"sqft":    KindArea,
	"rft":     KindLength,
	"nos":     KindQuantity,
	"set":     KindQuantity,
	"lot":     KindFixed,
	"lumpsum": KindFixed,
	"kg":      KindQuantity,
	"ltr":     KindQuantity,
}

// ResolveKind maps a unit code to its measurement kind, case-insensitively.
// Unknown or empty codes resolve to KindQuantity.
func ResolveKind(unitCode string) Kind {
	if kind, ok := kindByUnitCode[strings.ToLower(strings.TrimSpace(unitCode))]; ok {
		return kind
	}
	return KindQuantity
}

// feetPerUnit converts supported dimension units to feet. Dimensions in an
// unrecognized unit are assumed to already be feet.
var feetPerUnit = map[string]float64{
	"ft": 1,
	"in": 1.0 / 12.0,
	"mm": 1.0 / 304.8,
	"cm": 1.0 / 30.48,
	"m":  1.0 / 0.3048,
}

// ToFeet converts a raw dimension value to feet. A nil value is treated as
// zero so dimension-incomplete rows contribute nothing instead of failing.
func ToFeet(value *float64, fromUnit string) float64 {
	if value == nil {
		return 0
	}
	factor, ok := feetPerUnit[strings.ToLower(strings.TrimSpace(fromUnit))]
	if !ok {
		factor = 1
	}
	return *value * factor
}

// AreaSquareFeet converts a raw length x width into square feet. Either
// dimension missing yields zero area.
func AreaSquareFeet(length, width *float64, fromUnit string) float64 {
	return ToFeet(length, fromUnit) * ToFeet(width, fromUnit)
}
