package enums

import "fmt"

// ProductUnit defines the selling unit for a catalog product.
type ProductUnit string

const (
	ProductUnitUnit     ProductUnit = "unit"
	ProductUnitGram     ProductUnit = "gram"
	ProductUnitKilogram ProductUnit = "kilogram"
	ProductUnitBundle   ProductUnit = "bundle"
)

var validProductUnits = []ProductUnit{
	ProductUnitUnit,
	ProductUnitGram,
	ProductUnitKilogram,
	ProductUnitBundle,
}

// String implements fmt.Stringer.
func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value matches a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
