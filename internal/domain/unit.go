package domain

import "fmt"

// Unit is the measurement unit of an item amount. The set is closed; anything
// else is rejected at the boundary.
type Unit string

const (
	UnitItem       Unit = "ITEM"
	UnitTeaspoon   Unit = "TEASPOON"
	UnitTablespoon Unit = "TABLESPOON"
	UnitFluid      Unit = "FLUID"
	UnitGill       Unit = "GILL"
	UnitCup        Unit = "CUP"
	UnitPint       Unit = "PINT"
	UnitQuart      Unit = "QUART"
	UnitGallon     Unit = "GALLON"
	UnitMilliliter Unit = "MILLILITER"
	UnitLiter      Unit = "LITER"
	UnitDeciliter  Unit = "DECILITER"
	UnitPound      Unit = "POUND"
	UnitOunce      Unit = "OUNCE"
	UnitMilligram  Unit = "MILLIGRAM"
	UnitGram       Unit = "GRAM"
	UnitKilogram   Unit = "KILOGRAM"
	UnitMillimeter Unit = "MILLIMETER"
	UnitCentimeter Unit = "CENTIMETER"
	UnitMeter      Unit = "METER"
	UnitInch       Unit = "INCH"
)

var validUnits = map[Unit]struct{}{
	UnitItem: {}, UnitTeaspoon: {}, UnitTablespoon: {}, UnitFluid: {},
	UnitGill: {}, UnitCup: {}, UnitPint: {}, UnitQuart: {}, UnitGallon: {},
	UnitMilliliter: {}, UnitLiter: {}, UnitDeciliter: {}, UnitPound: {},
	UnitOunce: {}, UnitMilligram: {}, UnitGram: {}, UnitKilogram: {},
	UnitMillimeter: {}, UnitCentimeter: {}, UnitMeter: {}, UnitInch: {},
}

// ParseUnit validates s against the closed unit set.
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := validUnits[u]; !ok {
		return "", fmt.Errorf("invalid unit %q", s)
	}
	return u, nil
}

func (u Unit) Valid() bool {
	_, ok := validUnits[u]
	return ok
}

func (u Unit) String() string {
	return string(u)
}
