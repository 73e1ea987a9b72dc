package entities

import (
	"math"
	"strconv"
)

// Money is a currency amount in reais. It is encoded with two decimals.
type Money float64

// RoundMoney rounds a raw amount to cents.
func RoundMoney(v float64) Money {
	return Money(math.Round(v*100) / 100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(m), 'f', 2, 64)), nil
}

// IngredientCost is one line of a price breakdown.
type IngredientCost struct {
	Name      string  `json:"name"`
	UnitDose  string  `json:"unit_dose"`
	DoseMg    float64 `json:"dose_mg"`
	UnitCount int     `json:"unit_count"`
	Subtotal  Money   `json:"subtotal"`
}

// PriceBreakdown is a pure function of a Formula and a price table.
type PriceBreakdown struct {
	IngredientsCost Money            `json:"ingredients_cost"`
	LaborCost       Money            `json:"labor_cost"`
	PackagingCost   Money            `json:"packaging_cost"`
	TotalPrice      Money            `json:"total_price"`
	PerIngredient   []IngredientCost `json:"per_ingredient"`
}

// Quote pairs a breakdown with its display string.
type Quote struct {
	Breakdown PriceBreakdown `json:"breakdown"`
	Formatted string         `json:"formatted"`
}
