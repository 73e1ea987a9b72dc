// Package pricing computes deterministic price quotes for compounded formulas.
package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/interfaces"
)

// DefaultQuantity is used when the total quantity has no number in it.
const DefaultQuantity = 30

var (
	dosePattern     = regexp.MustCompile(`(\d+\.?\d*)\s*([a-z]+)`)
	quantityPattern = regexp.MustCompile(`\d+`)
)

// Calculator prices formulas against a Table. It holds no mutable state.
type Calculator struct {
	table Table
}

var _ interfaces.Quoter = (*Calculator)(nil)

// NewCalculator creates a calculator for the given table.
func NewCalculator(table Table) *Calculator {
	return &Calculator{table: table}
}

// Price returns the cost breakdown of formula. Amounts are rounded to cents
// only in the returned breakdown.
func (c *Calculator) Price(formula entities.Formula) entities.PriceBreakdown {
	quantity := ParseQuantity(formula.TotalQuantity)

	var ingredientsCost float64
	lines := make([]entities.IngredientCost, 0, len(formula.Insumos))
	for _, insumo := range formula.Insumos {
		value, unit := ParseDose(insumo.Dose)
		doseMg := toMilligrams(value, unit)

		subtotal := doseMg * c.table.unitCost(insumo.Name) * float64(quantity)
		ingredientsCost += subtotal

		lines = append(lines, entities.IngredientCost{
			Name:      insumo.Name,
			UnitDose:  insumo.Dose,
			DoseMg:    doseMg,
			UnitCount: quantity,
			Subtotal:  entities.RoundMoney(subtotal),
		})
	}

	rounded := entities.RoundMoney(ingredientsCost)
	labor := entities.RoundMoney(c.table.LaborCost)
	packaging := entities.RoundMoney(c.table.PackagingCost)

	// Total is the plain sum of the rounded components; Money prints with two decimals.
	return entities.PriceBreakdown{
		IngredientsCost: rounded,
		LaborCost:       labor,
		PackagingCost:   packaging,
		TotalPrice:      rounded + labor + packaging,
		PerIngredient:   lines,
	}
}

// Quote prices formula and attaches the display string.
func (c *Calculator) Quote(formula entities.Formula) entities.Quote {
	breakdown := c.Price(formula)
	return entities.Quote{Breakdown: breakdown, Formatted: Format(breakdown.TotalPrice)}
}

// ParseDose extracts the numeric value and unit of a dose string such as
// "500mg" or "0,5 g". Unrecognized strings yield (0, "").
func ParseDose(dose string) (float64, string) {
	normalized := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(dose), ",", "."))
	if normalized == "" {
		return 0, ""
	}

	m := dosePattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0, ""
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, ""
	}
	return value, m[2]
}

// ParseQuantity returns the first integer in s, or DefaultQuantity.
func ParseQuantity(s string) int {
	m := quantityPattern.FindString(s)
	if m == "" {
		return DefaultQuantity
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return DefaultQuantity
	}
	return n
}

// toMilligrams converts grams and micrograms; other units pass through.
func toMilligrams(value float64, unit string) float64 {
	switch unit {
	case "g":
		return value * 1000
	case "mcg":
		return value / 1000
	default:
		return value
	}
}

// Format renders an amount as "R$ 80.12".
func Format(amount entities.Money) string {
	return fmt.Sprintf("R$ %.2f", float64(amount))
}

// Summary renders a multi-line quote for chat-style channels.
func Summary(b entities.PriceBreakdown) string {
	var sb strings.Builder
	for _, line := range b.PerIngredient {
		fmt.Fprintf(&sb, "• %s (%s x %d): %s\n", line.Name, line.UnitDose, line.UnitCount, Format(line.Subtotal))
	}
	fmt.Fprintf(&sb, "Insumos: %s\n", Format(b.IngredientsCost))
	fmt.Fprintf(&sb, "Manipulação: %s\n", Format(b.LaborCost))
	fmt.Fprintf(&sb, "Embalagem: %s\n", Format(b.PackagingCost))
	fmt.Fprintf(&sb, "💰 Total: %s", Format(b.TotalPrice))
	return sb.String()
}
