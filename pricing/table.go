package pricing

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Built-in costs in reais. Unit costs are per milligram (or millilitre).
const (
	DefaultUnitCost      = 0.0020
	DefaultLaborCost     = 15.00
	DefaultPackagingCost = 5.00
)

// UnitCost is the price of one milligram of a named ingredient.
type UnitCost struct {
	Name     string  `toml:"name"`
	UnitCost float64 `toml:"unit_cost"`
}

// Table holds ingredient unit costs and the fixed compounding costs.
// Ingredient order matters: the first entry contained in a name wins.
type Table struct {
	DefaultUnitCost float64    `toml:"default_unit_cost"`
	LaborCost       float64    `toml:"labor_cost"`
	PackagingCost   float64    `toml:"packaging_cost"`
	Ingredients     []UnitCost `toml:"ingredients"`
}

// DefaultTable returns the built-in price table.
func DefaultTable() Table {
	return Table{
		DefaultUnitCost: DefaultUnitCost,
		LaborCost:       DefaultLaborCost,
		PackagingCost:   DefaultPackagingCost,
		Ingredients: []UnitCost{
			{Name: "PARACETAMOL", UnitCost: 0.0005},
			{Name: "DIPIRONA", UnitCost: 0.0004},
			{Name: "IBUPROFENO", UnitCost: 0.0006},
			{Name: "CAFEÍNA", UnitCost: 0.0012},
			{Name: "VITAMINA C", UnitCost: 0.0008},
			{Name: "COLÁGENO", UnitCost: 0.0025},
		},
	}
}

// LoadTable reads a TOML price table. Fields missing from the file keep the
// built-in values; a non-empty ingredients list replaces the built-in one.
//
//	default_unit_cost = 0.002
//	labor_cost = 15.0
//	packaging_cost = 5.0
//
//	[[ingredients]]
//	name = "PARACETAMOL"
//	unit_cost = 0.0005
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read price table: %w", err)
	}

	table := DefaultTable()
	var file Table
	if err := toml.Unmarshal(data, &file); err != nil {
		return Table{}, fmt.Errorf("failed to parse price table %s: %w", path, err)
	}

	if file.DefaultUnitCost > 0 {
		table.DefaultUnitCost = file.DefaultUnitCost
	}
	if file.LaborCost > 0 {
		table.LaborCost = file.LaborCost
	}
	if file.PackagingCost > 0 {
		table.PackagingCost = file.PackagingCost
	}
	if len(file.Ingredients) > 0 {
		table.Ingredients = make([]UnitCost, 0, len(file.Ingredients))
		for _, ing := range file.Ingredients {
			name := strings.ToUpper(strings.TrimSpace(ing.Name))
			if name == "" {
				return Table{}, fmt.Errorf("invalid price table %s: ingredient without name", path)
			}
			if ing.UnitCost < 0 {
				return Table{}, fmt.Errorf("invalid price table %s: negative unit cost for %s", path, name)
			}
			table.Ingredients = append(table.Ingredients, UnitCost{Name: name, UnitCost: ing.UnitCost})
		}
	}

	return table, nil
}

// unitCost returns the cost per milligram for an ingredient name: exact
// match first, then the first table entry contained in the name.
func (t Table) unitCost(name string) float64 {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, ing := range t.Ingredients {
		if ing.Name == upper {
			return ing.UnitCost
		}
	}
	for _, ing := range t.Ingredients {
		if strings.Contains(upper, ing.Name) {
			return ing.UnitCost
		}
	}
	return t.DefaultUnitCost
}
