package colony

import (
	"fmt"

	"github.com/napolitain/homebound/internal/models"
)

// startingLayout is the fixed set of operational buildings around the headquarters
var startingLayout = []struct {
	at   Coords
	kind models.BuildingKind
}{
	{Coords{X: 2, Y: 3}, models.SolarPanels},
	{Coords{X: 4, Y: 3}, models.SolarPanels},
	{Coords{X: 3, Y: 2}, models.Storage},
	{Coords{X: 2, Y: 2}, models.DrillingStation},
	{Coords{X: 4, Y: 2}, models.Furnace},
	{Coords{X: 2, Y: 4}, models.ElectrolysisStation},
	{Coords{X: 4, Y: 4}, models.Greenhouse},
	{Coords{X: 3, Y: 4}, models.School},
	{Coords{X: 3, Y: 1}, models.Factory},
}

var startingStock = map[models.ResourceType]float64{
	models.Water:   200,
	models.Food:    300,
	models.Oxygen:  100,
	models.Iron:    150,
	models.Copper:  80,
	models.IronOre: 50,
}

const (
	startingEngineers  = 10
	startingScientists = 5
	startingPilots     = 2
)

// NewStartingColony creates a colony with the starter layout at level 1, a starter
// workforce and stock. The drilling station starts on water.
func NewStartingColony(catalog *models.Catalog, opts ...Option) (*Colony, error) {
	c, err := New(catalog, opts...)
	if err != nil {
		return nil, err
	}

	for _, slot := range startingLayout {
		if err := c.place(slot.at, slot.kind, 1); err != nil {
			return nil, fmt.Errorf("starting colony: %s at %s: %w", slot.kind, slot.at, err)
		}
	}
	if drill, ok := c.Building(Coords{X: 2, Y: 2}).(*DrillingStation); ok {
		drill.Produce(models.Water)
	}

	c.data.Workforce.Hire(models.Engineers, startingEngineers)
	c.data.Workforce.Hire(models.Scientists, startingScientists)
	c.data.Workforce.Hire(models.Pilots, startingPilots)

	maxStorage := c.MaxStorage()
	for rt, q := range startingStock {
		c.data.Ledger.Stock[rt] = min(q, maxStorage[rt])
	}
	return c, nil
}
