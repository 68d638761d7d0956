package colony

import (
	"testing"

	"github.com/napolitain/homebound/internal/models"
)

var fuzzCells = []Coords{
	drillCell, furnaceCell, storageCell, solarCell, electrolysisCell,
	greenhouseCell, schoolCell, factoryCell, emptyCell, {X: 6, Y: 6}, HeadquartersCoords,
}

// applyOp interprets one fuzz byte pair as a colony action
func applyOp(c *Colony, op, arg byte) {
	jobs := models.AllJobTypes()
	workers := models.JobWorkerTypes()
	kinds := models.AllBuildingKinds()

	switch op % 12 {
	case 0:
		c.Select(fuzzCells[int(arg)%len(fuzzCells)])
	case 1:
		c.AddBuilding(kinds[int(arg)%len(kinds)])
	case 2:
		c.UpgradeBuilding()
	case 3:
		c.CancelBuildingConstruction()
	case 4:
		c.DestroyBuilding()
	case 5, 6:
		if b := c.SelectedBuilding(); b != nil {
			b.AssignWorker(op%12 == 5, jobs[int(arg)%2], workers[int(arg>>1)%2], arg&4 != 0)
		}
	case 7:
		switch b := c.SelectedBuilding().(type) {
		case *DrillingStation:
			b.Produce(models.AllResourceTypes()[int(arg)%len(models.AllResourceTypes())])
		case *Furnace:
			b.SwitchProduction(models.AllResourceTypes()[int(arg)%len(models.AllResourceTypes())])
		}
	case 8:
		switch b := c.SelectedBuilding().(type) {
		case *School:
			b.AddWorkerToQueue(models.AllWorkerTypes()[int(arg)%3])
		case *Factory:
			b.AddItemToQueue(models.AllItemTypes()[int(arg)%3])
		}
	case 9:
		switch b := c.SelectedBuilding().(type) {
		case *School:
			if arg%2 == 0 {
				b.CancelTraining()
			} else {
				b.ClearQueue()
			}
		case *Factory:
			if arg%2 == 0 {
				b.CancelItem()
			} else {
				b.ClearQueue()
			}
		}
	case 10:
		if b := c.SelectedBuilding(); b != nil {
			b.CancelUpgrade()
		}
	default:
		c.Update(float64(arg%60+1) / 10)
	}
}

// FuzzColonyInvariants drives a starting colony with arbitrary actions and checks
// worker accounting after every action and storage bounds after every update
func FuzzColonyInvariants(f *testing.F) {
	f.Add([]byte{0, 8, 1, 1, 5, 7, 11, 59, 11, 59})
	f.Add([]byte{0, 0, 5, 5, 7, 2, 11, 10, 0, 5, 8, 1, 5, 4, 11, 59})
	f.Add([]byte{0, 7, 8, 0, 8, 1, 5, 0, 11, 20, 9, 1, 4, 0})
	f.Add([]byte{0, 2, 2, 0, 5, 4, 11, 59, 3, 0, 10, 0})

	cat := testCatalog(f)

	f.Fuzz(func(t *testing.T, ops []byte) {
		c, err := NewStartingColony(cat)
		if err != nil {
			t.Fatalf("starting colony: %v", err)
		}

		for i := 0; i+1 < len(ops); i += 2 {
			applyOp(c, ops[i], ops[i+1])
			checkWorkerInvariant(t, c)
			if ops[i]%12 == 11 {
				checkStorageInvariant(t, c)
			}
			if c.Building(HeadquartersCoords) == nil {
				t.Fatal("headquarters disappeared")
			}
		}
	})
}
