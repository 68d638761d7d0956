package scenario

import (
	"github.com/napolitain/homebound/internal/colony"
)

// Apply performs one step against a colony and reports whether it took effect.
// Steps that address a building act on the cell at (X, Y), which becomes the selection.
func Apply(c *colony.Colony, step Step) bool {
	if step.Action == Select {
		return c.Select(colony.Coords{X: step.X, Y: step.Y})
	}
	if !c.Select(colony.Coords{X: step.X, Y: step.Y}) {
		return false
	}

	switch step.Action {
	case AddBuilding:
		return c.AddBuilding(step.Kind)
	case Upgrade:
		return c.UpgradeBuilding()
	case CancelUpgrade:
		return c.CancelBuildingConstruction()
	case Destroy:
		return c.DestroyBuilding()
	}

	b := c.SelectedBuilding()
	if b == nil {
		return false
	}

	switch step.Action {
	case Assign:
		return b.AssignWorker(!step.Remove, step.Job, step.Worker, step.All) > 0
	case Produce:
		if drill, ok := b.(*colony.DrillingStation); ok {
			return drill.Produce(step.Resource)
		}
	case SwitchProduction:
		if furnace, ok := b.(*colony.Furnace); ok {
			return furnace.SwitchProduction(step.Resource)
		}
	case Train:
		if school, ok := b.(*colony.School); ok {
			return school.AddWorkerToQueue(step.Worker)
		}
	case CancelTraining:
		if school, ok := b.(*colony.School); ok {
			return school.CancelTraining()
		}
	case ClearTraining:
		if school, ok := b.(*colony.School); ok {
			return school.ClearQueue()
		}
	case Manufacture:
		if factory, ok := b.(*colony.Factory); ok {
			return factory.AddItemToQueue(step.Item)
		}
	case CancelItem:
		if factory, ok := b.(*colony.Factory); ok {
			return factory.CancelItem()
		}
	case ClearItems:
		if factory, ok := b.(*colony.Factory); ok {
			return factory.ClearQueue()
		}
	}
	return false
}
