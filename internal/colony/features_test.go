package colony

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/cucumber/godog"

	"github.com/napolitain/homebound/internal/loader"
	"github.com/napolitain/homebound/internal/models"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeColonyScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type colonyContext struct {
	catalog *models.Catalog
	colony  *Colony
}

func (ctx *colonyContext) reset() error {
	if ctx.catalog == nil {
		cat, err := loader.DefaultCatalog()
		if err != nil {
			return err
		}
		ctx.catalog = cat
	}
	ctx.colony = nil
	return nil
}

func (ctx *colonyContext) aStartingColony() error {
	c, err := NewStartingColony(ctx.catalog)
	ctx.colony = c
	return err
}

func (ctx *colonyContext) anEmptyColony() error {
	c, err := New(ctx.catalog)
	ctx.colony = c
	return err
}

func (ctx *colonyContext) theStockHolds(qty float64, resource string) error {
	ctx.colony.Data().Ledger.Stock[models.ResourceType(resource)] = qty
	return nil
}

func (ctx *colonyContext) theColonyHires(n int, worker string) error {
	ctx.colony.Data().Workforce.Hire(models.WorkerType(worker), n)
	return nil
}

func (ctx *colonyContext) aBuildingAt(level int, kind string, x, y int) error {
	return ctx.colony.place(Coords{X: x, Y: y}, models.BuildingKind(kind), level)
}

func (ctx *colonyContext) iSelectCell(x, y int) error {
	if !ctx.colony.Select(Coords{X: x, Y: y}) {
		return fmt.Errorf("cell %d,%d is off the grid", x, y)
	}
	return nil
}

func (ctx *colonyContext) selected() (Building, error) {
	b := ctx.colony.SelectedBuilding()
	if b == nil {
		return nil, fmt.Errorf("no building selected")
	}
	return b, nil
}

func (ctx *colonyContext) iAssignAll(worker, job string) error {
	b, err := ctx.selected()
	if err != nil {
		return err
	}
	if b.AssignWorker(true, models.JobType(job), models.WorkerType(worker), true) == 0 {
		return fmt.Errorf("no %s could be assigned to %s", worker, job)
	}
	return nil
}

func (ctx *colonyContext) iAssign(n int, worker, job string) error {
	b, err := ctx.selected()
	if err != nil {
		return err
	}
	for range n {
		if b.AssignWorker(true, models.JobType(job), models.WorkerType(worker), false) != 1 {
			return fmt.Errorf("could not assign %s to %s", worker, job)
		}
	}
	return nil
}

func (ctx *colonyContext) theDrillingStationExtracts(resource string) error {
	drill, ok := ctx.colony.SelectedBuilding().(*DrillingStation)
	if !ok || !drill.Produce(models.ResourceType(resource)) {
		return fmt.Errorf("cannot drill %s", resource)
	}
	return nil
}

func (ctx *colonyContext) theFurnaceSmelts(metal string) error {
	furnace, ok := ctx.colony.SelectedBuilding().(*Furnace)
	if !ok || !furnace.SwitchProduction(models.ResourceType(metal)) {
		return fmt.Errorf("cannot smelt %s", metal)
	}
	return nil
}

func (ctx *colonyContext) iAddA(kind string) error {
	if !ctx.colony.AddBuilding(models.BuildingKind(kind)) {
		return fmt.Errorf("could not add %s", kind)
	}
	return nil
}

func (ctx *colonyContext) iUpgradeTheSelectedBuilding() error {
	if !ctx.colony.UpgradeBuilding() {
		return fmt.Errorf("upgrade refused")
	}
	return nil
}

func (ctx *colonyContext) iCancelTheSelectedConstruction() error {
	if !ctx.colony.CancelBuildingConstruction() {
		return fmt.Errorf("nothing to cancel")
	}
	return nil
}

func (ctx *colonyContext) theSelectedBuildingUpdatesFor(dt float64) error {
	b, err := ctx.selected()
	if err != nil {
		return err
	}
	b.Update(dt)
	return nil
}

func (ctx *colonyContext) theColonyUpdates(steps int, dt float64) error {
	for range steps {
		ctx.colony.Update(dt)
	}
	return nil
}

func (ctx *colonyContext) theBufferHolds(want float64, resource string) error {
	return approx("buffer "+resource, ctx.colony.Data().Ledger.Buffered(models.ResourceType(resource)), want)
}

func (ctx *colonyContext) theStockShouldHold(want float64, resource string) error {
	return approx("stock "+resource, ctx.colony.Data().Ledger.Amount(models.ResourceType(resource)), want)
}

func (ctx *colonyContext) theSmeltingProgressIs(want float64) error {
	furnace, ok := ctx.colony.SelectedBuilding().(*Furnace)
	if !ok {
		return fmt.Errorf("selected building is not a furnace")
	}
	return approx("smelting progress", furnace.SmeltingCompletedPercent(), want)
}

func (ctx *colonyContext) theSelectedBuildingIsAtLevel(level int) error {
	b, err := ctx.selected()
	if err != nil {
		return err
	}
	if b.Level() != level {
		return fmt.Errorf("level %d, want %d", b.Level(), level)
	}
	return nil
}

func (ctx *colonyContext) theSelectedBuildingIsNotConstructing() error {
	b, err := ctx.selected()
	if err != nil {
		return err
	}
	if b.IsConstructing() {
		return fmt.Errorf("still constructing at %.2f/%.2f", b.ConstructionWorkloadCompleted(), b.ConstructionWorkloadRequired())
	}
	return nil
}

func (ctx *colonyContext) workersAreAssigned(n int, worker, job string) error {
	b, err := ctx.selected()
	if err != nil {
		return err
	}
	if got := b.AssignedWorkers().Get(models.JobType(job), models.WorkerType(worker)); got != n {
		return fmt.Errorf("%d %s assigned to %s, want %d", got, worker, job, n)
	}
	return nil
}

func (ctx *colonyContext) workersAreAvailable(n int, worker string) error {
	if got := ctx.colony.Data().Workforce.Available(models.WorkerType(worker)); got != n {
		return fmt.Errorf("%d %s available, want %d", got, worker, n)
	}
	return nil
}

func (ctx *colonyContext) availablePowerIs(want float64) error {
	return approx("available power", ctx.colony.AvailablePower(), want)
}

func (ctx *colonyContext) theSelectedBuildingCannotBeDestroyed() error {
	if ctx.colony.CanDestroyBuilding() || ctx.colony.DestroyBuilding() {
		return fmt.Errorf("building was destroyable")
	}
	return nil
}

func approx(what string, got, want float64) error {
	if math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("%s is %v, want %v", what, got, want)
	}
	return nil
}

// InitializeColonyScenario registers step definitions
func InitializeColonyScenario(sc *godog.ScenarioContext) {
	sCtx := &colonyContext{}

	sc.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		return c, sCtx.reset()
	})

	// Given steps
	sc.Step(`^a starting colony$`, sCtx.aStartingColony)
	sc.Step(`^an empty colony$`, sCtx.anEmptyColony)
	sc.Step(`^the stock holds (\d+(?:\.\d+)?) ([a-z_]+)$`, sCtx.theStockHolds)
	sc.Step(`^the colony hires (\d+) ([a-z]+)$`, sCtx.theColonyHires)
	sc.Step(`^a level (\d+) "([a-z_]+)" at (\d+),(\d+)$`, sCtx.aBuildingAt)

	// When steps
	sc.Step(`^I select cell (\d+),(\d+)$`, sCtx.iSelectCell)
	sc.Step(`^I assign all ([a-z]+) to ([a-z]+)$`, sCtx.iAssignAll)
	sc.Step(`^I assign (\d+) ([a-z]+) to ([a-z]+)$`, sCtx.iAssign)
	sc.Step(`^the drilling station extracts "([a-z_]+)"$`, sCtx.theDrillingStationExtracts)
	sc.Step(`^the furnace smelts "([a-z_]+)"$`, sCtx.theFurnaceSmelts)
	sc.Step(`^I add a "([a-z_]+)"$`, sCtx.iAddA)
	sc.Step(`^I upgrade the selected building$`, sCtx.iUpgradeTheSelectedBuilding)
	sc.Step(`^I cancel the selected construction$`, sCtx.iCancelTheSelectedConstruction)
	sc.Step(`^the selected building updates for (\d+(?:\.\d+)?) seconds$`, sCtx.theSelectedBuildingUpdatesFor)
	sc.Step(`^the colony updates (\d+) times with dt (\d+(?:\.\d+)?)$`, sCtx.theColonyUpdates)

	// Then steps
	sc.Step(`^the buffer holds (\d+(?:\.\d+)?) ([a-z_]+)$`, sCtx.theBufferHolds)
	sc.Step(`^the stock should hold (\d+(?:\.\d+)?) ([a-z_]+)$`, sCtx.theStockShouldHold)
	sc.Step(`^the smelting progress is (\d+(?:\.\d+)?)$`, sCtx.theSmeltingProgressIs)
	sc.Step(`^the selected building is at level (\d+)$`, sCtx.theSelectedBuildingIsAtLevel)
	sc.Step(`^the selected building is not constructing$`, sCtx.theSelectedBuildingIsNotConstructing)
	sc.Step(`^(\d+) ([a-z]+) are assigned to ([a-z]+)$`, sCtx.workersAreAssigned)
	sc.Step(`^(\d+) ([a-z]+) are available$`, sCtx.workersAreAvailable)
	sc.Step(`^available power is (-?\d+(?:\.\d+)?)$`, sCtx.availablePowerIs)
	sc.Step(`^the selected building cannot be destroyed$`, sCtx.theSelectedBuildingCannotBeDestroyed)
}
