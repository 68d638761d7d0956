package colony

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/napolitain/homebound/internal/loader"
	"github.com/napolitain/homebound/internal/models"
)

var (
	drillCell        = Coords{X: 2, Y: 2}
	furnaceCell      = Coords{X: 4, Y: 2}
	storageCell      = Coords{X: 3, Y: 2}
	solarCell        = Coords{X: 2, Y: 3}
	electrolysisCell = Coords{X: 2, Y: 4}
	greenhouseCell   = Coords{X: 4, Y: 4}
	schoolCell       = Coords{X: 3, Y: 4}
	factoryCell      = Coords{X: 3, Y: 1}
	emptyCell        = Coords{X: 0, Y: 0}
)

func testCatalog(t testing.TB) *models.Catalog {
	t.Helper()
	cat, err := loader.DefaultCatalog()
	require.NoError(t, err)
	return cat
}

func startingColony(t testing.TB) *Colony {
	t.Helper()
	c, err := NewStartingColony(testCatalog(t))
	require.NoError(t, err)
	return c
}

func emptyColony(t testing.TB) *Colony {
	t.Helper()
	c, err := New(testCatalog(t))
	require.NoError(t, err)
	return c
}

// buildingAt returns the building on a cell as its concrete type
func buildingAt[T Building](t testing.TB, c *Colony, at Coords) T {
	t.Helper()
	b, ok := c.Building(at).(T)
	require.True(t, ok, "cell %s holds %T", at, c.Building(at))
	return b
}

// checkWorkerInvariant verifies slot bounds and that assignments plus available equal total
func checkWorkerInvariant(t testing.TB, c *Colony) {
	t.Helper()
	assigned := map[models.WorkerType]int{}
	c.Each(func(at Coords, b Building) {
		slots := b.AssignedWorkers()
		capacity := b.Parameters().Jobs
		for _, job := range models.AllJobTypes() {
			for _, wt := range models.JobWorkerTypes() {
				n := slots.Get(job, wt)
				if n < 0 || n > capacity.Get(job, wt) {
					t.Fatalf("%s at %s: %s/%s assigned %d, capacity %d", b.Kind(), at, job, wt, n, capacity.Get(job, wt))
				}
			}
		}
		for _, wt := range models.JobWorkerTypes() {
			assigned[wt] += slots.Worker(wt)
		}
	})

	wf := c.Data().Workforce
	for _, wt := range models.JobWorkerTypes() {
		if wf.Available(wt) < 0 || wf.Available(wt) > wf.Total(wt) {
			t.Fatalf("%s: available %d outside [0, %d]", wt, wf.Available(wt), wf.Total(wt))
		}
		if assigned[wt]+wf.Available(wt) != wf.Total(wt) {
			t.Fatalf("%s: assigned %d + available %d != total %d", wt, assigned[wt], wf.Available(wt), wf.Total(wt))
		}
	}
}

// checkStorageInvariant verifies the state right after an update
func checkStorageInvariant(t testing.TB, c *Colony) {
	t.Helper()
	maxStorage := c.MaxStorage()
	for rt, q := range c.Data().Ledger.Stock {
		if q > maxStorage[rt]+1e-9 {
			t.Fatalf("%s: stock %f exceeds capacity %f", rt, q, maxStorage[rt])
		}
		if q < 0 {
			t.Fatalf("%s: negative stock %f", rt, q)
		}
	}
	for rt, q := range c.Data().Ledger.Buffer {
		if q != 0 {
			t.Fatalf("%s: buffer holds %f after update", rt, q)
		}
	}
}
