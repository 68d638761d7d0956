package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/models"
	"github.com/napolitain/homebound/internal/snapshot"
)

func view() snapshot.View {
	return snapshot.View{
		ID:         "c1",
		Tick:       3,
		Elapsed:    0.1,
		Power:      colony.Power{Produced: 30, Consumed: 23},
		Stock:      map[models.ResourceType]float64{models.Water: 120},
		MaxStorage: map[models.ResourceType]float64{models.Water: 1000},
		Discarded:  map[models.ResourceType]float64{models.Food: 2.5},
		Items:      map[models.ItemType]int{models.HullModule: 1},
		Workforce: colony.Workforce{
			Engineers: colony.Pool{Available: 4, Total: 10},
			Pilots:    2,
		},
		Buildings: []snapshot.BuildingView{
			{Kind: models.Headquarters},
			{Kind: models.SolarPanels},
			{Kind: models.SolarPanels},
		},
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewColonyMetricsCollector()
	require.NoError(t, c.Register(reg))
	assert.Error(t, c.Register(reg))
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewColonyMetricsCollector()
	require.NoError(t, c.Register(reg))

	c.Observe(view())
	c.Observe(view())

	assert.InDelta(t, 2.0, testutil.ToFloat64(c.ticksTotal.WithLabelValues("c1")), 1e-9)
	assert.InDelta(t, 120.0, testutil.ToFloat64(c.stock.WithLabelValues("c1", "water")), 1e-9)
	assert.InDelta(t, 5.0, testutil.ToFloat64(c.discarded.WithLabelValues("c1", "food")), 1e-9)
	assert.InDelta(t, 23.0, testutil.ToFloat64(c.power.WithLabelValues("c1", "consumed")), 1e-9)
	assert.InDelta(t, 4.0, testutil.ToFloat64(c.workers.WithLabelValues("c1", "engineers", "available")), 1e-9)
	assert.InDelta(t, 2.0, testutil.ToFloat64(c.buildingsTotal.WithLabelValues("c1", "solar_panels")), 1e-9)
}

func TestObserveDropsDestroyedKinds(t *testing.T) {
	c := NewColonyMetricsCollector()
	require.NoError(t, c.Register(prometheus.NewRegistry()))

	v := view()
	c.Observe(v)
	assert.Equal(t, 2, testutil.CollectAndCount(c.buildingsTotal))

	v.Buildings = v.Buildings[:1]
	c.Observe(v)
	assert.Equal(t, 1, testutil.CollectAndCount(c.buildingsTotal))
}
