package colony

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/napolitain/homebound/internal/models"
)

var (
	// ErrUnknownKind is returned when the catalog has no definition for a building kind
	ErrUnknownKind = errors.New("unknown building kind")
	// ErrNotImplemented is returned for building kinds that exist but cannot be built yet
	ErrNotImplemented = errors.New("building kind not implemented")
)

// workloadEpsilon absorbs float drift when dt-scaled accumulators are compared to thresholds
const workloadEpsilon = 1e-9

// Building is a typed, leveled entity occupying one grid cell
type Building interface {
	Kind() models.BuildingKind
	Level() int
	LevelMax() int
	Parameters() *models.Level
	NextParameters() *models.Level
	IsConstructing() bool
	ConstructionWorkloadCompleted() float64
	ConstructionWorkloadRequired() float64
	AssignedWorkers() models.JobSlots

	CanUpgrade() bool
	Upgrade() bool
	CancelUpgrade() bool

	CanAssignWorker(add bool, job models.JobType, wt models.WorkerType) bool
	AssignWorker(add bool, job models.JobType, wt models.WorkerType, all bool) int

	PowerProduced() float64
	PowerConsumed() float64
	Storage() map[models.ResourceType]float64

	// Update advances construction and production by dt seconds
	Update(dt float64)
	// OnDestruction releases everything the building holds before it leaves the grid
	OnDestruction()

	core() *base
}

// base holds the state shared by every building kind
type base struct {
	def     *models.Building
	catalog *models.Catalog
	data    *Data
	logger  *slog.Logger

	level                         int
	isConstructing                bool
	constructionWorkloadCompleted float64
	assigned                      models.JobSlots
	paid                          models.Costs
}

// NewBuilding creates an unbuilt (level 0) building of the given kind bound to a colony's data
func NewBuilding(kind models.BuildingKind, catalog *models.Catalog, data *Data, logger *slog.Logger) (Building, error) {
	return newBuildingAt(kind, 0, catalog, data, logger)
}

func newBuildingAt(kind models.BuildingKind, level int, catalog *models.Catalog, data *Data, logger *slog.Logger) (Building, error) {
	def := catalog.Building(kind)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if !def.Implemented {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, kind)
	}
	if level < 0 || level > def.MaxLevel {
		return nil, fmt.Errorf("level %d out of range for %s", level, kind)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	b := &base{
		def:     def,
		catalog: catalog,
		data:    data,
		logger:  logger.With("building", string(kind)),
		level:   level,
	}

	switch kind {
	case models.DrillingStation:
		return &DrillingStation{base: b}, nil
	case models.ElectrolysisStation:
		return &ElectrolysisStation{base: b}, nil
	case models.Greenhouse:
		return &Greenhouse{base: b}, nil
	case models.Furnace:
		return &Furnace{base: b}, nil
	case models.School:
		return &School{base: b}, nil
	case models.Factory:
		return &Factory{base: b}, nil
	case models.Headquarters, models.SolarPanels, models.Storage:
		return &Facility{base: b}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotImplemented, kind)
}

func (b *base) core() *base { return b }

// Kind returns the building kind
func (b *base) Kind() models.BuildingKind { return b.def.Kind }

// Level returns the current level (0 = not built yet)
func (b *base) Level() int { return b.level }

// LevelMax returns the highest reachable level
func (b *base) LevelMax() int { return b.def.MaxLevel }

// Parameters returns the parameter table of the current level
func (b *base) Parameters() *models.Level { return b.def.Levels[b.level] }

// NextParameters returns the parameter table of the next level, or nil at max level
func (b *base) NextParameters() *models.Level { return b.def.GetLevelData(b.level + 1) }

// IsConstructing reports whether a level transition is in progress
func (b *base) IsConstructing() bool { return b.isConstructing }

// ConstructionWorkloadCompleted returns the engineer-seconds accumulated toward the next level
func (b *base) ConstructionWorkloadCompleted() float64 { return b.constructionWorkloadCompleted }

// ConstructionWorkloadRequired returns the engineer-seconds needed to reach the next level
func (b *base) ConstructionWorkloadRequired() float64 { return b.Parameters().UpgradeWorkload }

// AssignedWorkers returns the workers currently assigned per job
func (b *base) AssignedWorkers() models.JobSlots { return b.assigned }

// PowerProduced returns the power produced at the current level
func (b *base) PowerProduced() float64 { return b.Parameters().PowerProduced }

// PowerConsumed returns the current level's draw, or the next level's while constructing
func (b *base) PowerConsumed() float64 {
	if b.isConstructing {
		if next := b.NextParameters(); next != nil {
			return next.PowerConsumed
		}
	}
	return b.Parameters().PowerConsumed
}

// Storage returns the storage capacity contributed at the current level
func (b *base) Storage() map[models.ResourceType]float64 { return b.Parameters().Storage }

// CanUpgrade reports whether Upgrade would start a level transition
func (b *base) CanUpgrade() bool {
	if b.isConstructing || b.level >= b.def.MaxLevel {
		return false
	}
	return b.data.Ledger.Covers(b.Parameters().UpgradeCost)
}

// Upgrade pays the level's cost from the stock and starts construction toward the next level
func (b *base) Upgrade() bool {
	if !b.CanUpgrade() {
		return false
	}
	cost := b.Parameters().UpgradeCost
	if !b.data.Ledger.Debit(cost) {
		return false
	}
	b.paid = cost.Clone()
	b.isConstructing = true
	b.constructionWorkloadCompleted = 0
	return true
}

// CancelUpgrade stops construction, frees construction workers and refunds the paid cost to the buffer
func (b *base) CancelUpgrade() bool {
	if !b.isConstructing {
		return false
	}
	b.releaseJob(models.Construction)
	b.data.Ledger.Refund(b.paid)
	b.paid = nil
	b.isConstructing = false
	b.constructionWorkloadCompleted = 0
	return true
}

// update advances construction; kinds call it before their own production
func (b *base) update(dt float64) {
	if !b.isConstructing {
		return
	}
	b.constructionWorkloadCompleted += float64(b.assigned.ConstructionEngineers) * dt
	if b.constructionWorkloadCompleted+workloadEpsilon < b.ConstructionWorkloadRequired() {
		return
	}

	b.level++
	b.isConstructing = false
	b.constructionWorkloadCompleted = 0
	b.paid = nil
	b.releaseJob(models.Construction)
	b.logger.Debug("construction complete", "level", b.level)
}

// onDestruction cancels any upgrade in progress and frees every assigned worker
func (b *base) onDestruction() {
	if b.isConstructing {
		b.CancelUpgrade()
	}
	b.releaseJob(models.Construction)
	b.releaseJob(models.Production)
}

// built reports whether the building has reached at least level 1
func (b *base) built() bool { return b.level > 0 }

// unbuilt reports whether the building never got past level 0 and is no longer being built
func (b *base) unbuilt() bool { return b.level == 0 && !b.isConstructing }

// CanAssignWorker reports whether AssignWorker would move at least one worker
func (b *base) CanAssignWorker(add bool, job models.JobType, wt models.WorkerType) bool {
	return b.movable(add, job, wt) > 0
}

// AssignWorker moves workers between the pool and a job slot and returns how many moved.
// With all set, the count is min(vacancy, available) for add, or everything assigned for removal.
func (b *base) AssignWorker(add bool, job models.JobType, wt models.WorkerType, all bool) int {
	n := b.movable(add, job, wt)
	if n == 0 {
		return 0
	}
	if !all {
		n = 1
	}

	if add {
		if !b.data.Workforce.Take(wt, n) {
			return 0
		}
		b.assigned.Add(job, wt, n)
		return n
	}
	if !b.data.Workforce.Return(wt, n) {
		return 0
	}
	b.assigned.Add(job, wt, -n)
	return n
}

// movable returns the largest number of workers a bulk move could apply right now
func (b *base) movable(add bool, job models.JobType, wt models.WorkerType) int {
	if !job.Valid() || (wt != models.Engineers && wt != models.Scientists) {
		return 0
	}
	assigned := b.assigned.Get(job, wt)
	if !add {
		return assigned
	}
	// scientists never build, whatever the catalog offers
	if job == models.Construction && (!b.isConstructing || wt == models.Scientists) {
		return 0
	}
	if job == models.Production && !b.built() {
		return 0
	}
	vacancy := b.Parameters().Jobs.Get(job, wt) - assigned
	return max(0, min(vacancy, b.data.Workforce.Available(wt)))
}

// releaseJob returns every worker of a job to the pool
func (b *base) releaseJob(job models.JobType) {
	for _, wt := range models.JobWorkerTypes() {
		if n := b.assigned.Get(job, wt); n > 0 {
			b.data.Workforce.Return(wt, n)
			b.assigned.Add(job, wt, -n)
		}
	}
}

// productionWorkers returns engineers plus scientists working the production job
func (b *base) productionWorkers() float64 {
	return float64(b.assigned.Job(models.Production))
}

// rate returns the production work done in dt: dt x speed x workers
func (b *base) rate(dt float64) float64 {
	return dt * b.Parameters().ProductionSpeed * b.productionWorkers()
}
