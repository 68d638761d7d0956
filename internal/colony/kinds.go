package colony

import (
	"github.com/napolitain/homebound/internal/models"
)

// Facility is a building with no production of its own: headquarters, solar panels, storage.
// It only contributes power and storage from its level table.
type Facility struct {
	*base
}

// Update advances construction
func (f *Facility) Update(dt float64) { f.update(dt) }

// OnDestruction releases workers and refunds an in-progress upgrade
func (f *Facility) OnDestruction() { f.onDestruction() }

// DrillingStation extracts a selected resource, scaled by the colony's production factor
type DrillingStation struct {
	*base
	target models.ResourceType
}

// Target returns the resource being extracted, or "" when none is selected
func (d *DrillingStation) Target() models.ResourceType { return d.target }

// Produce selects the resource to extract. Resources without a production factor are refused.
func (d *DrillingStation) Produce(rt models.ResourceType) bool {
	if !d.catalog.Drillable(rt) {
		return false
	}
	d.target = rt
	return true
}

// Update advances construction, then extracts dt x workers x speed x factor of the target
func (d *DrillingStation) Update(dt float64) {
	d.update(dt)
	if !d.built() || d.target == "" {
		return
	}
	d.data.Ledger.Produce(d.target, d.rate(dt)*d.data.Ledger.Factor(d.target))
}

// OnDestruction releases workers and refunds an in-progress upgrade
func (d *DrillingStation) OnDestruction() { d.onDestruction() }

// ElectrolysisStation splits water from the stock into oxygen and hydrogen
type ElectrolysisStation struct {
	*base
}

// Update advances construction, then turns up to dt x speed x workers water into
// 0.5 oxygen and 1 hydrogen per unit
func (e *ElectrolysisStation) Update(dt float64) {
	e.update(dt)
	if !e.built() {
		return
	}
	water := e.data.Ledger.Take(models.Water, e.rate(dt))
	e.data.Ledger.Produce(models.Oxygen, 0.5*water)
	e.data.Ledger.Produce(models.Hydrogen, water)
}

// OnDestruction releases workers and refunds an in-progress upgrade
func (e *ElectrolysisStation) OnDestruction() { e.onDestruction() }

// Greenhouse grows food from water taken from the stock
type Greenhouse struct {
	*base
}

// Update advances construction, then turns up to dt x speed x workers water into
// 5 food and 1 oxygen per unit
func (g *Greenhouse) Update(dt float64) {
	g.update(dt)
	if !g.built() {
		return
	}
	water := g.data.Ledger.Take(models.Water, g.rate(dt))
	g.data.Ledger.Produce(models.Food, 5*water)
	g.data.Ledger.Produce(models.Oxygen, water)
}

// OnDestruction releases workers and refunds an in-progress upgrade
func (g *Greenhouse) OnDestruction() { g.onDestruction() }

// Furnace smelts ore into metal in cycles. A cycle starts by consuming
// 2 x ProductionPerCycle ore and completes at 100 percent.
type Furnace struct {
	*base
	target                   models.ResourceType
	oreConsumed              bool
	smeltingCompletedPercent float64
}

// Target returns the metal being smelted, or "" when none is selected
func (f *Furnace) Target() models.ResourceType { return f.target }

// SmeltingCompletedPercent returns progress of the current cycle
func (f *Furnace) SmeltingCompletedPercent() float64 { return f.smeltingCompletedPercent }

// OreConsumed reports whether the current cycle already holds its ore
func (f *Furnace) OreConsumed() bool { return f.oreConsumed }

// SwitchProduction selects the metal to smelt and restarts the cycle.
// Ore already consumed by the abandoned cycle is lost.
func (f *Furnace) SwitchProduction(metal models.ResourceType) bool {
	if _, ok := f.catalog.OreFor(metal); !ok {
		return false
	}
	if metal == f.target {
		return true
	}
	f.target = metal
	f.oreConsumed = false
	f.smeltingCompletedPercent = 0
	return true
}

// Update advances construction, then the smelting cycle
func (f *Furnace) Update(dt float64) {
	f.update(dt)
	if !f.built() || f.target == "" {
		return
	}

	perCycle := f.Parameters().ProductionPerCycle
	if !f.oreConsumed {
		ore, _ := f.catalog.OreFor(f.target)
		if !f.data.Ledger.Debit(models.Costs{ore: 2 * perCycle}) {
			return
		}
		f.oreConsumed = true
	}

	f.smeltingCompletedPercent += f.rate(dt)
	if f.smeltingCompletedPercent+workloadEpsilon < 100 {
		return
	}
	f.data.Ledger.Produce(f.target, perCycle)
	f.oreConsumed = false
	f.smeltingCompletedPercent = 0
	f.logger.Debug("smelting cycle complete", "metal", string(f.target), "quantity", perCycle)
}

// OnDestruction releases workers and refunds an in-progress upgrade
func (f *Furnace) OnDestruction() { f.onDestruction() }

// queue is the FIFO shared by School and Factory. Work accumulates toward the head only.
type queue[T any] struct {
	entries           []T
	workloadCompleted float64
}

func (q *queue[T]) push(v T) { q.entries = append(q.entries, v) }
func (q *queue[T]) len() int { return len(q.entries) }
func (q *queue[T]) empty() bool { return len(q.entries) == 0 }

func (q *queue[T]) head() (T, bool) {
	var zero T
	if q.empty() {
		return zero, false
	}
	return q.entries[0], true
}

func (q *queue[T]) pop() (T, bool) {
	v, ok := q.head()
	if !ok {
		return v, false
	}
	q.entries = q.entries[1:]
	q.workloadCompleted = 0
	return v, true
}

// tail removes and returns everything behind the head
func (q *queue[T]) tail() []T {
	if q.len() <= 1 {
		return nil
	}
	rest := append([]T(nil), q.entries[1:]...)
	q.entries = q.entries[:1]
	return rest
}

func (q *queue[T]) snapshot() []T { return append([]T(nil), q.entries...) }

// School trains new workers from a bounded FIFO queue
type School struct {
	*base
	queue queue[models.WorkerType]
}

// Queue returns the worker types waiting to be trained, head first
func (s *School) Queue() []models.WorkerType { return s.queue.snapshot() }

// TrainingWorkloadCompleted returns the work done on the head of the queue
func (s *School) TrainingWorkloadCompleted() float64 { return s.queue.workloadCompleted }

// CanAddWorkerToQueue reports whether AddWorkerToQueue would enqueue wt
func (s *School) CanAddWorkerToQueue(wt models.WorkerType) bool {
	if !s.built() || !wt.Valid() {
		return false
	}
	if _, ok := s.catalog.TrainingWorkload[wt]; !ok {
		return false
	}
	return s.queue.len() < s.Parameters().QueueMaxSize
}

// AddWorkerToQueue enqueues one worker of type wt for training
func (s *School) AddWorkerToQueue(wt models.WorkerType) bool {
	if !s.CanAddWorkerToQueue(wt) {
		return false
	}
	s.queue.push(wt)
	return true
}

// CancelTraining drops the head of the queue and its progress
func (s *School) CancelTraining() bool {
	_, ok := s.queue.pop()
	return ok
}

// ClearQueue drops every queued worker except the one in training
func (s *School) ClearQueue() bool {
	return s.queue.tail() != nil
}

// Update advances construction, then training of the head of the queue
func (s *School) Update(dt float64) {
	s.update(dt)
	wt, ok := s.queue.head()
	if !s.built() || !ok {
		return
	}
	s.queue.workloadCompleted += s.rate(dt)
	if s.queue.workloadCompleted+workloadEpsilon < s.catalog.TrainingWorkload[wt] {
		return
	}
	s.queue.pop()
	s.data.Workforce.Train(wt)
	s.logger.Debug("training complete", "worker", string(wt))
}

// OnDestruction releases workers, refunds an in-progress upgrade and drops the queue
func (s *School) OnDestruction() {
	s.onDestruction()
	s.queue = queue[models.WorkerType]{}
}

// Factory manufactures items from a bounded FIFO queue. Items are paid when queued.
type Factory struct {
	*base
	queue queue[models.ItemType]
}

// Queue returns the items waiting to be manufactured, head first
func (f *Factory) Queue() []models.ItemType { return f.queue.snapshot() }

// ItemWorkloadCompleted returns the work done on the head of the queue
func (f *Factory) ItemWorkloadCompleted() float64 { return f.queue.workloadCompleted }

// CanAddItemToQueue reports whether AddItemToQueue would enqueue and pay for it
func (f *Factory) CanAddItemToQueue(it models.ItemType) bool {
	item := f.catalog.Item(it)
	if !f.built() || item == nil {
		return false
	}
	if f.queue.len() >= f.Parameters().QueueMaxSize {
		return false
	}
	return f.data.Ledger.Covers(item.Costs)
}

// AddItemToQueue pays for an item from the stock and enqueues it
func (f *Factory) AddItemToQueue(it models.ItemType) bool {
	if !f.CanAddItemToQueue(it) {
		return false
	}
	if !f.data.Ledger.Debit(f.catalog.Item(it).Costs) {
		return false
	}
	f.queue.push(it)
	return true
}

// CancelItem drops the head of the queue and refunds its cost to the buffer
func (f *Factory) CancelItem() bool {
	it, ok := f.queue.pop()
	if !ok {
		return false
	}
	f.refund(it)
	return true
}

// ClearQueue drops every queued item except the head and refunds them to the buffer
func (f *Factory) ClearQueue() bool {
	rest := f.queue.tail()
	for _, it := range rest {
		f.refund(it)
	}
	return rest != nil
}

// Update advances construction, then manufacturing of the head of the queue
func (f *Factory) Update(dt float64) {
	f.update(dt)
	it, ok := f.queue.head()
	if !f.built() || !ok {
		return
	}
	f.queue.workloadCompleted += f.rate(dt)
	if f.queue.workloadCompleted+workloadEpsilon < f.catalog.Item(it).Workload {
		return
	}
	f.queue.pop()
	f.data.Items[it]++
	f.logger.Debug("item manufactured", "item", string(it))
}

// OnDestruction releases workers, refunds an in-progress upgrade and refunds every queued item
func (f *Factory) OnDestruction() {
	f.onDestruction()
	for !f.queue.empty() {
		f.CancelItem()
	}
}

func (f *Factory) refund(it models.ItemType) {
	if item := f.catalog.Item(it); item != nil {
		f.data.Ledger.Refund(item.Costs)
	}
}
