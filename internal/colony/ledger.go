package colony

import (
	"math"

	"github.com/napolitain/homebound/internal/models"
)

// Ledger holds a colony's resource stocks.
//
// Production never lands in Stock directly: buildings post into Buffer during a
// tick and the colony folds Buffer into Stock once, under its storage caps.
type Ledger struct {
	Stock             map[models.ResourceType]float64
	Buffer            map[models.ResourceType]float64
	ProductionFactors map[models.ResourceType]float64
}

// NewLedger creates an empty ledger with a copy of the given production factors
func NewLedger(factors map[models.ResourceType]float64) *Ledger {
	l := &Ledger{
		Stock:             make(map[models.ResourceType]float64),
		Buffer:            make(map[models.ResourceType]float64),
		ProductionFactors: make(map[models.ResourceType]float64, len(factors)),
	}
	for rt, f := range factors {
		l.ProductionFactors[rt] = f
	}
	return l
}

// Amount returns the stocked quantity of a resource
func (l *Ledger) Amount(rt models.ResourceType) float64 {
	return l.Stock[rt]
}

// Buffered returns the quantity produced this tick and not yet folded
func (l *Ledger) Buffered(rt models.ResourceType) float64 {
	return l.Buffer[rt]
}

// Factor returns the extraction multiplier for a resource
func (l *Ledger) Factor(rt models.ResourceType) float64 {
	return l.ProductionFactors[rt]
}

// Covers reports whether the stock holds every resource of costs
func (l *Ledger) Covers(costs models.Costs) bool {
	return costs.CoveredBy(l.Stock)
}

// Debit removes costs from the stock. Nothing is removed unless every resource is covered.
func (l *Ledger) Debit(costs models.Costs) bool {
	if !l.Covers(costs) {
		return false
	}
	for rt, q := range costs {
		l.Stock[rt] -= q
	}
	return true
}

// Take consumes up to want of a resource from the stock and returns what was obtained
func (l *Ledger) Take(rt models.ResourceType, want float64) float64 {
	if want <= 0 {
		return 0
	}
	got := math.Min(want, l.Stock[rt])
	if got <= 0 {
		return 0
	}
	l.Stock[rt] -= got
	return got
}

// Produce stages qty of a resource in the buffer
func (l *Ledger) Produce(rt models.ResourceType, qty float64) {
	if qty <= 0 {
		return
	}
	l.Buffer[rt] += qty
}

// Refund stages costs in the buffer so they go through the same storage clamp as production
func (l *Ledger) Refund(costs models.Costs) {
	for rt, q := range costs {
		l.Produce(rt, q)
	}
}

// Fold adds the buffer into the stock, clamps every stock to maxStorage and
// empties the buffer. It returns what did not fit.
func (l *Ledger) Fold(maxStorage map[models.ResourceType]float64) map[models.ResourceType]float64 {
	discarded := make(map[models.ResourceType]float64)

	for _, rt := range models.AllResourceTypes() {
		buffered := l.Buffer[rt]
		stock, stocked := l.Stock[rt]
		if buffered <= 0 && !stocked {
			continue
		}

		total := stock
		if buffered > 0 {
			total += buffered
		}
		capacity := maxStorage[rt]
		if total > capacity {
			discarded[rt] = total - capacity
			total = capacity
		}
		l.Stock[rt] = total
	}

	clear(l.Buffer)
	return discarded
}

// Snapshot returns copies of the stock and buffer maps
func (l *Ledger) Snapshot() (stock, buffer map[models.ResourceType]float64) {
	stock = make(map[models.ResourceType]float64, len(l.Stock))
	for rt, q := range l.Stock {
		stock[rt] = q
	}
	buffer = make(map[models.ResourceType]float64, len(l.Buffer))
	for rt, q := range l.Buffer {
		buffer[rt] = q
	}
	return stock, buffer
}
