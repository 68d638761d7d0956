package colony

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"

	"github.com/google/uuid"

	"github.com/napolitain/homebound/internal/models"
)

// GridSize is the width and height of the colony grid
const GridSize = 7

// Coords addresses a grid cell
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Valid reports whether the coordinates are on the grid
func (c Coords) Valid() bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

func (c Coords) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// HeadquartersCoords is the cell the headquarters occupies in every colony
var HeadquartersCoords = Coords{X: GridSize / 2, Y: GridSize / 2}

// Power is the colony's power balance
type Power struct {
	Consumed float64 `json:"consumed"`
	Produced float64 `json:"produced"`
}

// Available returns produced minus consumed
func (p Power) Available() float64 { return p.Produced - p.Consumed }

// Data is the mutable state shared between a colony and its buildings
type Data struct {
	Ledger    *Ledger
	Workforce *Workforce
	Items     map[models.ItemType]int
}

// UpkeepFunc consumes colony resources once per tick, after buildings update and before
// the buffer is folded into the stock
type UpkeepFunc func(data *Data, dt float64)

// Option configures a Colony
type Option func(*Colony)

// WithLogger sets the logger used for state transitions
func WithLogger(logger *slog.Logger) Option {
	return func(c *Colony) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUpkeep installs a per-tick consumption step
func WithUpkeep(fn UpkeepFunc) Option {
	return func(c *Colony) { c.upkeep = fn }
}

// WithName sets the display name
func WithName(name string) Option {
	return func(c *Colony) { c.name = name }
}

// WithID sets the colony identity instead of a random one
func WithID(id uuid.UUID) Option {
	return func(c *Colony) { c.id = id }
}

// WithProductionFactors overrides the catalog's extraction multipliers
func WithProductionFactors(factors map[models.ResourceType]float64) Option {
	return func(c *Colony) {
		for rt, f := range factors {
			if f >= 0 {
				c.data.Ledger.ProductionFactors[rt] = f
			}
		}
	}
}

// Colony is a grid of buildings sharing one ledger, one workforce and one item inventory.
// It is not safe for concurrent use.
type Colony struct {
	id      uuid.UUID
	name    string
	catalog *models.Catalog
	logger  *slog.Logger
	upkeep  UpkeepFunc

	grid     [GridSize][GridSize]Building
	data     *Data
	selected *Coords

	elapsed       float64
	ticks         uint64
	lastDiscarded map[models.ResourceType]float64
}

// New creates a colony holding only its headquarters
func New(catalog *models.Catalog, opts ...Option) (*Colony, error) {
	if catalog == nil {
		return nil, errors.New("colony: nil catalog")
	}
	c := &Colony{
		id:      uuid.New(),
		name:    "colony",
		catalog: catalog,
		logger:  slog.New(slog.DiscardHandler),
		data: &Data{
			Ledger:    NewLedger(catalog.ProductionFactors),
			Workforce: &Workforce{},
			Items:     make(map[models.ItemType]int),
		},
		lastDiscarded: make(map[models.ResourceType]float64),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("colony", c.id.String())

	hqDef := catalog.Building(models.Headquarters)
	if hqDef == nil {
		return nil, fmt.Errorf("colony: %w: %s", ErrUnknownKind, models.Headquarters)
	}
	if err := c.place(HeadquartersCoords, models.Headquarters, hqDef.MaxLevel); err != nil {
		return nil, err
	}
	return c, nil
}

// place puts an operational building on an empty cell without paying for it
func (c *Colony) place(at Coords, kind models.BuildingKind, level int) error {
	if !at.Valid() {
		return fmt.Errorf("colony: cell %s is off the grid", at)
	}
	if c.cell(at.X, at.Y) != nil {
		return fmt.Errorf("colony: cell %s is occupied", at)
	}
	b, err := newBuildingAt(kind, level, c.catalog, c.data, c.logger)
	if err != nil {
		return err
	}
	c.grid[at.X][at.Y] = b
	return nil
}

// ID returns the colony identity
func (c *Colony) ID() uuid.UUID { return c.id }

// Name returns the display name
func (c *Colony) Name() string { return c.name }

// Catalog returns the static data the colony was built from
func (c *Colony) Catalog() *models.Catalog { return c.catalog }

// Data returns the ledger, workforce and items shared with the buildings
func (c *Colony) Data() *Data { return c.data }

// Elapsed returns the simulated seconds since creation
func (c *Colony) Elapsed() float64 { return c.elapsed }

// Ticks returns how many updates have run
func (c *Colony) Ticks() uint64 { return c.ticks }

// LastDiscarded returns what the last fold could not store
func (c *Colony) LastDiscarded() map[models.ResourceType]float64 {
	return maps.Clone(c.lastDiscarded)
}

// Building returns the building at a cell, or nil
func (c *Colony) Building(at Coords) Building {
	if !at.Valid() {
		return nil
	}
	return c.cell(at.X, at.Y)
}

// cell hides buildings whose construction was cancelled directly before they reached level 1
func (c *Colony) cell(x, y int) Building {
	b := c.grid[x][y]
	if b == nil || b.core().unbuilt() {
		return nil
	}
	return b
}

// Each calls fn for every occupied cell in grid order (x, then y)
func (c *Colony) Each(fn func(Coords, Building)) {
	for x := range GridSize {
		for y := range GridSize {
			if b := c.cell(x, y); b != nil {
				fn(Coords{X: x, Y: y}, b)
			}
		}
	}
}

// Select moves the selection cursor. Off-grid coordinates are refused.
func (c *Colony) Select(at Coords) bool {
	if !at.Valid() {
		return false
	}
	c.selected = &at
	return true
}

// ClearSelection removes the selection cursor
func (c *Colony) ClearSelection() { c.selected = nil }

// SelectedCoords returns the selected cell
func (c *Colony) SelectedCoords() (Coords, bool) {
	if c.selected == nil {
		return Coords{}, false
	}
	return *c.selected, true
}

// SelectedBuilding returns the building on the selected cell, or nil
func (c *Colony) SelectedBuilding() Building {
	if c.selected == nil {
		return nil
	}
	return c.Building(*c.selected)
}

// Power sums production and consumption over every building.
// A constructing building draws its next level's consumption.
func (c *Colony) Power() Power {
	var p Power
	c.Each(func(_ Coords, b Building) {
		p.Produced += b.PowerProduced()
		p.Consumed += b.PowerConsumed()
	})
	return p
}

// AvailablePower returns produced minus consumed
func (c *Colony) AvailablePower() float64 { return c.Power().Available() }

// MaxStorage sums every building's storage contribution per resource
func (c *Colony) MaxStorage() map[models.ResourceType]float64 {
	storage := make(map[models.ResourceType]float64)
	c.Each(func(_ Coords, b Building) {
		for rt, q := range b.Storage() {
			storage[rt] += q
		}
	})
	return storage
}

// CanAddBuilding reports whether AddBuilding(kind) would place a building on the selected cell
func (c *Colony) CanAddBuilding(kind models.BuildingKind) bool {
	if kind == models.Headquarters || c.selected == nil || c.SelectedBuilding() != nil {
		return false
	}
	def := c.catalog.Building(kind)
	if def == nil || !def.Implemented || len(def.Levels) < 2 {
		return false
	}
	if c.AvailablePower() < def.Levels[1].PowerConsumed {
		return false
	}
	return c.data.Ledger.Covers(def.Levels[0].UpgradeCost)
}

// AddBuilding pays for a building and starts constructing it on the selected cell
func (c *Colony) AddBuilding(kind models.BuildingKind) bool {
	if !c.CanAddBuilding(kind) {
		return false
	}
	b, err := NewBuilding(kind, c.catalog, c.data, c.logger)
	if err != nil {
		return false
	}
	if !b.Upgrade() {
		return false
	}
	at := *c.selected
	c.grid[at.X][at.Y] = b
	c.logger.Debug("construction started", "building", string(kind), "cell", at.String())
	return true
}

// CanUpgradeBuilding reports whether the selected building can start its next level,
// including power headroom for the extra draw
func (c *Colony) CanUpgradeBuilding() bool {
	b := c.SelectedBuilding()
	if b == nil || !b.CanUpgrade() {
		return false
	}
	next := b.NextParameters()
	if next == nil {
		return false
	}
	delta := next.PowerConsumed - b.PowerConsumed()
	return c.AvailablePower() >= delta
}

// UpgradeBuilding starts the selected building's next level
func (c *Colony) UpgradeBuilding() bool {
	if !c.CanUpgradeBuilding() {
		return false
	}
	return c.SelectedBuilding().Upgrade()
}

// CancelBuildingConstruction cancels the selected building's upgrade.
// A building that never reached level 1 is removed from its cell.
func (c *Colony) CancelBuildingConstruction() bool {
	b := c.SelectedBuilding()
	if b == nil || !b.CancelUpgrade() {
		return false
	}
	if b.core().unbuilt() {
		at := *c.selected
		c.grid[at.X][at.Y] = nil
	}
	return true
}

// CanDestroyBuilding reports whether the selected building can be removed.
// The headquarters never can, nor can a building whose removal leaves the colony short of power.
func (c *Colony) CanDestroyBuilding() bool {
	b := c.SelectedBuilding()
	if b == nil || b.Kind() == models.Headquarters {
		return false
	}
	net := b.PowerProduced() - b.PowerConsumed()
	return c.AvailablePower()-net >= 0
}

// DestroyBuilding releases everything the selected building holds and empties its cell
func (c *Colony) DestroyBuilding() bool {
	if !c.CanDestroyBuilding() {
		return false
	}
	at := *c.selected
	b := c.grid[at.X][at.Y]
	b.OnDestruction()
	c.grid[at.X][at.Y] = nil
	c.logger.Debug("building destroyed", "building", string(b.Kind()), "cell", at.String())
	return true
}

// Update advances every building by dt seconds in grid order, runs upkeep, then folds
// the buffer into the stock. Production above storage capacity is discarded.
// A dt that is not positive only folds: refunds still land and the clock stays put.
func (c *Colony) Update(dt float64) {
	advance := dt > 0 && !math.IsNaN(dt) && !math.IsInf(dt, 0)
	if advance {
		c.Each(func(_ Coords, b Building) {
			b.Update(dt)
		})
	}
	c.prune()
	if advance && c.upkeep != nil {
		c.upkeep(c.data, dt)
	}

	c.lastDiscarded = c.data.Ledger.Fold(c.MaxStorage())
	if len(c.lastDiscarded) > 0 {
		c.logger.Debug("excess production discarded", "discarded", c.lastDiscarded)
	}
	if advance {
		c.elapsed += dt
		c.ticks++
	}
}

// prune empties cells whose building was cancelled before reaching level 1
func (c *Colony) prune() {
	for x := range GridSize {
		for y := range GridSize {
			if b := c.grid[x][y]; b != nil && b.core().unbuilt() {
				c.grid[x][y] = nil
			}
		}
	}
}
