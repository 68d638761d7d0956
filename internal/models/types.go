package models

// ResourceType represents the different resource types stored by a colony
type ResourceType string

const (
	Water      ResourceType = "water"
	Food       ResourceType = "food"
	Oxygen     ResourceType = "oxygen"
	Hydrogen   ResourceType = "hydrogen"
	IronOre    ResourceType = "iron_ore"
	Iron       ResourceType = "iron"
	CopperOre  ResourceType = "copper_ore"
	Copper     ResourceType = "copper"
	UraniumOre ResourceType = "uranium_ore"
	Uranium    ResourceType = "uranium"
)

// AllResourceTypes returns all resource types in deterministic order
func AllResourceTypes() []ResourceType {
	return []ResourceType{
		Water, Food, Oxygen, Hydrogen,
		IronOre, Iron, CopperOre, Copper, UraniumOre, Uranium,
	}
}

// Valid reports whether rt is a known resource type
func (rt ResourceType) Valid() bool {
	for _, r := range AllResourceTypes() {
		if r == rt {
			return true
		}
	}
	return false
}

// BuildingKind represents the closed set of building types
type BuildingKind string

const (
	Headquarters        BuildingKind = "headquarters"
	SolarPanels         BuildingKind = "solar_panels"
	Storage             BuildingKind = "storage"
	DrillingStation     BuildingKind = "drilling_station"
	ElectrolysisStation BuildingKind = "electrolysis_station"
	Greenhouse          BuildingKind = "greenhouse"
	Furnace             BuildingKind = "furnace"
	School              BuildingKind = "school"
	Factory             BuildingKind = "factory"
	ResearchLabs        BuildingKind = "research_labs"
)

// AllBuildingKinds returns all building kinds in deterministic order
func AllBuildingKinds() []BuildingKind {
	return []BuildingKind{
		Headquarters, SolarPanels, Storage,
		DrillingStation, ElectrolysisStation, Greenhouse,
		Furnace, School, Factory, ResearchLabs,
	}
}

// Valid reports whether k is a known building kind
func (k BuildingKind) Valid() bool {
	for _, b := range AllBuildingKinds() {
		if b == k {
			return true
		}
	}
	return false
}

// WorkerType represents a worker category
type WorkerType string

const (
	Engineers  WorkerType = "engineers"
	Scientists WorkerType = "scientists"
	Pilots     WorkerType = "pilots"
)

// JobWorkerTypes returns the worker types that can fill job slots
func JobWorkerTypes() []WorkerType {
	return []WorkerType{Engineers, Scientists}
}

// AllWorkerTypes returns every worker type, including pilots
func AllWorkerTypes() []WorkerType {
	return []WorkerType{Engineers, Scientists, Pilots}
}

// Valid reports whether wt is a known worker type
func (wt WorkerType) Valid() bool {
	return wt == Engineers || wt == Scientists || wt == Pilots
}

// JobType represents the role a worker is assigned to in a building
type JobType string

const (
	Construction JobType = "construction"
	Production   JobType = "production"
)

// AllJobTypes returns job types in deterministic order
func AllJobTypes() []JobType {
	return []JobType{Construction, Production}
}

// Valid reports whether jt is a known job type
func (jt JobType) Valid() bool {
	return jt == Construction || jt == Production
}

// ItemType represents a manufactured good kept in the colony inventory
type ItemType string

const (
	HullModule   ItemType = "hull_module"
	EngineModule ItemType = "engine_module"
	CargoModule  ItemType = "cargo_module"
)

// AllItemTypes returns all item types in deterministic order
func AllItemTypes() []ItemType {
	return []ItemType{HullModule, EngineModule, CargoModule}
}

// Costs maps resources to quantities
type Costs map[ResourceType]float64

// Get returns the cost for a specific resource type
func (c Costs) Get(rt ResourceType) float64 {
	return c[rt]
}

// Each iterates over non-zero costs in deterministic order
func (c Costs) Each(fn func(ResourceType, float64)) {
	for _, rt := range AllResourceTypes() {
		if q := c[rt]; q != 0 {
			fn(rt, q)
		}
	}
}

// CoveredBy reports whether stock holds at least every required quantity
func (c Costs) CoveredBy(stock map[ResourceType]float64) bool {
	for rt, q := range c {
		if stock[rt] < q {
			return false
		}
	}
	return true
}

// Clone returns a copy of the costs
func (c Costs) Clone() Costs {
	clone := make(Costs, len(c))
	for rt, q := range c {
		clone[rt] = q
	}
	return clone
}

// IsZero returns true if nothing is required
func (c Costs) IsZero() bool {
	for _, q := range c {
		if q != 0 {
			return false
		}
	}
	return true
}

// JobSlots is a 2x2 capacity table {construction, production} x {engineers, scientists}
type JobSlots struct {
	ConstructionEngineers  int `json:"construction_engineers"`
	ConstructionScientists int `json:"construction_scientists"`
	ProductionEngineers    int `json:"production_engineers"`
	ProductionScientists   int `json:"production_scientists"`
}

// Get returns the slot value for a job and worker type
func (j JobSlots) Get(job JobType, wt WorkerType) int {
	switch {
	case job == Construction && wt == Engineers:
		return j.ConstructionEngineers
	case job == Construction && wt == Scientists:
		return j.ConstructionScientists
	case job == Production && wt == Engineers:
		return j.ProductionEngineers
	case job == Production && wt == Scientists:
		return j.ProductionScientists
	}
	return 0
}

// Add adds n to the slot for a job and worker type
func (j *JobSlots) Add(job JobType, wt WorkerType, n int) {
	switch {
	case job == Construction && wt == Engineers:
		j.ConstructionEngineers += n
	case job == Construction && wt == Scientists:
		j.ConstructionScientists += n
	case job == Production && wt == Engineers:
		j.ProductionEngineers += n
	case job == Production && wt == Scientists:
		j.ProductionScientists += n
	}
}

// Job returns engineers + scientists assigned to a job
func (j JobSlots) Job(job JobType) int {
	return j.Get(job, Engineers) + j.Get(job, Scientists)
}

// Worker returns the total for a worker type across both jobs
func (j JobSlots) Worker(wt WorkerType) int {
	return j.Get(Construction, wt) + j.Get(Production, wt)
}

// Total returns the sum of all slots
func (j JobSlots) Total() int {
	return j.Job(Construction) + j.Job(Production)
}

// Level holds the parameters of a building at one level.
// UpgradeCost and UpgradeWorkload describe the transition to the next level.
type Level struct {
	UpgradeCost        Costs                    `json:"upgrade_cost,omitempty"`
	UpgradeWorkload    float64                  `json:"upgrade_workload,omitempty"`
	PowerConsumed      float64                  `json:"power_consumed,omitempty"`
	PowerProduced      float64                  `json:"power_produced,omitempty"`
	Storage            map[ResourceType]float64 `json:"storage,omitempty"`
	Jobs               JobSlots                 `json:"jobs"`
	ProductionSpeed    float64                  `json:"production_speed,omitempty"`
	ProductionPerCycle float64                  `json:"production_per_cycle,omitempty"`
	QueueMaxSize       int                      `json:"queue_max_size,omitempty"`
}

// Building represents a building definition with all its levels
type Building struct {
	Kind        BuildingKind `json:"kind"`
	MaxLevel    int          `json:"max_level"`
	Levels      []*Level     `json:"levels"` // index 0 is the unbuilt level
	Implemented bool         `json:"implemented"`
}

// GetLevelData returns the level data for a specific level
func (b *Building) GetLevelData(level int) *Level {
	if level < 0 || level >= len(b.Levels) {
		return nil
	}
	return b.Levels[level]
}

// Item represents a good that a factory can manufacture
type Item struct {
	Type     ItemType `json:"type"`
	Costs    Costs    `json:"costs"`
	Workload float64  `json:"workload"`
}

// Catalog is the read-only registry of static game data shared by every colony
type Catalog struct {
	Buildings         map[BuildingKind]*Building    `json:"buildings"`
	Items             map[ItemType]*Item            `json:"items"`
	TrainingWorkload  map[WorkerType]float64        `json:"training_workload"`
	FurnaceRecipes    map[ResourceType]ResourceType `json:"furnace_recipes"`    // refined metal -> ore
	ProductionFactors map[ResourceType]float64      `json:"production_factors"` // default per-colony extraction multipliers
}

// Building returns the definition for a kind, or nil if unknown
func (c *Catalog) Building(kind BuildingKind) *Building {
	return c.Buildings[kind]
}

// Level returns the parameters for a kind at a level, or nil
func (c *Catalog) Level(kind BuildingKind, level int) *Level {
	b := c.Buildings[kind]
	if b == nil {
		return nil
	}
	return b.GetLevelData(level)
}

// Item returns the definition for an item type, or nil
func (c *Catalog) Item(it ItemType) *Item {
	return c.Items[it]
}

// Drillable reports whether a drilling station can extract the resource
func (c *Catalog) Drillable(rt ResourceType) bool {
	_, ok := c.ProductionFactors[rt]
	return ok
}

// OreFor returns the ore a furnace consumes to produce a metal
func (c *Catalog) OreFor(metal ResourceType) (ResourceType, bool) {
	ore, ok := c.FurnaceRecipes[metal]
	return ore, ok
}
