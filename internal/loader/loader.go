package loader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/napolitain/homebound/data"
	"github.com/napolitain/homebound/internal/models"
)

// BuildingJSON represents the JSON structure for buildings
type BuildingJSON struct {
	MaxLevel    int                          `json:"max_level" validate:"min=1"`
	Implemented bool                         `json:"implemented"`
	Levels      map[string]BuildingLevelJSON `json:"levels" validate:"required,dive"`
}

// BuildingLevelJSON represents the JSON structure for a building level
type BuildingLevelJSON struct {
	UpgradeCost        map[string]float64 `json:"upgrade_cost,omitempty" validate:"dive,gte=0"`
	UpgradeWorkload    float64            `json:"upgrade_workload,omitempty" validate:"gte=0"`
	PowerConsumed      float64            `json:"power_consumed,omitempty" validate:"gte=0"`
	PowerProduced      float64            `json:"power_produced,omitempty" validate:"gte=0"`
	Storage            map[string]float64 `json:"storage,omitempty" validate:"dive,gte=0"`
	Jobs               JobsJSON           `json:"jobs"`
	ProductionSpeed    float64            `json:"production_speed,omitempty" validate:"gte=0"`
	ProductionPerCycle float64            `json:"production_per_cycle,omitempty" validate:"gte=0"`
	QueueMaxSize       int                `json:"queue_max_size,omitempty" validate:"gte=0"`
}

// JobsJSON holds job-slot capacities per job type
type JobsJSON struct {
	Construction SlotsJSON `json:"construction"`
	Production   SlotsJSON `json:"production"`
}

// SlotsJSON holds capacities per worker type
type SlotsJSON struct {
	Engineers  int `json:"engineers" validate:"gte=0"`
	Scientists int `json:"scientists" validate:"gte=0"`
}

// ItemJSON represents the JSON structure for a manufactured item
type ItemJSON struct {
	Costs    map[string]float64 `json:"costs" validate:"required,dive,gte=0"`
	Workload float64            `json:"workload" validate:"gt=0"`
}

var validate = validator.New()

// LoadCatalog loads every data file from a directory
func LoadCatalog(dataDir string) (*models.Catalog, error) {
	return LoadCatalogFS(os.DirFS(dataDir))
}

// DefaultCatalog loads the data files embedded in the binary
func DefaultCatalog() (*models.Catalog, error) {
	return LoadCatalogFS(data.FS)
}

// LoadCatalogFS loads every data file from fsys
func LoadCatalogFS(fsys fs.FS) (*models.Catalog, error) {
	buildings, err := LoadBuildings(fsys)
	if err != nil {
		return nil, err
	}
	items, err := LoadItems(fsys)
	if err != nil {
		return nil, err
	}
	training, err := LoadTraining(fsys)
	if err != nil {
		return nil, err
	}
	recipes, err := LoadFurnaceRecipes(fsys)
	if err != nil {
		return nil, err
	}
	factors, err := LoadProductionFactors(fsys)
	if err != nil {
		return nil, err
	}

	return &models.Catalog{
		Buildings:         buildings,
		Items:             items,
		TrainingWorkload:  training,
		FurnaceRecipes:    recipes,
		ProductionFactors: factors,
	}, nil
}

// LoadBuildings loads building definitions from buildings.json
func LoadBuildings(fsys fs.FS) (map[models.BuildingKind]*models.Building, error) {
	var rawBuildings map[string]BuildingJSON
	if err := readJSON(fsys, "buildings.json", &rawBuildings); err != nil {
		return nil, err
	}

	buildings := make(map[models.BuildingKind]*models.Building)

	for name, raw := range rawBuildings {
		kind := models.BuildingKind(name)
		if !kind.Valid() {
			return nil, fmt.Errorf("buildings.json: unknown building kind %q", name)
		}
		if err := validate.Struct(raw); err != nil {
			return nil, fmt.Errorf("buildings.json: %s: %w", name, err)
		}
		if len(raw.Levels) != raw.MaxLevel+1 {
			return nil, fmt.Errorf("buildings.json: %s: expected %d levels, got %d", name, raw.MaxLevel+1, len(raw.Levels))
		}

		building := &models.Building{
			Kind:        kind,
			MaxLevel:    raw.MaxLevel,
			Levels:      make([]*models.Level, raw.MaxLevel+1),
			Implemented: raw.Implemented,
		}

		for levelStr, levelData := range raw.Levels {
			level, err := strconv.Atoi(levelStr)
			if err != nil || level < 0 || level > raw.MaxLevel {
				return nil, fmt.Errorf("buildings.json: %s: invalid level %q", name, levelStr)
			}
			if building.Levels[level] != nil {
				return nil, fmt.Errorf("buildings.json: %s: level %d defined twice", name, level)
			}
			if levelData.Jobs.Construction.Scientists > 0 {
				return nil, fmt.Errorf("buildings.json: %s level %d: scientists cannot work construction", name, level)
			}

			costs, err := parseCosts(levelData.UpgradeCost)
			if err != nil {
				return nil, fmt.Errorf("buildings.json: %s level %d: %w", name, level, err)
			}
			storage, err := parseCosts(levelData.Storage)
			if err != nil {
				return nil, fmt.Errorf("buildings.json: %s level %d: %w", name, level, err)
			}

			building.Levels[level] = &models.Level{
				UpgradeCost:     costs,
				UpgradeWorkload: levelData.UpgradeWorkload,
				PowerConsumed:   levelData.PowerConsumed,
				PowerProduced:   levelData.PowerProduced,
				Storage:         storage,
				Jobs: models.JobSlots{
					ConstructionEngineers:  levelData.Jobs.Construction.Engineers,
					ConstructionScientists: levelData.Jobs.Construction.Scientists,
					ProductionEngineers:    levelData.Jobs.Production.Engineers,
					ProductionScientists:   levelData.Jobs.Production.Scientists,
				},
				ProductionSpeed:    levelData.ProductionSpeed,
				ProductionPerCycle: levelData.ProductionPerCycle,
				QueueMaxSize:       levelData.QueueMaxSize,
			}
		}

		for level, data := range building.Levels {
			if data == nil {
				return nil, fmt.Errorf("buildings.json: %s: missing level %d", name, level)
			}
		}
		if kind == models.Headquarters && raw.MaxLevel != 1 {
			return nil, fmt.Errorf("buildings.json: %s: max_level must be 1, got %d", name, raw.MaxLevel)
		}

		// Reaching a level needs a positive workload, otherwise construction never starts counting
		for level := 0; level < raw.MaxLevel; level++ {
			if building.Levels[level].UpgradeWorkload <= 0 && kind != models.Headquarters {
				return nil, fmt.Errorf("buildings.json: %s level %d: upgrade_workload must be positive", name, level)
			}
		}

		buildings[kind] = building
	}

	if _, ok := buildings[models.Headquarters]; !ok {
		return nil, fmt.Errorf("buildings.json: missing %s", models.Headquarters)
	}

	return buildings, nil
}

// LoadItems loads manufactured item definitions from items.json
func LoadItems(fsys fs.FS) (map[models.ItemType]*models.Item, error) {
	var rawItems map[string]ItemJSON
	if err := readJSON(fsys, "items.json", &rawItems); err != nil {
		return nil, err
	}

	items := make(map[models.ItemType]*models.Item, len(rawItems))
	for name, raw := range rawItems {
		if err := validate.Struct(raw); err != nil {
			return nil, fmt.Errorf("items.json: %s: %w", name, err)
		}
		costs, err := parseCosts(raw.Costs)
		if err != nil {
			return nil, fmt.Errorf("items.json: %s: %w", name, err)
		}
		it := models.ItemType(name)
		items[it] = &models.Item{Type: it, Costs: costs, Workload: raw.Workload}
	}
	return items, nil
}

// LoadTraining loads per-worker training workloads from training.json
func LoadTraining(fsys fs.FS) (map[models.WorkerType]float64, error) {
	var raw map[string]float64
	if err := readJSON(fsys, "training.json", &raw); err != nil {
		return nil, err
	}

	training := make(map[models.WorkerType]float64, len(raw))
	for name, workload := range raw {
		wt := models.WorkerType(name)
		if !wt.Valid() {
			return nil, fmt.Errorf("training.json: unknown worker type %q", name)
		}
		if workload <= 0 {
			return nil, fmt.Errorf("training.json: %s: workload must be positive", name)
		}
		training[wt] = workload
	}
	return training, nil
}

// LoadFurnaceRecipes loads the metal -> ore mapping from furnace.json
func LoadFurnaceRecipes(fsys fs.FS) (map[models.ResourceType]models.ResourceType, error) {
	var raw map[string]string
	if err := readJSON(fsys, "furnace.json", &raw); err != nil {
		return nil, err
	}

	recipes := make(map[models.ResourceType]models.ResourceType, len(raw))
	for metal, ore := range raw {
		m, o := models.ResourceType(metal), models.ResourceType(ore)
		if !m.Valid() || !o.Valid() {
			return nil, fmt.Errorf("furnace.json: invalid recipe %q -> %q", metal, ore)
		}
		recipes[m] = o
	}
	return recipes, nil
}

// LoadProductionFactors loads default extraction multipliers from production_factors.json
func LoadProductionFactors(fsys fs.FS) (map[models.ResourceType]float64, error) {
	var raw map[string]float64
	if err := readJSON(fsys, "production_factors.json", &raw); err != nil {
		return nil, err
	}
	factors, err := parseCosts(raw)
	if err != nil {
		return nil, fmt.Errorf("production_factors.json: %w", err)
	}
	return factors, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// parseCosts converts a raw resource map, rejecting unknown resources and negative values
func parseCosts(raw map[string]float64) (models.Costs, error) {
	costs := make(models.Costs, len(raw))
	for res, amount := range raw {
		rt := models.ResourceType(res)
		if !rt.Valid() {
			return nil, fmt.Errorf("unknown resource %q", res)
		}
		if amount < 0 {
			return nil, fmt.Errorf("negative amount for %s", res)
		}
		costs[rt] = amount
	}
	return costs, nil
}
