// Package snapshot captures a read-only, serialisable view of a colony between ticks.
package snapshot

import (
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/models"
)

// BuildingView is one occupied cell
type BuildingView struct {
	X            int                 `json:"x"`
	Y            int                 `json:"y"`
	Kind         models.BuildingKind `json:"kind"`
	Label        string              `json:"label"`
	Level        int                 `json:"level"`
	LevelMax     int                 `json:"level_max"`
	Constructing bool                `json:"constructing"`

	ConstructionCompleted float64 `json:"construction_completed"`
	ConstructionRequired  float64 `json:"construction_required"`

	Assigned      models.JobSlots `json:"assigned"`
	Capacity      models.JobSlots `json:"capacity"`
	PowerConsumed float64         `json:"power_consumed"`
	PowerProduced float64         `json:"power_produced"`

	// Kind-specific state
	Target      models.ResourceType `json:"target,omitempty"`
	Progress    float64             `json:"progress,omitempty"`
	OreConsumed bool                `json:"ore_consumed,omitempty"`
	Queue       []string            `json:"queue,omitempty"`
}

// View is the state of a colony at one point in time
type View struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Tick    uint64  `json:"tick"`
	Elapsed float64 `json:"elapsed"`

	Power          colony.Power `json:"power"`
	AvailablePower float64      `json:"available_power"`

	Stock      map[models.ResourceType]float64 `json:"stock"`
	Buffer     map[models.ResourceType]float64 `json:"buffer"`
	MaxStorage map[models.ResourceType]float64 `json:"max_storage"`
	Discarded  map[models.ResourceType]float64 `json:"discarded,omitempty"`
	Items      map[models.ItemType]int         `json:"items"`
	Workforce  colony.Workforce                `json:"workforce"`

	Selected  *colony.Coords `json:"selected,omitempty"`
	Buildings []BuildingView `json:"buildings"`

	Digest string `json:"digest"`
}

// Take builds a view of c and stamps it with its digest.
// It must not run concurrently with c.Update.
func Take(c *colony.Colony) View {
	data := c.Data()
	stock, buffer := data.Ledger.Snapshot()
	power := c.Power()

	items := make(map[models.ItemType]int, len(data.Items))
	for it, n := range data.Items {
		items[it] = n
	}

	v := View{
		ID:             c.ID().String(),
		Name:           c.Name(),
		Tick:           c.Ticks(),
		Elapsed:        c.Elapsed(),
		Power:          power,
		AvailablePower: power.Available(),
		Stock:          stock,
		Buffer:         buffer,
		MaxStorage:     c.MaxStorage(),
		Discarded:      c.LastDiscarded(),
		Items:          items,
		Workforce:      *data.Workforce,
		Buildings:      []BuildingView{},
	}
	if at, ok := c.SelectedCoords(); ok {
		v.Selected = &at
	}
	c.Each(func(at colony.Coords, b colony.Building) {
		v.Buildings = append(v.Buildings, Building(at, b))
	})

	v.Digest = v.ComputeDigest()
	return v
}

// Building describes one building, including the state its kind adds
func Building(at colony.Coords, b colony.Building) BuildingView {
	bv := BuildingView{
		X:                     at.X,
		Y:                     at.Y,
		Kind:                  b.Kind(),
		Label:                 models.Info(b.Kind()).Label,
		Level:                 b.Level(),
		LevelMax:              b.LevelMax(),
		Constructing:          b.IsConstructing(),
		ConstructionCompleted: b.ConstructionWorkloadCompleted(),
		ConstructionRequired:  b.ConstructionWorkloadRequired(),
		Assigned:              b.AssignedWorkers(),
		PowerConsumed:         b.PowerConsumed(),
		PowerProduced:         b.PowerProduced(),
		Capacity:              b.Parameters().Jobs,
	}

	switch kb := b.(type) {
	case *colony.DrillingStation:
		bv.Target = kb.Target()
	case *colony.Furnace:
		bv.Target = kb.Target()
		bv.Progress = kb.SmeltingCompletedPercent()
		bv.OreConsumed = kb.OreConsumed()
	case *colony.School:
		bv.Progress = kb.TrainingWorkloadCompleted()
		for _, wt := range kb.Queue() {
			bv.Queue = append(bv.Queue, string(wt))
		}
	case *colony.Factory:
		bv.Progress = kb.ItemWorkloadCompleted()
		for _, it := range kb.Queue() {
			bv.Queue = append(bv.Queue, string(it))
		}
	}
	return bv
}

// ComputeDigest hashes the simulated state of the view with BLAKE3.
// Identity, display name and the previous digest are left out, so two colonies
// driven by the same inputs share a digest.
func (v View) ComputeDigest() string {
	v.ID = ""
	v.Name = ""
	v.Digest = ""
	// encoding/json sorts map keys, so equal states encode to equal bytes
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
