package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/napolitain/homebound/internal/models"
)

// Action names a colony mutation a script step performs
type Action string

const (
	Select           Action = "select"
	AddBuilding      Action = "add_building"
	Upgrade          Action = "upgrade"
	CancelUpgrade    Action = "cancel_upgrade"
	Destroy          Action = "destroy"
	Assign           Action = "assign"
	Produce          Action = "produce"
	SwitchProduction Action = "switch_production"
	Train            Action = "train"
	CancelTraining   Action = "cancel_training"
	ClearTraining    Action = "clear_training"
	Manufacture      Action = "manufacture"
	CancelItem       Action = "cancel_item"
	ClearItems       Action = "clear_items"
)

// AllActions returns every action in a deterministic order
func AllActions() []Action {
	return []Action{
		Select, AddBuilding, Upgrade, CancelUpgrade, Destroy, Assign, Produce,
		SwitchProduction, Train, CancelTraining, ClearTraining, Manufacture, CancelItem, ClearItems,
	}
}

// Valid reports whether the action is known
func (a Action) Valid() bool {
	for _, known := range AllActions() {
		if a == known {
			return true
		}
	}
	return false
}

// Step is one timed action in a script. Fields beyond At and Action depend on the action.
type Step struct {
	ID     string  `json:"id,omitempty"`
	At     float64 `json:"at" validate:"gte=0"`
	Action Action  `json:"action" validate:"required"`

	X int `json:"x,omitempty" validate:"gte=0"`
	Y int `json:"y,omitempty" validate:"gte=0"`

	Kind     models.BuildingKind `json:"kind,omitempty"`
	Job      models.JobType      `json:"job,omitempty"`
	Worker   models.WorkerType   `json:"worker,omitempty"`
	Remove   bool                `json:"remove,omitempty"`
	All      bool                `json:"all,omitempty"`
	Resource models.ResourceType `json:"resource,omitempty"`
	Item     models.ItemType     `json:"item,omitempty"`
}

// Script is a timed sequence of actions played against a colony at a fixed tick
type Script struct {
	Name     string  `json:"name"`
	DT       float64 `json:"dt" validate:"gt=0"`
	Duration float64 `json:"duration" validate:"gt=0"`
	Starting bool    `json:"starting"`
	Steps    []Step  `json:"steps" validate:"dive"`
}

var validate = validator.New()

// Parse decodes and validates a JSON script. Steps without an ID get a random one.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	for i := range s.Steps {
		if s.Steps[i].ID == "" {
			s.Steps[i].ID = uuid.NewString()
		}
	}
	return &s, nil
}

// Load reads a script from a file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks the script shape and that every step carries what its action needs
func (s *Script) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid script: %w", err)
	}
	for i, step := range s.Steps {
		if step.At > s.Duration {
			return fmt.Errorf("step %d: at %.2f is past the duration %.2f", i, step.At, s.Duration)
		}
		if err := step.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks that the step names a known action with the arguments it needs
func (s Step) Validate() error {
	switch s.Action {
	case Select:
		return nil
	case AddBuilding:
		if !s.Kind.Valid() {
			return fmt.Errorf("%s: unknown building kind %q", s.Action, s.Kind)
		}
	case Assign:
		if !s.Job.Valid() {
			return fmt.Errorf("%s: unknown job %q", s.Action, s.Job)
		}
		if s.Worker != models.Engineers && s.Worker != models.Scientists {
			return fmt.Errorf("%s: %q cannot fill job slots", s.Action, s.Worker)
		}
	case Produce, SwitchProduction:
		if !s.Resource.Valid() {
			return fmt.Errorf("%s: unknown resource %q", s.Action, s.Resource)
		}
	case Train:
		if !s.Worker.Valid() {
			return fmt.Errorf("%s: unknown worker type %q", s.Action, s.Worker)
		}
	case Manufacture:
		if s.Item == "" {
			return fmt.Errorf("%s: missing item", s.Action)
		}
	case Upgrade, CancelUpgrade, Destroy, CancelTraining, ClearTraining, CancelItem, ClearItems:
		return nil
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}
