package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/models"
	"github.com/napolitain/homebound/internal/scenario"
	"github.com/napolitain/homebound/internal/service"
	"github.com/napolitain/homebound/internal/snapshot"
)

var validate = validator.New()

var errOffGrid = errors.New("coordinates are outside the grid")

// Handler serves one colony session
type Handler struct {
	session *service.Session
	catalog *models.Catalog
	logger  *slog.Logger
}

// NewHandler creates a handler. A nil logger discards output.
func NewHandler(session *service.Session, catalog *models.Catalog, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{session: session, catalog: catalog, logger: logger}
}

// GetColony returns the full snapshot. The digest doubles as the ETag.
func (h *Handler) GetColony(w http.ResponseWriter, r *http.Request) {
	v := h.session.View()
	etag := strconv.Quote(v.Digest)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GetBuilding returns one occupied cell
func (h *Handler) GetBuilding(w http.ResponseWriter, r *http.Request) {
	at, err := cellParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cell", err)
		return
	}

	var bv snapshot.BuildingView
	found := h.session.Do(func(c *colony.Colony) bool {
		b := c.Building(at)
		if b == nil {
			return false
		}
		bv = snapshot.Building(at, b)
		return true
	})
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No building at %s", at), nil)
		return
	}
	writeJSON(w, http.StatusOK, bv)
}

// GetCatalog returns the static game data
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog)
}

// SetSelection moves the selection cursor
func (h *Handler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, scenario.Step{Action: scenario.Select, X: req.X, Y: req.Y})
}

// ClearSelection removes the selection cursor
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.session.Do(func(c *colony.Colony) bool {
		c.ClearSelection()
		return true
	})
	writeJSON(w, http.StatusOK, h.session.View())
}

// AddBuilding starts construction of a new building
func (h *Handler) AddBuilding(w http.ResponseWriter, r *http.Request) {
	var req AddBuildingRequest
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, scenario.Step{Action: scenario.AddBuilding, X: req.X, Y: req.Y, Kind: req.Kind})
}

// Upgrade starts the next level of a building
func (h *Handler) Upgrade(w http.ResponseWriter, r *http.Request) {
	h.applyAt(w, r, scenario.Step{Action: scenario.Upgrade})
}

// CancelUpgrade stops a construction and refunds it
func (h *Handler) CancelUpgrade(w http.ResponseWriter, r *http.Request) {
	h.applyAt(w, r, scenario.Step{Action: scenario.CancelUpgrade})
}

// Destroy removes a building
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	h.applyAt(w, r, scenario.Step{Action: scenario.Destroy})
}

// AssignWorkers adds or removes workers on a building
func (h *Handler) AssignWorkers(w http.ResponseWriter, r *http.Request) {
	var req WorkersRequest
	if !decode(w, r, &req) {
		return
	}
	h.applyAt(w, r, scenario.Step{
		Action: scenario.Assign,
		Job:    req.Job,
		Worker: req.Worker,
		Remove: req.Remove,
		All:    req.All,
	})
}

// SetProduction retargets a drilling station or a furnace
func (h *Handler) SetProduction(w http.ResponseWriter, r *http.Request) {
	var req ProductionRequest
	if !decode(w, r, &req) {
		return
	}
	h.applyByKind(w, r, scenario.Step{Resource: req.Resource}, map[models.BuildingKind]scenario.Action{
		models.DrillingStation: scenario.Produce,
		models.Furnace:         scenario.SwitchProduction,
	})
}

// Enqueue adds a worker to a school queue or an item to a factory queue
func (h *Handler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req QueueRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Item != "" {
		h.applyAt(w, r, scenario.Step{Action: scenario.Manufacture, Item: req.Item})
		return
	}
	h.applyAt(w, r, scenario.Step{Action: scenario.Train, Worker: req.Worker})
}

// CancelQueueHead cancels the entry in progress
func (h *Handler) CancelQueueHead(w http.ResponseWriter, r *http.Request) {
	h.applyByKind(w, r, scenario.Step{}, map[models.BuildingKind]scenario.Action{
		models.School:  scenario.CancelTraining,
		models.Factory: scenario.CancelItem,
	})
}

// ClearQueue drops every pending entry
func (h *Handler) ClearQueue(w http.ResponseWriter, r *http.Request) {
	h.applyByKind(w, r, scenario.Step{}, map[models.BuildingKind]scenario.Action{
		models.School:  scenario.ClearTraining,
		models.Factory: scenario.ClearItems,
	})
}

// applyAt fills the step's cell from the URL and applies it
func (h *Handler) applyAt(w http.ResponseWriter, r *http.Request, step scenario.Step) {
	at, err := cellParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cell", err)
		return
	}
	step.X, step.Y = at.X, at.Y
	h.apply(w, step)
}

// applyByKind picks the action from the kind of the addressed building
func (h *Handler) applyByKind(w http.ResponseWriter, r *http.Request, step scenario.Step, actions map[models.BuildingKind]scenario.Action) {
	at, err := cellParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cell", err)
		return
	}
	step.X, step.Y = at.X, at.Y

	var kind models.BuildingKind
	h.session.Do(func(c *colony.Colony) bool {
		if b := c.Building(at); b != nil {
			kind = b.Kind()
		}
		return true
	})
	action, ok := actions[kind]
	if !ok {
		writeError(w, http.StatusConflict, fmt.Sprintf("Building at %s does not support this action", at), nil)
		return
	}
	step.Action = action
	h.apply(w, step)
}

// apply validates the step and runs it between ticks.
// Malformed steps are a 400, steps the colony refuses are a 409.
func (h *Handler) apply(w http.ResponseWriter, step scenario.Step) {
	if err := step.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	at := colony.Coords{X: step.X, Y: step.Y}
	if !at.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid cell", errOffGrid)
		return
	}

	if !h.session.Do(func(c *colony.Colony) bool { return scenario.Apply(c, step) }) {
		h.logger.Debug("action refused", "action", string(step.Action), "cell", at.String())
		writeError(w, http.StatusConflict, fmt.Sprintf("Action %s is not available at %s", step.Action, at), nil)
		return
	}
	writeJSON(w, http.StatusOK, h.session.View())
}

func cellParam(r *http.Request) (colony.Coords, error) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		return colony.Coords{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		return colony.Coords{}, fmt.Errorf("y: %w", err)
	}
	at := colony.Coords{X: x, Y: y}
	if !at.Valid() {
		return at, errOffGrid
	}
	return at, nil
}

// decode reads a JSON body into dst and validates it, writing a 400 on failure
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
