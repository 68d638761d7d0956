package api

import (
	"github.com/napolitain/homebound/internal/models"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SelectionRequest moves the selection cursor
type SelectionRequest struct {
	X int `json:"x" validate:"gte=0,lt=7"`
	Y int `json:"y" validate:"gte=0,lt=7"`
}

// AddBuildingRequest places a new building on an empty cell
type AddBuildingRequest struct {
	X    int                 `json:"x" validate:"gte=0,lt=7"`
	Y    int                 `json:"y" validate:"gte=0,lt=7"`
	Kind models.BuildingKind `json:"kind" validate:"required"`
}

// WorkersRequest moves workers into or out of a building's job slots
type WorkersRequest struct {
	Job    models.JobType    `json:"job" validate:"required"`
	Worker models.WorkerType `json:"worker" validate:"required"`
	Remove bool              `json:"remove"`
	All    bool              `json:"all"`
}

// ProductionRequest picks what a drilling station extracts or a furnace smelts
type ProductionRequest struct {
	Resource models.ResourceType `json:"resource" validate:"required"`
}

// QueueRequest appends to a school or factory queue. Exactly one field is set.
type QueueRequest struct {
	Worker models.WorkerType `json:"worker,omitempty" validate:"required_without=Item,excluded_with=Item"`
	Item   models.ItemType   `json:"item,omitempty" validate:"required_without=Worker"`
}
