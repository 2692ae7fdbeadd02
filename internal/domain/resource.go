package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// ResourceType determines the interval semantics of a line item:
// room items occupy nights [start, end), meal and activity items occupy
// every day of [start, end] inclusive.
type ResourceType string

const (
	ResourceRoom     ResourceType = "room"
	ResourceMeal     ResourceType = "meal"
	ResourceActivity ResourceType = "activity"
)

// Valid returns true for a known resource type
func (t ResourceType) Valid() bool {
	return t == ResourceRoom || t == ResourceMeal || t == ResourceActivity
}

// ParseResourceType converts a string into a ResourceType
func ParseResourceType(s string) (ResourceType, error) {
	t := ResourceType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownResourceType, s)
	}
	return t, nil
}

var (
	ErrUnknownResourceType = errors.New("domain: unknown resource type")
	ErrNegativeInventory   = errors.New("domain: total inventory must be non-negative")
	ErrNegativePrice       = errors.New("domain: price must be non-negative")
	ErrInvalidCapacity     = errors.New("domain: capacity must be positive")
	ErrEmptyName           = errors.New("domain: resource name is required")
	ErrInvalidSchedule     = errors.New("domain: activity end time must be after start time")
)

// Resource is a bookable catalog entity: a room type, a meal option or an
// activity slot. TotalInventory is the number of sellable units per covered
// day (room units, meal servings, activity spots).
type Resource struct {
	ID             uuid.UUID
	Type           ResourceType
	Name           string
	Description    *string
	Price          float64
	Capacity       int // guests per unit, meaningful for rooms
	TotalInventory int
	StartTime      *types.TimeString // activity schedule, nil for rooms and meals
	EndTime        *types.TimeString
	ImageURL       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate enforces catalog invariants before a resource is persisted
func (r *Resource) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownResourceType, r.Type)
	}
	if r.Name == "" {
		return ErrEmptyName
	}
	if r.TotalInventory < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeInventory, r.TotalInventory)
	}
	if r.Price < 0 {
		return ErrNegativePrice
	}
	if r.Capacity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, r.Capacity)
	}
	if r.StartTime != nil {
		if err := r.StartTime.Validate(); err != nil {
			return err
		}
	}
	if r.EndTime != nil {
		if err := r.EndTime.Validate(); err != nil {
			return err
		}
		if r.StartTime != nil && !r.StartTime.IsBefore(*r.EndTime) {
			return ErrInvalidSchedule
		}
	}
	return nil
}
