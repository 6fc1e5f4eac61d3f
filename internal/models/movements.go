package models

import "time"

// MovementCategory groups movements by the primary pattern they train.
type MovementCategory string

const (
	CategoryPull MovementCategory = "Pull"
	CategoryPush MovementCategory = "Push"
	CategoryLegs MovementCategory = "Legs"
	CategoryCore MovementCategory = "Core"
)

// ValidCategory reports whether c is one of the four known categories.
func ValidCategory(c MovementCategory) bool {
	switch c {
	case CategoryPull, CategoryPush, CategoryLegs, CategoryCore:
		return true
	}
	return false
}

// Movement is a catalog entry identifying an exercise type. Built-in and
// user-defined movements share one id namespace.
type Movement struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category MovementCategory `json:"category"`
	Image    string           `json:"image,omitempty"`
	Custom   bool             `json:"custom,omitempty"`
}

// CustomMovement is a user-authored catalog entry, unioned with the built-in
// catalog at read time.
type CustomMovement struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Category  MovementCategory `json:"category"`
	Image     string           `json:"image,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Movement converts a custom movement to its catalog form.
func (c CustomMovement) Movement() Movement {
	return Movement{ID: c.ID, Name: c.Name, Category: c.Category, Image: c.Image, Custom: true}
}

// BuiltinMovements is the static movement catalog.
var BuiltinMovements = []Movement{
	{ID: "pullup", Name: "Pull-ups", Category: CategoryPull, Image: "/movements/pullup.jpg"},
	{ID: "chinup", Name: "Chin-ups", Category: CategoryPull, Image: "/movements/chinup.jpg"},
	{ID: "row", Name: "Bodyweight Rows", Category: CategoryPull, Image: "/movements/row.jpg"},

	{ID: "dip", Name: "Dips", Category: CategoryPush, Image: "/movements/dip.jpg"},
	{ID: "pushup", Name: "Push-ups", Category: CategoryPush, Image: "/movements/pushup.jpg"},
	{ID: "hspu", Name: "Handstand Push-ups", Category: CategoryPush, Image: "/movements/hspu.jpg"},

	{ID: "squat", Name: "Squats", Category: CategoryLegs, Image: "/movements/squat.jpg"},
	{ID: "pistol", Name: "Pistol Squats", Category: CategoryLegs, Image: "/movements/pistol.jpg"},
	{ID: "lunge", Name: "Lunges", Category: CategoryLegs, Image: "/movements/lunge.jpg"},
	{ID: "nordic", Name: "Nordic Curls", Category: CategoryLegs, Image: "/movements/nordic.jpg"},

	{ID: "plank", Name: "Plank", Category: CategoryCore, Image: "/movements/plank.jpg"},
	{ID: "legraise", Name: "Hanging Leg Raises", Category: CategoryCore, Image: "/movements/legraise.jpg"},
}

// Catalog returns the built-in movements unioned with the given custom
// movements. Built-ins come first in their fixed order, customs follow in the
// order given (the storage layer lists them oldest first).
func Catalog(customs []CustomMovement) []Movement {
	out := make([]Movement, 0, len(BuiltinMovements)+len(customs))
	out = append(out, BuiltinMovements...)
	for _, c := range customs {
		out = append(out, c.Movement())
	}
	return out
}

// LookupMovement finds a movement by id in the built-in catalog unioned with
// the given custom movements.
func LookupMovement(id string, customs []CustomMovement) (Movement, bool) {
	for _, m := range BuiltinMovements {
		if m.ID == id {
			return m, true
		}
	}
	for _, c := range customs {
		if c.ID == id {
			return c.Movement(), true
		}
	}
	return Movement{}, false
}
