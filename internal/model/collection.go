package model

import (
	"time"

	"gorm.io/datatypes"
)

// Collection names used by the local persistence store.
const (
	CollectionUsers     = "users"
	CollectionFoodItems = "food_items"
	CollectionPickups   = "pickups"
	CollectionClaims    = "claims"
)

// Collection is a named JSON-array record set. It is the only relational
// table the service owns; entity records live inside Data.
type Collection struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}
