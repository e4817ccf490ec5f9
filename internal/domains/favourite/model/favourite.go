package model

import "time"

// Favourite is a per-user bookmark of a creature, optionally carrying a
// personal background image. The referenced creature is not required to
// still exist; the sweeper prunes dangling rows.
type Favourite struct {
	ID            int64     `json:"id"`
	CreatureID    int64     `json:"creatureId"`
	UserID        int64     `json:"userId"`
	BackgroundImg []byte    `json:"-"`
	AddedBy       int64     `json:"addedBy"`
	AddedOn       time.Time `json:"addedOn"`
	UpdatedBy     int64     `json:"updatedBy"`
	UpdatedOn     time.Time `json:"updatedOn"`
}
