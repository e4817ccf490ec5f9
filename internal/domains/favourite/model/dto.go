package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddFavouriteRequest bookmarks a creature for the calling user.
type AddFavouriteRequest struct {
	CreatureID int64 `json:"CreatureId"`
}

func (r AddFavouriteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CreatureID, validation.Required, validation.Min(int64(1))),
	)
}

// SetBackgroundRequest carries the new background as a data-URI string.
type SetBackgroundRequest struct {
	BackgroundImg string `json:"BackgroundImg"`
}

func (r SetBackgroundRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BackgroundImg, validation.Required),
	)
}

// FavouriteResponse is the API view of a favourite row.
type FavouriteResponse struct {
	ID         int64  `json:"id"`
	CreatureID int64  `json:"creatureId"`
	UserID     int64  `json:"userId"`
	AddedOn    string `json:"addedOn"`
}

// BackgroundResponse returns the stored background as a data URI, null when
// no custom background is set.
type BackgroundResponse struct {
	CreatureID    int64   `json:"creatureId"`
	BackgroundImg *string `json:"backgroundImg"`
}
