package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCreatureRequest is the admin payload for adding a creature.
// Img, when present, is a data-URI string.
type CreateCreatureRequest struct {
	Name string `json:"Name"`
	Lore string `json:"Lore"`
	Img  string `json:"Img"`
}

func (r CreateCreatureRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Lore, validation.Length(0, 65535)),
	)
}

// UpdateCreatureRequest replaces name, lore and image wholesale: a field
// sent empty clears it. There is no partial-patch merge on this endpoint.
type UpdateCreatureRequest struct {
	Name string `json:"Name"`
	Lore string `json:"Lore"`
	Img  string `json:"Img"`
}

func (r UpdateCreatureRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Lore, validation.Length(0, 65535)),
	)
}

// ListCreaturesRequest is the parsed query surface of the catalog listing.
type ListCreaturesRequest struct {
	Name             string
	Latest           *time.Time
	Page             int
	Limit            int
	OnlyFavorites    bool
	ExcludeFavorites bool
	OfflineSnapshot  bool
}

// CreatureListItem is one row of a catalog listing. Img is a data URI,
// null when the creature has no image.
type CreatureListItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Img         *string `json:"img"`
	IsFavourite bool    `json:"isFavourite"`
}

// CreatureDetail adds the lore text to the listing fields.
type CreatureDetail struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Img         *string `json:"img"`
	Lore        string  `json:"lore"`
	IsFavourite bool    `json:"isFavourite"`
}

// ListCreaturesResult is what the catalog query engine hands the handler.
type ListCreaturesResult struct {
	Items        []CreatureListItem
	MatchedCount int64
	TotalCount   int64
}
