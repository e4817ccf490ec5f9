package model

import "time"

// Creature is a catalog entity: name, lore text, optional raw image and
// audit metadata. The entity is never serialized to clients (DTOs are the
// API boundary), but it does round-trip through the JSON cache layer, so
// every field including Img must carry a real tag.
type Creature struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Lore      string    `json:"lore"`
	Img       []byte    `json:"img,omitempty"`
	CreatedBy int64     `json:"createdBy"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedBy int64     `json:"updatedBy"`
	UpdatedOn time.Time `json:"updatedOn"`
}

// Filter restricts a catalog query. A nil/empty field means "no constraint".
type Filter struct {
	// Name, when non-blank, is a case-sensitive substring match.
	Name string
	// CreatedBefore keeps creatures created strictly earlier.
	CreatedBefore *time.Time
	// IncludeIDs, when non-nil, restricts to these creature ids.
	IncludeIDs []int64
	// ExcludeIDs, when non-nil, removes these creature ids.
	ExcludeIDs []int64
}
