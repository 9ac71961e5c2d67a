package entries

import (
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"github.com/angelmondragon/ecotech-backend/pkg/enums"
)

// EntryDTO is the transport shape of a recycling entry.
type EntryDTO struct {
	ID         string                `json:"id"`
	UID        *string               `json:"uid"`
	Category   string                `json:"categoria"`
	Quantity   int                   `json:"quantidade"`
	LocationID string                `json:"localDescarte"`
	Points     float64               `json:"pontos"`
	Show       bool                  `json:"show"`
	Visibility enums.EntryVisibility `json:"visibilidade"`
	CreatedAt  time.Time             `json:"criadoEm"`
}

// EntryPage is one page of entries; NextCursor is empty on the last page.
type EntryPage struct {
	Items      []EntryDTO `json:"items"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// CreateEntryInput carries the five fields every new entry needs.
type CreateEntryInput struct {
	UID        string
	Category   string
	Quantity   int
	LocationID string
	Points     float64
}

// UpdateEntryInput is a sparse patch. An empty UID detaches the owner.
// LocationID is accepted from callers but always dropped by the guard.
type UpdateEntryInput struct {
	UID        *string
	Category   *string
	Quantity   *int
	Points     *float64
	Show       *bool
	LocationID *string
}

func (u UpdateEntryInput) isEmpty() bool {
	return u.UID == nil && u.Category == nil && u.Quantity == nil && u.Points == nil && u.Show == nil
}

// columns maps the sanitized patch to storage columns.
func (u UpdateEntryInput) columns() map[string]any {
	cols := map[string]any{}
	if u.UID != nil {
		if *u.UID == "" {
			cols["uid"] = nil
		} else {
			cols["uid"] = *u.UID
		}
	}
	if u.Category != nil {
		cols["category"] = *u.Category
	}
	if u.Quantity != nil {
		cols["quantity"] = *u.Quantity
	}
	if u.Points != nil {
		cols["points"] = *u.Points
	}
	if u.Show != nil {
		cols["visibility"] = enums.EntryVisibilityFromShow(*u.Show)
	}
	return cols
}

func FromModel(m *models.RecyclingEntry) *EntryDTO {
	if m == nil {
		return nil
	}
	return &EntryDTO{
		ID:         m.ID,
		UID:        m.OwnerUID,
		Category:   m.Category,
		Quantity:   m.Quantity,
		LocationID: m.LocationID,
		Points:     m.Points,
		Show:       m.Visibility.Shown(),
		Visibility: m.Visibility,
		CreatedAt:  m.CreatedAt,
	}
}

func fromModels(rows []models.RecyclingEntry) []EntryDTO {
	out := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
