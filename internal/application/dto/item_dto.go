package dto

import "time"

// SaveItemRequest body para crear/actualizar un artículo del catálogo.
type SaveItemRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// ItemResponse artículo del catálogo.
type ItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
