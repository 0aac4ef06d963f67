package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/color-palette/api/colorspace"
)

const MaxPaletteColors = 32

type SavedPalette struct {
	PaletteID string    `json:"paletteId" db:"palette_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Colors    []string  `json:"colors" db:"colors"`
	Public    bool      `json:"public" db:"public"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type PaletteRequest struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
	Public bool     `json:"public"`
}

// Validate trims the name and rewrites every color in canonical #rrggbb form.
func (req *PaletteRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errors.New("name is required")
	}
	colors, err := NormalizeColors(req.Colors)
	if err != nil {
		return err
	}
	req.Colors = colors
	return nil
}

// NormalizeColors validates a palette and returns its canonical form.
func NormalizeColors(colors []string) ([]string, error) {
	if len(colors) == 0 {
		return nil, errors.New("at least one color is required")
	}
	if len(colors) > MaxPaletteColors {
		return nil, fmt.Errorf("at most %d colors are allowed", MaxPaletteColors)
	}
	out := make([]string, len(colors))
	for i, c := range colors {
		hex, err := colorspace.ParseHex(c)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out[i] = hex
	}
	return out, nil
}

func NewSavedPalette(userID string, req PaletteRequest) SavedPalette {
	now := time.Now()
	return SavedPalette{
		PaletteID: uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Colors:    req.Colors,
		Public:    req.Public,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
