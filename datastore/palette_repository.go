package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/color-palette/api/models"
)

type PaletteRepository interface {
	Create(palette models.SavedPalette) (models.SavedPalette, error)
	Get(paletteID string) (models.SavedPalette, error)
	ListByUser(userID string) ([]models.SavedPalette, error)
	Update(palette models.SavedPalette) (models.SavedPalette, error)
	Delete(paletteID string) error
}

type PaletteDatabase struct {
	database *sql.DB
}

func NewPaletteDatabase(db *sql.DB) (PaletteDatabase, error) {
	if db == nil {
		return PaletteDatabase{}, errors.New("nil database handle")
	}
	return PaletteDatabase{database: db}, nil
}

const paletteColumns = `
		palette_id,
		user_id,
		name,
		colors,
		public,
		created_at,
		updated_at`

func scanPalette(row rowScanner) (models.SavedPalette, error) {
	var p models.SavedPalette
	scanErr := row.Scan(
		&p.PaletteID,
		&p.UserID,
		&p.Name,
		pq.Array(&p.Colors),
		&p.Public,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	switch {
	case errors.Is(scanErr, sql.ErrNoRows):
		return models.SavedPalette{}, notFound(scanErr)
	case scanErr != nil:
		return models.SavedPalette{}, scanErr
	default:
		return p, nil
	}
}

// Create inserts a new saved palette
func (pdb PaletteDatabase) Create(palette models.SavedPalette) (models.SavedPalette, error) {
	_, err := pdb.database.Exec(`
		INSERT INTO palettes (`+paletteColumns+`
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		palette.PaletteID,
		palette.UserID,
		palette.Name,
		pq.Array(palette.Colors),
		palette.Public,
		palette.CreatedAt,
		palette.UpdatedAt,
	)
	if err != nil {
		return models.SavedPalette{}, fmt.Errorf("failed to create palette: %w", err)
	}
	return palette, nil
}

func (pdb PaletteDatabase) Get(paletteID string) (models.SavedPalette, error) {
	row := pdb.database.QueryRow(`SELECT`+paletteColumns+` FROM palettes WHERE palette_id = $1`, paletteID)
	return scanPalette(row)
}

// ListByUser returns a user's palettes, most recently updated first
func (pdb PaletteDatabase) ListByUser(userID string) ([]models.SavedPalette, error) {
	rows, err := pdb.database.Query(`
		SELECT`+paletteColumns+`
		FROM palettes
		WHERE user_id = $1
		ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}
	defer rows.Close()

	palettes := []models.SavedPalette{}
	for rows.Next() {
		p, err := scanPalette(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan palette: %w", err)
		}
		palettes = append(palettes, p)
	}
	return palettes, rows.Err()
}

func (pdb PaletteDatabase) Update(palette models.SavedPalette) (models.SavedPalette, error) {
	palette.UpdatedAt = time.Now()
	res, err := pdb.database.Exec(`
		UPDATE palettes
		SET
			name = $2,
			colors = $3,
			public = $4,
			updated_at = $5
		WHERE palette_id = $1`,
		palette.PaletteID,
		palette.Name,
		pq.Array(palette.Colors),
		palette.Public,
		palette.UpdatedAt,
	)
	if err != nil {
		return models.SavedPalette{}, fmt.Errorf("failed to update palette: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.SavedPalette{}, notFound(sql.ErrNoRows)
	}
	return palette, nil
}

func (pdb PaletteDatabase) Delete(paletteID string) error {
	res, err := pdb.database.Exec(`DELETE FROM palettes WHERE palette_id = $1`, paletteID)
	if err != nil {
		return fmt.Errorf("failed to delete palette: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(sql.ErrNoRows)
	}
	return nil
}
