package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
)

// CharacterRepository reads the game server's `characters` table. Read-only
// in this service.
type CharacterRepository struct {
	db *sql.DB
}

func NewCharacterRepository(db *sql.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// List returns up to limit arbitrary character rows. Diagnostic only: it
// proves connectivity to the characters database, nothing more.
func (r *CharacterRepository) List(ctx context.Context, limit int) ([]models.Character, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, race, class, level FROM characters LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	characters := []models.Character{}
	for rows.Next() {
		var c models.Character
		if err := rows.Scan(&c.Name, &c.Race, &c.Class, &c.Level); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read characters: %w", err)
	}
	return characters, nil
}
