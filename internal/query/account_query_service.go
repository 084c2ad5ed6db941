package query

import (
	"context"
	"errors"

	"github.com/AndersondSilva/wow-server-dashboard/internal/cqrs"
	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	"github.com/AndersondSilva/wow-server-dashboard/internal/repository"
)

// Cap on the diagnostic character listing.
const maxCharacterRows = 10

// UsernameChecker asks the relational store about username availability.
type UsernameChecker interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// CharacterLister reads the diagnostic character projection.
type CharacterLister interface {
	List(ctx context.Context, limit int) ([]models.Character, error)
}

// ConfigReader reads the server-configuration singleton.
type ConfigReader interface {
	Get(ctx context.Context) (*models.ServerConfig, error)
}

// AccountQueryService handles the non-auth reads: username availability, the
// diagnostic character listing and the config singleton.
type AccountQueryService struct {
	games      UsernameChecker
	characters CharacterLister
	configs    ConfigReader
}

func NewAccountQueryService(games UsernameChecker, characters CharacterLister, configs ConfigReader) *AccountQueryService {
	return &AccountQueryService{games: games, characters: characters, configs: configs}
}

// CheckUsername reports whether the candidate game username is still
// available. Read-only, no side effects.
func (s *AccountQueryService) CheckUsername(ctx context.Context, q cqrs.CheckUsernameQuery) (bool, error) {
	exists, err := s.games.UsernameExists(ctx, q.Username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// ListCharacters returns up to 10 arbitrary character rows. Connectivity
// diagnostic; not access-controlled and not filtered by caller.
func (s *AccountQueryService) ListCharacters(ctx context.Context, q cqrs.ListCharactersQuery) ([]models.Character, error) {
	limit := q.Limit
	if limit <= 0 || limit > maxCharacterRows {
		limit = maxCharacterRows
	}
	return s.characters.List(ctx, limit)
}

// GetConfig returns the persisted singleton, or the hard-coded defaults if
// nothing has ever been saved.
func (s *AccountQueryService) GetConfig(ctx context.Context) (*models.ServerConfig, error) {
	cfg, err := s.configs.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return models.DefaultServerConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
