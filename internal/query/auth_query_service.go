package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/AndersondSilva/wow-server-dashboard/internal/cqrs"
	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	"github.com/AndersondSilva/wow-server-dashboard/internal/repository"
	"github.com/AndersondSilva/wow-server-dashboard/internal/token"
	"github.com/AndersondSilva/wow-server-dashboard/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidCredentials is returned for any login failure: unknown
	// account, bad password, bad digest. Handlers map it to 401 without
	// distinguishing which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedUserID means a session subject is not a valid document id.
	ErrMalformedUserID = errors.New("malformed user id")
)

// UserReader is the credential-store read surface.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserAccount, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.UserAccount, error)
}

// GameAccountFinder is the relational lookup used by game-client logins.
type GameAccountFinder interface {
	FindByCredentials(ctx context.Context, username, digest string) (*models.GameAccount, error)
}

// AuthQueryService handles the read-only authentication paths: password
// login, game-client login and session introspection. Nothing here mutates
// either store.
type AuthQueryService struct {
	users  UserReader
	games  GameAccountFinder
	tokens *token.Manager
}

func NewAuthQueryService(users UserReader, games GameAccountFinder, tokens *token.Manager) *AuthQueryService {
	return &AuthQueryService{users: users, games: games, tokens: tokens}
}

// Login verifies a dashboard password and issues a 24-hour session token.
func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (*models.LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID.Hex(), user.Role, token.DashboardSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &models.LoginResult{Token: signed, User: models.NewProfileView(user)}, nil
}

// GameLogin authenticates raw game credentials against the legacy digest and
// issues a 7-day token keyed on the game account id. This path never touches
// the credential store.
func (s *AuthQueryService) GameLogin(ctx context.Context, cmd cqrs.GameLoginCommand) (*models.GameLoginResult, error) {
	digest := utils.GameCredentialDigest(cmd.Username, cmd.Password)

	acc, err := s.games.FindByCredentials(ctx, cmd.Username, digest)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	signed, err := s.tokens.Issue(fmt.Sprintf("%d", acc.ID), models.RoleUser, token.GameSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &models.GameLoginResult{
		Token: signed,
		User: &models.GameAccountView{
			ID:      fmt.Sprintf("%d", acc.ID),
			Name:    acc.Username,
			IsAdmin: false,
		},
	}, nil
}

// Profile resolves a verified session subject to a sanitized profile.
func (s *AuthQueryService) Profile(ctx context.Context, q cqrs.GetProfileQuery) (*models.ProfileView, error) {
	id, err := primitive.ObjectIDFromHex(q.UserID)
	if err != nil {
		return nil, ErrMalformedUserID
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewProfileView(user), nil
}
