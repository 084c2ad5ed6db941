package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AndersondSilva/wow-server-dashboard/internal/cqrs"
	"github.com/AndersondSilva/wow-server-dashboard/internal/events"
	"github.com/AndersondSilva/wow-server-dashboard/internal/googleauth"
	"github.com/AndersondSilva/wow-server-dashboard/internal/mail"
	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	"github.com/AndersondSilva/wow-server-dashboard/internal/repository"
	"github.com/AndersondSilva/wow-server-dashboard/internal/token"
	"github.com/AndersondSilva/wow-server-dashboard/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrMalformedUserID is returned when a session subject cannot be decoded as
// a user document id.
var ErrMalformedUserID = errors.New("malformed user id")

// UserStore is the credential-store surface the command service writes to.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.UserAccount, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.UserAccount, error)
	Create(ctx context.Context, user *models.UserAccount) (primitive.ObjectID, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
}

// GameAccountStore is the relational-store surface used for provisioning and
// email propagation.
type GameAccountStore interface {
	Create(ctx context.Context, username, digest, email string) (uint32, error)
	UpdateEmail(ctx context.Context, id uint32, email string) error
}

// ConfigStore overwrites the server-configuration singleton.
type ConfigStore interface {
	Put(ctx context.Context, cfg *models.ServerConfig) error
}

// IdentityVerifier introspects external identity tokens.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*googleauth.TokenInfo, error)
}

// EventPublisher appends domain events to a stream, best effort.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AdminList decides which emails hold the admin role.
type AdminList interface {
	IsAdminEmail(email string) bool
}

// AccountCommandService handles every mutating operation: signup, Google
// login (which may provision), profile updates and config writes.
//
// The signup and Google paths share a dual-write: the user document in the
// credential store is primary, the game-account row is a best-effort
// secondary. There is no transaction spanning both; provisionGameAccount
// classifies the secondary outcome and only a duplicate username aborts the
// whole operation.
type AccountCommandService struct {
	users     UserStore
	games     GameAccountStore
	configs   ConfigStore
	verifier  IdentityVerifier
	mailer    mail.Mailer
	publisher EventPublisher
	tokens    *token.Manager
	admins    AdminList
	logger    *zap.Logger
}

func NewAccountCommandService(
	users UserStore,
	games GameAccountStore,
	configs ConfigStore,
	verifier IdentityVerifier,
	mailer mail.Mailer,
	publisher EventPublisher,
	tokens *token.Manager,
	admins AdminList,
	logger *zap.Logger,
) *AccountCommandService {
	return &AccountCommandService{
		users:     users,
		games:     games,
		configs:   configs,
		verifier:  verifier,
		mailer:    mailer,
		publisher: publisher,
		tokens:    tokens,
		admins:    admins,
		logger:    logger,
	}
}

// Signup creates a dashboard user and, best effort, a linked game account.
func (s *AccountCommandService) Signup(ctx context.Context, cmd cqrs.SignupCommand) (*models.ProfileView, error) {
	if _, err := s.users.GetByEmail(ctx, cmd.Email); err == nil {
		return nil, repository.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	username := utils.DeriveGameUsername(cmd.Nickname)
	password := cmd.Password
	generated := false
	if password == "" {
		password = utils.GeneratePassword()
		generated = true
	}

	gameID, err := s.provisionGameAccount(ctx, username, password, cmd.Email)
	if err != nil {
		// Only a duplicate username aborts the signup.
		return nil, err
	}

	if generated {
		s.sendWelcome(cmd.Email, cmd.Nickname, username, password)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	avatarURL := cmd.AvatarURL
	if avatarURL == "" {
		avatarURL = utils.DefaultAvatarURL(cmd.Nickname)
	}

	user := &models.UserAccount{
		Nickname:     cmd.Nickname,
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Email:        cmd.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		GameID:       gameID,
		AvatarURL:    avatarURL,
		CreatedAt:    time.Now().Unix(),
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.publishAccountEvent(events.UserRegistered, events.UserRegisteredEvent{
		UserID:   id.Hex(),
		Email:    user.Email,
		Nickname: user.Nickname,
		GameID:   gameID,
	})

	return models.NewProfileView(user), nil
}

// GoogleLogin validates the provider token, reuses or provisions the user,
// and issues a dashboard session token.
func (s *AccountCommandService) GoogleLogin(ctx context.Context, cmd cqrs.GoogleLoginCommand) (*models.LoginResult, error) {
	info, err := s.verifier.Verify(ctx, cmd.IDToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, info.Email)
	switch {
	case err == nil:
		if s.admins.IsAdminEmail(user.Email) && user.Role != models.RoleAdmin {
			if err := s.users.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
				s.logger.Error("failed to persist admin promotion",
					zap.String("userId", user.ID.Hex()), zap.Error(err))
			}
			// The allow-list is authoritative for this session either way.
			user.Role = models.RoleAdmin
		}
	case errors.Is(err, repository.ErrNotFound):
		user, err = s.provisionGoogleUser(ctx, info)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID.Hex(), user.Role, token.DashboardSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &models.LoginResult{Token: signed, User: models.NewProfileView(user)}, nil
}

// provisionGoogleUser creates a dashboard user for a first-time Google
// login: game account from the email's local part, generated password mailed
// best effort, empty dashboard password hash (the user authenticates only
// via the provider).
func (s *AccountCommandService) provisionGoogleUser(ctx context.Context, info *googleauth.TokenInfo) (*models.UserAccount, error) {
	username := utils.GameUsernameFromEmail(info.Email)
	password := utils.GeneratePassword()

	gameID, err := s.provisionGameAccount(ctx, username, password, info.Email)
	if err != nil && !errors.Is(err, repository.ErrDuplicateUsername) {
		return nil, err
	}
	if errors.Is(err, repository.ErrDuplicateUsername) {
		// The random suffix collided; extraordinarily unlikely. Continue
		// without a linked account rather than failing the login.
		s.logger.Error("game username collision during google provisioning",
			zap.String("username", username))
		gameID = nil
	}

	nickname := info.Name
	if nickname == "" {
		nickname = info.Email
	}
	firstName := info.GivenName
	if firstName == "" {
		firstName = "User"
	}

	s.sendWelcome(info.Email, firstName, username, password)

	role := models.RoleUser
	if s.admins.IsAdminEmail(info.Email) {
		role = models.RoleAdmin
	}

	user := &models.UserAccount{
		Nickname:     nickname,
		FirstName:    firstName,
		LastName:     info.FamilyName,
		Email:        info.Email,
		PasswordHash: "",
		Role:         role,
		GameID:       gameID,
		AvatarURL:    info.Picture,
		CreatedAt:    time.Now().Unix(),
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.publishAccountEvent(events.UserRegistered, events.UserRegisteredEvent{
		UserID:   id.Hex(),
		Email:    user.Email,
		Nickname: user.Nickname,
		GameID:   gameID,
	})

	return user, nil
}

// UpdateProfile applies a partial update and responds with the merged view.
// The response merges the supplied fields over the pre-update record; there
// is no re-read after the write.
func (s *AccountCommandService) UpdateProfile(ctx context.Context, cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
	id, err := primitive.ObjectIDFromHex(cmd.UserID)
	if err != nil {
		return nil, ErrMalformedUserID
	}

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	emailChanged := cmd.Email != nil && *cmd.Email != current.Email
	if emailChanged {
		existing, err := s.users.GetByEmail(ctx, *cmd.Email)
		if err == nil && existing.ID != current.ID {
			return nil, repository.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	fields := bson.M{}
	if cmd.Email != nil {
		fields["email"] = *cmd.Email
	}
	if cmd.FirstName != nil {
		fields["firstName"] = *cmd.FirstName
	}
	if cmd.LastName != nil {
		fields["lastName"] = *cmd.LastName
	}
	if cmd.AvatarURL != nil {
		fields["avatarUrl"] = *cmd.AvatarURL
	}
	if cmd.Nickname != nil {
		fields["nickname"] = *cmd.Nickname
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	if emailChanged && current.GameID != nil {
		// Best-effort propagation to the game-account store. On failure the
		// two stores diverge until someone reconciles them by hand.
		if err := s.games.UpdateEmail(ctx, *current.GameID, *cmd.Email); err != nil {
			s.logger.Error("failed to propagate email to game account",
				zap.String("userId", cmd.UserID),
				zap.Uint32("gameId", *current.GameID),
				zap.Error(err))
		}
	}

	s.publishAccountEvent(events.ProfileUpdated, events.ProfileUpdatedEvent{
		UserID:       cmd.UserID,
		EmailChanged: emailChanged,
	})

	merged := *current
	if cmd.Email != nil {
		merged.Email = *cmd.Email
	}
	if cmd.FirstName != nil {
		merged.FirstName = *cmd.FirstName
	}
	if cmd.LastName != nil {
		merged.LastName = *cmd.LastName
	}
	if cmd.AvatarURL != nil {
		merged.AvatarURL = *cmd.AvatarURL
	}
	if cmd.Nickname != nil {
		merged.Nickname = *cmd.Nickname
	}
	return models.NewProfileView(&merged), nil
}

// PutConfig overwrites the server-configuration singleton, last writer wins.
func (s *AccountCommandService) PutConfig(ctx context.Context, cmd cqrs.PutConfigCommand) (*models.ServerConfig, error) {
	cfg := cmd.Config
	if err := s.configs.Put(ctx, &cfg); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(context.Background(), events.ConfigEventsStream, events.ConfigUpdated, events.ConfigUpdatedEvent{
		ServerName: cfg.ServerName,
		UpdatedBy:  cmd.UpdatedBy,
	}); err != nil {
		s.logger.Warn("failed to publish config.updated event", zap.Error(err))
	}

	return &cfg, nil
}

// provisionGameAccount is the secondary half of the dual-write. It computes
// the legacy digest and inserts the account row, then classifies the
// outcome: a duplicate username is a conflict the caller must surface, any
// other failure is swallowed after logging and the signup continues without
// a linked account.
func (s *AccountCommandService) provisionGameAccount(ctx context.Context, username, password, email string) (*uint32, error) {
	digest := utils.GameCredentialDigest(username, password)

	id, err := s.games.Create(ctx, username, digest, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, err
		}
		s.logger.Error("failed to create game account, continuing without one",
			zap.String("username", username), zap.Error(err))
		return nil, nil
	}

	s.publishAccountEvent(events.GameAccountProvisioned, events.GameAccountProvisionedEvent{
		AccountID: id,
		Username:  username,
		Email:     email,
	})

	return &id, nil
}

func (s *AccountCommandService) sendWelcome(to, nickname, username, password string) {
	if err := s.mailer.SendWelcome(to, nickname, username, password); err != nil {
		s.logger.Warn("failed to send welcome mail",
			zap.String("to", to), zap.Error(err))
	}
}

func (s *AccountCommandService) publishAccountEvent(eventType string, data any) {
	if err := s.publisher.Publish(context.Background(), events.AccountEventsStream, eventType, data); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("type", eventType), zap.Error(err))
	}
}
