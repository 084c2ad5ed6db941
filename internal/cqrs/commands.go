package cqrs

import "github.com/AndersondSilva/wow-server-dashboard/internal/models"

// SignupCommand creates a dashboard user and, best effort, a linked game
// account. Password may be empty, in which case one is generated and mailed.
type SignupCommand struct {
	Nickname  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	AvatarURL string
}

// GoogleLoginCommand authenticates (and on first login provisions) a user
// from a Google ID token.
type GoogleLoginCommand struct {
	IDToken string
}

// UpdateProfileCommand applies a partial profile update. Nil fields are left
// untouched.
type UpdateProfileCommand struct {
	UserID    string
	Email     *string
	FirstName *string
	LastName  *string
	AvatarURL *string
	Nickname  *string
}

// PutConfigCommand overwrites the server-configuration singleton. UpdatedBy
// is the acting admin's user id, recorded on the emitted event.
type PutConfigCommand struct {
	Config    models.ServerConfig
	UpdatedBy string
}

// LoginCommand is a dashboard password login.
type LoginCommand struct {
	Email    string
	Password string
}

// GameLoginCommand is a game-client login with raw credentials, exactly as
// the game client would send them.
type GameLoginCommand struct {
	Username string
	Password string
}
