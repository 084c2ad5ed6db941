package models

// ProfileView is the sanitized projection of a UserAccount returned by every
// dashboard endpoint. It never carries the password hash.
type ProfileView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Nickname  string  `json:"nickname"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	AvatarURL string  `json:"avatarUrl,omitempty"`
	IsAdmin   bool    `json:"isAdmin"`
	GameID    *uint32 `json:"gameId,omitempty"`
}

// NewProfileView builds the sanitized projection of a user document.
func NewProfileView(u *UserAccount) *ProfileView {
	return &ProfileView{
		ID:        u.ID.Hex(),
		Name:      u.Nickname,
		Nickname:  u.Nickname,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
		IsAdmin:   u.Role == RoleAdmin,
		GameID:    u.GameID,
	}
}

// GameAccountView is the game-client login projection. It is deliberately a
// distinct type from ProfileView: game logins never touch the dashboard user
// store and expose a different, smaller shape.
type GameAccountView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

// LoginResult is the response body for dashboard logins (password or Google).
type LoginResult struct {
	Token string       `json:"token"`
	User  *ProfileView `json:"user"`
}

// GameLoginResult is the response body for game-client logins.
type GameLoginResult struct {
	Token string           `json:"token"`
	User  *GameAccountView `json:"user"`
}
