package events

import "time"

// Event types
const (
	UserRegistered         = "user.registered"
	GameAccountProvisioned = "game_account.provisioned"
	ProfileUpdated         = "profile.updated"
	ConfigUpdated          = "config.updated"
)

// Stream names
const (
	AccountEventsStream = "account.events"
	ConfigEventsStream  = "config.events"
)

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// UserRegisteredEvent is emitted after a dashboard user document is created,
// whether by manual signup or first Google login. GameID is nil when the
// secondary game-account write did not succeed — consumers can use this to
// spot divergence between the two stores.
type UserRegisteredEvent struct {
	UserID   string  `json:"userId"`
	Email    string  `json:"email"`
	Nickname string  `json:"nickname"`
	GameID   *uint32 `json:"gameId,omitempty"`
}

// GameAccountProvisionedEvent is emitted after a successful insert into the
// game server's account table.
type GameAccountProvisionedEvent struct {
	AccountID uint32 `json:"accountId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// ProfileUpdatedEvent is emitted after a profile update. EmailChanged flags
// updates that had to be propagated to the game-account store.
type ProfileUpdatedEvent struct {
	UserID       string `json:"userId"`
	EmailChanged bool   `json:"emailChanged"`
}

// ConfigUpdatedEvent is emitted after the server-configuration singleton is
// overwritten.
type ConfigUpdatedEvent struct {
	ServerName string `json:"serverName"`
	UpdatedBy  string `json:"updatedBy"`
}
