package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Account roles stored on UserAccount and carried in session tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// WotLK. Every provisioned game account gets this expansion.
const DefaultExpansion = 2

// UserAccount is the dashboard user document stored in MongoDB.
// PasswordHash is empty for accounts that only authenticate via Google.
type UserAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nickname     string             `bson:"nickname" json:"nickname"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	GameID       *uint32            `bson:"gameId,omitempty" json:"gameId,omitempty"`
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt    int64              `bson:"created_at" json:"createdAt"`
}

// GameAccount is a row in the game server's `account` table. The game server
// owns this schema; usernames are stored upper-cased and ShaPassHash is the
// legacy SHA1 digest, lowercase hex.
type GameAccount struct {
	ID          uint32 `json:"id"`
	Username    string `json:"username"`
	ShaPassHash string `json:"-"`
	Email       string `json:"email"`
	Expansion   uint8  `json:"expansion"`
}

// Character is the diagnostic projection of a `characters` row.
type Character struct {
	Name  string `json:"name"`
	Race  uint8  `json:"race"`
	Class uint8  `json:"class"`
	Level uint8  `json:"level"`
}

// ServerConfig is the singleton server-configuration document.
type ServerConfig struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ServerName string             `bson:"serverName" json:"serverName"`
	Realmlist  string             `bson:"realmlist" json:"realmlist"`
	Expansion  string             `bson:"expansion" json:"expansion"`
	XPRate     float64            `bson:"xpRate" json:"xpRate"`
	DropRate   float64            `bson:"dropRate" json:"dropRate"`
	GoldRate   float64            `bson:"goldRate" json:"goldRate"`
	RepRate    float64            `bson:"repRate" json:"repRate"`
	Motd       string             `bson:"motd,omitempty" json:"motd,omitempty"`
}

// DefaultServerConfig is what GET /admin/config returns before an admin has
// ever saved a configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerName: "Aethelgard",
		Realmlist:  "game.aethelgard-wow.com",
		Expansion:  "WotLK",
		XPRate:     1,
		DropRate:   1,
		GoldRate:   1,
		RepRate:    1,
	}
}
