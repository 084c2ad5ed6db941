package utils

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratedPasswordLength is the length of passwords generated for accounts
// created without one (Google signups and passwordless manual signups).
const GeneratedPasswordLength = 10

// HashPassword hashes a dashboard password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword checks if a dashboard password matches a bcrypt hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GameCredentialDigest computes the legacy game-server digest:
// SHA1(UPPER(username) + ":" + UPPER(password)), lowercase hex.
//
// The game server authenticates clients against this exact value, so the
// case-folding, the separator and the hex casing must never change.
func GameCredentialDigest(username, password string) string {
	toHash := strings.ToUpper(username) + ":" + strings.ToUpper(password)
	sum := sha1.Sum([]byte(toHash))
	return hex.EncodeToString(sum[:])
}

// GeneratePassword returns a crypto-random alphanumeric password for
// accounts created without one.
func GeneratePassword() string {
	return randomAlphanumeric(GeneratedPasswordLength)
}

// DeriveGameUsername derives the game username for a manual signup from the
// chosen nickname. The game server stores usernames upper-cased.
func DeriveGameUsername(nickname string) string {
	return strings.ToUpper(nickname)
}

// GameUsernameFromEmail synthesizes a game username for a provider-created
// account: the email's local part stripped to alphanumerics, plus a 4-char
// random suffix to dodge collisions, upper-folded.
func GameUsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	prefix := b.String()
	if prefix == "" {
		prefix = "Player"
	}
	return strings.ToUpper(prefix + randomAlphanumeric(4))
}

// DefaultAvatarURL returns the fallback avatar for users who did not supply
// one, seeded on the display name.
func DefaultAvatarURL(seed string) string {
	var b strings.Builder
	for _, r := range seed {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return "https://api.dicebear.com/7.x/adventurer/svg?seed=" + b.String() + "&size=64"
}

func randomAlphanumeric(length int) string {
	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(alphanumeric))))
		result[i] = alphanumeric[num.Int64()]
	}
	return string(result)
}
