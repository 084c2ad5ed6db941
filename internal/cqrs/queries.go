package cqrs

// GetProfileQuery resolves a session subject to a sanitized profile.
type GetProfileQuery struct {
	UserID string
}

// CheckUsernameQuery asks whether a game username (case-folded upper) is
// already taken.
type CheckUsernameQuery struct {
	Username string
}

// ListCharactersQuery fetches up to Limit character rows for diagnostics.
type ListCharactersQuery struct {
	Limit int
}
