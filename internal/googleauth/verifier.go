package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const defaultEndpoint = "https://oauth2.googleapis.com/tokeninfo"

var (
	// ErrUnreachable means the introspection endpoint could not be
	// contacted at all. Maps to 400: the request could not be validated.
	ErrUnreachable = errors.New("failed to contact identity provider")
	// ErrInvalidToken means the provider rejected the token. Maps to 401.
	ErrInvalidToken = errors.New("invalid identity token")
)

// TokenInfo is the subset of the tokeninfo response the dashboard uses.
type TokenInfo struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Picture    string `json:"picture"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Verifier validates Google ID tokens against the tokeninfo endpoint. The
// endpoint is an opaque oracle: any non-success answer means the token is
// bad, any transport failure means we could not ask.
type Verifier struct {
	endpoint string
	client   *http.Client
}

func NewVerifier() *Verifier {
	return &Verifier{
		endpoint: defaultEndpoint,
		client:   &http.Client{},
	}
}

// NewVerifierWithEndpoint is used by tests to point at a fake provider.
func NewVerifierWithEndpoint(endpoint string) *Verifier {
	return &Verifier{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

// Verify introspects an ID token and returns the validated identity.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*TokenInfo, error) {
	reqURL := v.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrInvalidToken
	}

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to parse tokeninfo response: %w", err)
	}
	return &info, nil
}
