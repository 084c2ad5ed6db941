package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/AndersondSilva/wow-server-dashboard/internal/command"
	"github.com/AndersondSilva/wow-server-dashboard/internal/cqrs"
	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	"github.com/AndersondSilva/wow-server-dashboard/internal/repository"
	"github.com/gin-gonic/gin"
)

// ---- mock implementations ----

type mockProfileCommander struct {
	updateProfileFn func(cqrs.UpdateProfileCommand) (*models.ProfileView, error)
}

func (m *mockProfileCommander) UpdateProfile(_ context.Context, cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockAccountQuerier struct {
	checkUsernameFn  func(cqrs.CheckUsernameQuery) (bool, error)
	listCharactersFn func(cqrs.ListCharactersQuery) ([]models.Character, error)
}

func (m *mockAccountQuerier) CheckUsername(_ context.Context, q cqrs.CheckUsernameQuery) (bool, error) {
	if m.checkUsernameFn != nil {
		return m.checkUsernameFn(q)
	}
	return false, fmt.Errorf("not configured")
}
func (m *mockAccountQuerier) ListCharacters(_ context.Context, q cqrs.ListCharactersQuery) ([]models.Character, error) {
	if m.listCharactersFn != nil {
		return m.listCharactersFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helper ----

func newAccountTestRouter(cmds ProfileCommander, qrys AccountQuerier, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAccountHandler(cmds, qrys)
	api := r.Group("/api")
	api.PUT("/auth/profile", func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		h.UpdateProfile(c)
	})
	api.POST("/auth/check-username", h.CheckUsername)
	api.GET("/characters", h.ListCharacters)
	return r
}

// ---- tests ----

func TestUpdateProfile(t *testing.T) {
	tests := []struct {
		name            string
		userID          string
		body            interface{}
		updateProfileFn func(cqrs.UpdateProfileCommand) (*models.ProfileView, error)
		expectedStatus  int
	}{
		{
			name:   "success - partial update",
			userID: "65a1b2c3d4e5f60718293a4b",
			body:   map[string]string{"firstName": "New"},
			updateProfileFn: func(cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
				if cmd.FirstName == nil || *cmd.FirstName != "New" {
					t.Errorf("firstName not forwarded: %+v", cmd)
				}
				if cmd.Email != nil {
					t.Errorf("expected untouched email to stay nil")
				}
				return testProfile(), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "success - empty body is a no-op update",
			userID: "65a1b2c3d4e5f60718293a4b",
			body:   map[string]string{},
			updateProfileFn: func(cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
				return testProfile(), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthorised - no user in context",
			userID:         "",
			body:           map[string]string{"firstName": "New"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bad request - invalid email format",
			userID:         "65a1b2c3d4e5f60718293a4b",
			body:           map[string]string{"email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "bad request - malformed user id",
			userID: "not-a-hex-id",
			body:   map[string]string{"firstName": "New"},
			updateProfileFn: func(cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
				return nil, command.ErrMalformedUserID
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "conflict - email already taken",
			userID: "65a1b2c3d4e5f60718293a4b",
			body:   map[string]string{"email": "taken@example.com"},
			updateProfileFn: func(cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
				return nil, repository.ErrDuplicateEmail
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "not found - user vanished",
			userID: "65a1b2c3d4e5f60718293a4b",
			body:   map[string]string{"firstName": "New"},
			updateProfileFn: func(cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
				return nil, repository.ErrNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "internal error - store failure",
			userID: "65a1b2c3d4e5f60718293a4b",
			body:   map[string]string{"firstName": "New"},
			updateProfileFn: func(cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
				return nil, fmt.Errorf("mongo down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockProfileCommander{updateProfileFn: tt.updateProfileFn}, &mockAccountQuerier{}, tt.userID)
			w := doRequest(router, http.MethodPut, "/api/auth/profile", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCheckUsername(t *testing.T) {
	tests := []struct {
		name              string
		body              interface{}
		checkUsernameFn   func(cqrs.CheckUsernameQuery) (bool, error)
		expectedStatus    int
		expectedAvailable *bool
	}{
		{
			name: "available username",
			body: map[string]string{"username": "NEWHERO"},
			checkUsernameFn: func(q cqrs.CheckUsernameQuery) (bool, error) {
				return true, nil
			},
			expectedStatus:    http.StatusOK,
			expectedAvailable: boolPtr(true),
		},
		{
			name: "taken username",
			body: map[string]string{"username": "HERO"},
			checkUsernameFn: func(q cqrs.CheckUsernameQuery) (bool, error) {
				return false, nil
			},
			expectedStatus:    http.StatusOK,
			expectedAvailable: boolPtr(false),
		},
		{
			name:           "bad request - missing username",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "internal error - auth db failure",
			body: map[string]string{"username": "HERO"},
			checkUsernameFn: func(q cqrs.CheckUsernameQuery) (bool, error) {
				return false, fmt.Errorf("mysql down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockProfileCommander{}, &mockAccountQuerier{checkUsernameFn: tt.checkUsernameFn}, "")
			w := doRequest(router, http.MethodPost, "/api/auth/check-username", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedAvailable != nil {
				var resp CheckUsernameResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to parse response: %v", err)
				}
				if resp.Available != *tt.expectedAvailable {
					t.Errorf("available = %v, want %v", resp.Available, *tt.expectedAvailable)
				}
			}
		})
	}
}

func TestListCharacters(t *testing.T) {
	tests := []struct {
		name             string
		listCharactersFn func(cqrs.ListCharactersQuery) ([]models.Character, error)
		expectedStatus   int
		expectedCount    int
	}{
		{
			name: "success - returns roster",
			listCharactersFn: func(q cqrs.ListCharactersQuery) ([]models.Character, error) {
				return []models.Character{
					{Name: "Thrall", Race: 2, Class: 7, Level: 80},
					{Name: "Jaina", Race: 1, Class: 8, Level: 74},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "success - empty roster",
			listCharactersFn: func(q cqrs.ListCharactersQuery) ([]models.Character, error) {
				return []models.Character{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name: "internal error - characters db failure",
			listCharactersFn: func(q cqrs.ListCharactersQuery) ([]models.Character, error) {
				return nil, fmt.Errorf("mysql down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockProfileCommander{}, &mockAccountQuerier{listCharactersFn: tt.listCharactersFn}, "")
			w := doRequest(router, http.MethodGet, "/api/characters", nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var chars []models.Character
				if err := json.Unmarshal(w.Body.Bytes(), &chars); err != nil {
					t.Fatalf("failed to parse response: %v", err)
				}
				if len(chars) != tt.expectedCount {
					t.Errorf("got %d characters, want %d", len(chars), tt.expectedCount)
				}
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }
