package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/AndersondSilva/wow-server-dashboard/internal/cqrs"
	"github.com/AndersondSilva/wow-server-dashboard/internal/googleauth"
	"github.com/AndersondSilva/wow-server-dashboard/internal/middleware"
	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	"github.com/AndersondSilva/wow-server-dashboard/internal/query"
	"github.com/AndersondSilva/wow-server-dashboard/internal/repository"
	"github.com/gin-gonic/gin"
)

// AuthCommander defines the write-side operations used by AuthHandler.
type AuthCommander interface {
	Signup(ctx context.Context, cmd cqrs.SignupCommand) (*models.ProfileView, error)
	GoogleLogin(ctx context.Context, cmd cqrs.GoogleLoginCommand) (*models.LoginResult, error)
}

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(ctx context.Context, cmd cqrs.LoginCommand) (*models.LoginResult, error)
	GameLogin(ctx context.Context, cmd cqrs.GameLoginCommand) (*models.GameLoginResult, error)
	Profile(ctx context.Context, q cqrs.GetProfileQuery) (*models.ProfileView, error)
}

// AuthHandler serves signup, the three login variants and session
// introspection.
type AuthHandler struct {
	commands AuthCommander
	queries  AuthQuerier
}

type SignupRequest struct {
	Nickname  string `json:"nickname" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type GameLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(commands AuthCommander, queries AuthQuerier) *AuthHandler {
	return &AuthHandler{commands: commands, queries: queries}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.Signup(c.Request.Context(), cqrs.SignupCommand{
		Nickname:  req.Nickname,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			middleware.RespondWithError(c, http.StatusConflict, "Email already exists")
		case errors.Is(err, repository.ErrDuplicateUsername):
			middleware.RespondWithError(c, http.StatusConflict, "Game username already exists")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, query.ErrInvalidCredentials) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.commands.GoogleLogin(c.Request.Context(), cqrs.GoogleLoginCommand{
		IDToken: req.Token,
	})
	if err != nil {
		switch {
		case errors.Is(err, googleauth.ErrUnreachable):
			middleware.RespondWithError(c, http.StatusBadRequest, "Failed to contact identity provider")
		case errors.Is(err, googleauth.ErrInvalidToken):
			middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid Google token")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Google login failed")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) GameLogin(c *gin.Context) {
	var req GameLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result, err := h.queries.GameLogin(c.Request.Context(), cqrs.GameLoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, query.ErrInvalidCredentials) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Game login failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me resolves the bearer token set by AuthMiddleware to a sanitized profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Missing token")
		return
	}

	view, err := h.queries.Profile(c.Request.Context(), cqrs.GetProfileQuery{UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, query.ErrMalformedUserID):
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid user ID")
		case errors.Is(err, repository.ErrNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
