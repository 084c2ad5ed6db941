package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/AndersondSilva/wow-server-dashboard/internal/command"
	"github.com/AndersondSilva/wow-server-dashboard/internal/cqrs"
	"github.com/AndersondSilva/wow-server-dashboard/internal/middleware"
	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	"github.com/AndersondSilva/wow-server-dashboard/internal/repository"
	"github.com/gin-gonic/gin"
)

// ProfileCommander defines the write-side operations used by AccountHandler.
type ProfileCommander interface {
	UpdateProfile(ctx context.Context, cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	CheckUsername(ctx context.Context, q cqrs.CheckUsernameQuery) (bool, error)
	ListCharacters(ctx context.Context, q cqrs.ListCharactersQuery) ([]models.Character, error)
}

// AccountHandler serves profile updates, username availability and the
// diagnostic character listing.
type AccountHandler struct {
	commands ProfileCommander
	queries  AccountQuerier
}

type UpdateProfileRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
	Nickname  *string `json:"nickname"`
}

type CheckUsernameRequest struct {
	Username string `json:"username" validate:"required"`
}

type CheckUsernameResponse struct {
	Available bool `json:"available"`
}

func NewAccountHandler(commands ProfileCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Missing token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.UpdateProfile(c.Request.Context(), cqrs.UpdateProfileCommand{
		UserID:    userID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
		Nickname:  req.Nickname,
	})
	if err != nil {
		switch {
		case errors.Is(err, command.ErrMalformedUserID):
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid user ID")
		case errors.Is(err, repository.ErrDuplicateEmail):
			middleware.RespondWithError(c, http.StatusConflict, "Email already exists")
		case errors.Is(err, repository.ErrNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) CheckUsername(c *gin.Context) {
	var req CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	available, err := h.queries.CheckUsername(c.Request.Context(), cqrs.CheckUsernameQuery{
		Username: req.Username,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to check username")
		return
	}

	c.JSON(http.StatusOK, CheckUsernameResponse{Available: available})
}

func (h *AccountHandler) ListCharacters(c *gin.Context) {
	characters, err := h.queries.ListCharacters(c.Request.Context(), cqrs.ListCharactersQuery{})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list characters")
		return
	}

	c.JSON(http.StatusOK, characters)
}
