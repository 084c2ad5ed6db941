package handler

import (
	"context"
	"net/http"

	"github.com/AndersondSilva/wow-server-dashboard/internal/cqrs"
	"github.com/AndersondSilva/wow-server-dashboard/internal/middleware"
	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	"github.com/gin-gonic/gin"
)

// ConfigCommander defines the write-side operations used by AdminHandler.
type ConfigCommander interface {
	PutConfig(ctx context.Context, cmd cqrs.PutConfigCommand) (*models.ServerConfig, error)
}

// ConfigQuerier defines the read-side operations used by AdminHandler.
type ConfigQuerier interface {
	GetConfig(ctx context.Context) (*models.ServerConfig, error)
}

// AdminHandler serves the server-configuration singleton. Reads are public
// (the dashboard shows rates to everyone); writes are gated on the admin
// role by middleware.
type AdminHandler struct {
	commands ConfigCommander
	queries  ConfigQuerier
}

type UpdateConfigRequest struct {
	ServerName string  `json:"serverName" validate:"required"`
	Realmlist  string  `json:"realmlist" validate:"required"`
	Expansion  string  `json:"expansion" validate:"required"`
	XPRate     float64 `json:"xpRate" validate:"gte=0"`
	DropRate   float64 `json:"dropRate" validate:"gte=0"`
	GoldRate   float64 `json:"goldRate" validate:"gte=0"`
	RepRate    float64 `json:"repRate" validate:"gte=0"`
	Motd       string  `json:"motd"`
}

func NewAdminHandler(commands ConfigCommander, queries ConfigQuerier) *AdminHandler {
	return &AdminHandler{commands: commands, queries: queries}
}

func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.queries.GetConfig(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to load config")
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Missing token")
		return
	}

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	cfg, err := h.commands.PutConfig(c.Request.Context(), cqrs.PutConfigCommand{
		Config: models.ServerConfig{
			ServerName: req.ServerName,
			Realmlist:  req.Realmlist,
			Expansion:  req.Expansion,
			XPRate:     req.XPRate,
			DropRate:   req.DropRate,
			GoldRate:   req.GoldRate,
			RepRate:    req.RepRate,
			Motd:       req.Motd,
		},
		UpdatedBy: userID,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to save config")
		return
	}

	c.JSON(http.StatusOK, cfg)
}
