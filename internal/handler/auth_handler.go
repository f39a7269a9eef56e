package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/dto"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/response"
)

type authenticator interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	service authenticator
}

// NewAuthHandler builds a new handler.
func NewAuthHandler(service authenticator) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary Register a student account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid register payload"))
		return
	}
	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login godoc
// @Summary Log in to an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
