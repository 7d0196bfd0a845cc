package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/services"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type AuthController struct {
	authService *services.AuthService
	validate    *validator.Validate
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{authService: s, validate: newValidator()}
}

// POST /auth/register
func (c *AuthController) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	resp, err := c.authService.Register(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	resp, err := c.authService.Login(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
