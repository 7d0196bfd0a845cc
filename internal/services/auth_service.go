package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AdelereKehinde/Estate-management/internal/constants"
	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type AuthService struct {
	store repositories.Store
	jwt   *JWTService
}

func NewAuthService(store repositories.Store, jwtSvc *JWTService) *AuthService {
	return &AuthService{store: store, jwt: jwtSvc}
}

// Register creates a user and signs them in. Role defaults to admin.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (*dtos.TokenResponse, error) {
	existing, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.InternalError("Failed to check email", err)
	}
	if existing != nil {
		return nil, badRequestConflict("Email already registered", nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.InternalError("Failed to hash password", err)
	}
	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	u := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return nil, badRequestConflict("Email already registered", err)
		}
		return nil, utils.InternalError("Failed to create user", err)
	}

	utils.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("User registered")
	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.TokenResponse, error) {
	u, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.InternalError("Failed to load user", err)
	}
	if u == nil || !utils.CheckPasswordHash(req.Password, u.PasswordHash) {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeInvalidCredentials,
			Message:    "Invalid credentials",
		}
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *models.User) (*dtos.TokenResponse, error) {
	tok, err := s.jwt.GenerateAccessToken(u)
	if err != nil {
		return nil, utils.InternalError("Failed to sign token", err)
	}
	return &dtos.TokenResponse{AccessToken: tok, TokenType: constants.TokenType}, nil
}
