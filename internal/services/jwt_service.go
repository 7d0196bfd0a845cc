package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AdelereKehinde/Estate-management/internal/config"
	"github.com/AdelereKehinde/Estate-management/internal/middleware"
	"github.com/AdelereKehinde/Estate-management/internal/models"
)

// JWTService signs HS256 access tokens; middleware.ValidateToken checks
// them with the same secret and issuer.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret: cfg.JWTSecret,
		issuer: cfg.JWTIssuer,
		ttl:    cfg.AccessTokenTTL,
		now:    time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(u *models.User) (string, error) {
	now := j.now()
	claims := middleware.Claims{
		Role:  u.Role,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}
