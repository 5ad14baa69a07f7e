package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
)

// AuthService validates access tokens issued by the identity service and
// mints short-lived service tokens for upstream calls.
type AuthService struct {
	secret     []byte
	expiration time.Duration
}

// NewAuthService constructs the service.
func NewAuthService(secret string, expiration time.Duration) *AuthService {
	if expiration <= 0 {
		expiration = 15 * time.Minute
	}
	return &AuthService{secret: []byte(secret), expiration: expiration}
}

// ValidateToken parses and verifies an HS256 access token.
func (s *AuthService) ValidateToken(raw string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}

// IssueServiceToken mints a department-admin token for calls to the schedule
// service.
func (s *AuthService) IssueServiceToken() (string, error) {
	now := time.Now()
	claims := models.JWTClaims{
		Role: models.RoleDepartmentAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	return signed, nil
}
