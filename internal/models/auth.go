package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the available roles for the RBAC system. Role names
// match the identity service issuing the tokens.
type UserRole string

const (
	RoleStudent         UserRole = "siswa"
	RoleElementaryAdmin UserRole = "adminSD"
	RoleJuniorAdmin     UserRole = "adminSMP"
	RoleDepartmentAdmin UserRole = "adminDisdik"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   int64    `json:"user_id"`
	Role     UserRole `json:"role"`
	SchoolID *int64   `json:"sekolah_id,omitempty"`
	jwt.RegisteredClaims
}
