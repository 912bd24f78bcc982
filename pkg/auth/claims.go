package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the only actor role the panel knows about.
const AdminRole = "admin"

// AdminTokenClaims represents the typed JWT issued to the admin panel after a
// successful password check.
type AdminTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
