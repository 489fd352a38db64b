package middleware

import (
	"net/http"
	"strings"

	"roomledger/internal/domain/booking"
	"roomledger/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	guestNameKey  = "guest_name"
	guestEmailKey = "guest_email"
)

type IdentityMiddleware struct {
	jwtService *jwt.Service
}

func NewIdentityMiddleware(jwtService *jwt.Service) *IdentityMiddleware {
	return &IdentityMiddleware{jwtService: jwtService}
}

// ExtractGuest reads an optional bearer token and attaches the guest
// identity to the request context. A missing token is fine (walk-in
// bookings carry guest fields in the body); a present but invalid one
// is rejected so spoofed identities never reach the admission path.
func (m *IdentityMiddleware) ExtractGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid authorization header"}})
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid or expired token"}})
			return
		}

		c.Set(guestNameKey, claims.Name)
		c.Set(guestEmailKey, claims.Email)
		c.Next()
	}
}

// GuestFromContext returns the token-derived identity, if any.
func GuestFromContext(c *gin.Context) (booking.Guest, bool) {
	name := c.GetString(guestNameKey)
	email := c.GetString(guestEmailKey)
	if name == "" && email == "" {
		return booking.Guest{}, false
	}
	return booking.NewGuest(name, email), true
}
