package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/RolandoRobles12/registro-aviva-sub002/internal/domain"
)

const (
	// LocalUserID is the key to retrieve user_id from context
	LocalUserID = "user_id"
	// LocalUser is the key to retrieve the full user from context
	LocalUser = "user"
)

// UserRepository interface for token lookup
type UserRepository interface {
	GetByTokenHash(ctx context.Context, hash string) (*domain.User, error)
}

// Auth creates an authentication middleware using personal access tokens
func Auth(userRepo UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return domain.ErrUnauthorized
		}

		hash := hashToken(token)

		// Any lookup error returns 401 so callers can't probe for valid tokens
		user, err := userRepo.GetByTokenHash(c.Context(), hash)
		if err != nil {
			return domain.ErrUnauthorized
		}

		if !user.IsActive {
			return domain.ErrUnauthorized
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUser, user)

		return c.Next()
	}
}

// RequireReviewer allows only users whose role can review check-in photos.
// Must run after Auth.
func RequireReviewer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := GetUser(c)
		if err != nil {
			return err
		}

		if !user.Role.CanReview() {
			return domain.ErrForbidden
		}

		return c.Next()
	}
}

// extractBearerToken extracts token from Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// hashToken generates SHA-256 hash of an access token
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// GetUserID retrieves user_id from Fiber context
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(LocalUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// GetUser retrieves full user from Fiber context
func GetUser(c *fiber.Ctx) (*domain.User, error) {
	user, ok := c.Locals(LocalUser).(*domain.User)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
