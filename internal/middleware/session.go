package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/utils"
)

const userContextKey = "currentUser"

// UserLookup resolves a user by the open id carried in a session token.
type UserLookup interface {
	GetUserByOpenID(ctx context.Context, openID string) (*models.User, error)
}

// Session loads the caller from an optional bearer token. Requests without a
// usable token (missing, malformed, expired or signed with another key)
// continue anonymously; admin procedures then refuse them.
func Session(secret string, users UserLookup) fiber.Handler {
	log := logging.For("session")

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Debug("ignoring non-bearer authorization header")
			return c.Next()
		}

		openID, err := utils.ParseToken(secret, parts[1])
		if err != nil {
			log.WithError(err).Debug("ignoring invalid session token")
			return c.Next()
		}

		user, err := users.GetUserByOpenID(c.UserContext(), openID)
		if err != nil {
			log.WithError(err).WithField("open_id", openID).Error("load session user")
			return err
		}
		if user != nil {
			c.Locals(userContextKey, user)
		}

		return c.Next()
	}
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userContextKey).(*models.User)
	return user, ok && user != nil
}

// Caller builds the procedure caller from the request.
func Caller(c *fiber.Ctx) rpc.Caller {
	user, _ := CurrentUser(c)
	return rpc.Caller{User: user}
}
