package rpc

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mataam/internal/store"
)

// CallerFunc resolves the caller of a request, typically from Locals set by
// the session middleware.
type CallerFunc func(c *fiber.Ctx) Caller

// Mount exposes the router under group: GET /<procedure>?input=<json> for
// queries and POST /<procedure> with a JSON body for mutations.
func (r *Router) Mount(group fiber.Router, callerOf CallerFunc) {
	group.Get("/*", r.handle(KindQuery, callerOf))
	group.Post("/*", r.handle(KindMutation, callerOf))
}

func (r *Router) handle(kind Kind, callerOf CallerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("*"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid procedure name")
		}

		var raw []byte
		if kind == KindQuery {
			raw = []byte(c.Query("input"))
		} else {
			raw = c.Body()
		}

		out, err := r.Call(c.UserContext(), kind, name, callerOf(c), raw)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    out,
		})
	}
}

// ErrorHandler renders errors in the response envelope with a status code
// matching the error kind.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusForbidden
	case IsValidation(err):
		return fiber.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, errUnknownProcedure):
		return fiber.StatusNotFound
	case errors.Is(err, errWrongMethod):
		return fiber.StatusMethodNotAllowed
	default:
		return fiber.StatusInternalServerError
	}
}
