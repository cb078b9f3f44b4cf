package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/store"
)

type ratingInput struct {
	OrderID uint   `json:"order_id" validate:"required"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment"`
}

var (
	admin    = Caller{User: &models.User{OpenID: "a", Role: models.RoleAdmin}}
	customer = Caller{User: &models.User{OpenID: "c", Role: models.RoleUser}}
)

func newTestRouter(calls *int) *Router {
	r := NewRouter()
	Query(r, "things.get", func(ctx context.Context, caller Caller, id uint) (any, error) {
		*calls++
		return fiber.Map{"id": id}, nil
	}, Validate("required"))
	Query(r, "things.list", func(ctx context.Context, caller Caller, categoryID *uint) (any, error) {
		*calls++
		if categoryID == nil {
			return "all", nil
		}
		return fmt.Sprintf("category %d", *categoryID), nil
	})
	Mutation(r, "things.rate", func(ctx context.Context, caller Caller, in ratingInput) (any, error) {
		*calls++
		return in, nil
	})
	Mutation(r, "things.delete", func(ctx context.Context, caller Caller, id uint) (any, error) {
		*calls++
		return nil, nil
	}, AdminOnly(), Validate("required"))
	Mutation(r, "things.write", func(ctx context.Context, caller Caller, in Empty) (any, error) {
		*calls++
		return nil, store.ErrUnavailable
	})
	return r
}

func TestCall_AdminGateRunsBeforeValidation(t *testing.T) {
	calls := 0
	r := newTestRouter(&calls)
	ctx := context.Background()

	for _, raw := range []string{"", "7", `"not a number"`} {
		_, err := r.Call(ctx, KindMutation, "things.delete", customer, []byte(raw))
		assert.ErrorIs(t, err, ErrUnauthorized, "input %q", raw)

		_, err = r.Call(ctx, KindMutation, "things.delete", Caller{}, []byte(raw))
		assert.ErrorIs(t, err, ErrUnauthorized, "anonymous input %q", raw)
	}
	assert.Zero(t, calls)

	_, err := r.Call(ctx, KindMutation, "things.delete", admin, []byte("7"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCall_ValidationStopsBeforeBody(t *testing.T) {
	calls := 0
	r := newTestRouter(&calls)
	ctx := context.Background()

	tests := []struct {
		name string
		proc string
		kind Kind
		raw  string
		msg  string
	}{
		{"missing scalar", "things.get", KindQuery, "", "input is required"},
		{"zero id", "things.get", KindQuery, "0", "input is required"},
		{"wrong type", "things.get", KindQuery, `"x"`, "invalid input"},
		{"rating too high", "things.rate", KindMutation, `{"order_id":1,"rating":6}`, "rating must be at most 5"},
		{"rating too low", "things.rate", KindMutation, `{"order_id":1,"rating":0}`, "rating must be at least 1"},
		{"missing order", "things.rate", KindMutation, `{"rating":3}`, "order_id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Call(ctx, tt.kind, tt.proc, customer, []byte(tt.raw))
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
	assert.Zero(t, calls)
}

func TestCall_OptionalInput(t *testing.T) {
	calls := 0
	r := newTestRouter(&calls)

	out, err := r.Call(context.Background(), KindQuery, "things.list", Caller{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "all", out)

	out, err = r.Call(context.Background(), KindQuery, "things.list", Caller{}, []byte("3"))
	require.NoError(t, err)
	assert.Equal(t, "category 3", out)
}

func TestCall_UnknownAndWrongKind(t *testing.T) {
	calls := 0
	r := newTestRouter(&calls)

	_, err := r.Call(context.Background(), KindQuery, "nope.list", admin, nil)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))

	_, err = r.Call(context.Background(), KindQuery, "things.rate", admin, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, StatusCode(err))
}

func TestRegisterTwicePanics(t *testing.T) {
	r := NewRouter()
	fn := func(ctx context.Context, caller Caller, in Empty) (any, error) { return nil, nil }
	Query(r, "a.b", fn)
	assert.Panics(t, func() { Query(r, "a.b", fn) })
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusCode(ErrUnauthorized))
	assert.Equal(t, http.StatusBadRequest, StatusCode(Invalidf("bad")))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(fmt.Errorf("create: %w", store.ErrUnavailable)))
	assert.Equal(t, http.StatusTeapot, StatusCode(fiber.NewError(http.StatusTeapot, "tea")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestApp(r *Router, caller Caller) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	r.Mount(app.Group("/api/rpc"), func(*fiber.Ctx) Caller { return caller })
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return resp.StatusCode, env
}

func TestHTTP_QueryAndMutation(t *testing.T) {
	calls := 0
	app := newTestApp(newTestRouter(&calls), customer)

	code, env := do(t, app, httptest.NewRequest(http.MethodGet, "/api/rpc/things.get?input="+url.QueryEscape("42"), nil))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":42}`, string(env.Data))

	req := httptest.NewRequest(http.MethodPost, "/api/rpc/things.rate", strings.NewReader(`{"order_id":9,"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	code, env = do(t, app, req)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"order_id":9,"rating":5,"comment":""}`, string(env.Data))
}

func TestHTTP_ErrorEnvelope(t *testing.T) {
	calls := 0
	app := newTestApp(newTestRouter(&calls), customer)

	code, env := do(t, app, httptest.NewRequest(http.MethodPost, "/api/rpc/things.delete", strings.NewReader("1")))
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Unauthorized", env.Error)

	code, env = do(t, app, httptest.NewRequest(http.MethodPost, "/api/rpc/things.write", nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "database not available", env.Error)

	code, _ = do(t, app, httptest.NewRequest(http.MethodPost, "/api/rpc/things.get", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}
