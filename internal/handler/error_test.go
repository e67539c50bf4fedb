package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relengar/shopping-list-server/internal/apperr"
)

func testApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, errorBody) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))

	return resp.StatusCode, body
}

func TestErrorHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bad request", apperr.BadRequest("Invalid input"), http.StatusBadRequest, "Invalid input"},
		{"invalid token", apperr.InvalidToken(), http.StatusBadRequest, "Invalid token"},
		{"unauthorized", apperr.Unauthorized("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", apperr.Forbidden("Can't access this shopping list"), http.StatusForbidden, "Can't access this shopping list"},
		{"not found", apperr.NotFound("Shopping list not found"), http.StatusNotFound, "Shopping list not found"},
		{"conflict", apperr.Conflict("List already shared"), http.StatusConflict, "List already shared"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, testApp(tc.err))

			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body.Message)
			assert.Equal(t, strconv.Itoa(tc.status), body.Code)
		})
	}
}

func TestErrorHandlerInternalHidesCause(t *testing.T) {
	status, body := doRequest(t, testApp(apperr.Internal(errors.New("pq: connection refused"))))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, "500", body.Code)
	assert.NotContains(t, body.Message, "pq:")
}

func TestErrorHandlerUnknownError(t *testing.T) {
	status, body := doRequest(t, testApp(errors.New("something odd")))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestErrorHandlerRouteNotFound(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
