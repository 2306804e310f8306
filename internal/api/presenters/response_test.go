package presenters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrRelationExists, fiber.StatusBadRequest},
		{fmt.Errorf("add favorite: %w", domain.ErrRelationExists), fiber.StatusBadRequest},
		{domain.NewValidationError("cooking_time", "must be at least 1"), fiber.StatusBadRequest},
		{domain.ErrSelfFollow, fiber.StatusBadRequest},
		{domain.ErrRelationNotFound, fiber.StatusNotFound},
		{domain.ErrRecipeNotFound, fiber.StatusNotFound},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{errors.New("connection reset"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFromError(tc.err), tc.err.Error())
	}
}

func TestErrorResponseCarriesFieldErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ServiceErrorResponse(c, "failed", domain.NewValidationError("tags", "at least one tag is required"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var res Response
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Status)
	assert.Equal(t, []string{"at least one tag is required"}, res.Errors["tags"])
}
