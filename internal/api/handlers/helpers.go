package handlers

import (
	"strconv"

	"foodgram-backend/domain"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return uint(id), nil
}

// pageParams reads page and limit, falling back to page 1 and the configured
// page size.
func pageParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = utils.PageSize()
	}
	return page, limit
}

func actor(c *fiber.Ctx) domain.Actor {
	var id uint
	if viewer := middleware.Viewer(c); viewer != nil {
		id = *viewer
	}
	return domain.Actor{UserID: id, IsAdmin: middleware.IsAdmin(c)}
}

func currentUserID(c *fiber.Ctx) uint {
	return actor(c).UserID
}
