package handlers

import (
	"strconv"

	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/recipe"
	"foodgram-backend/pkg/relation"
	"foodgram-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
		SendShoppingCart(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService   recipe.RecipeService
		relationService relation.RelationService
		userService     user.UserService
		validator       *validator.Validate
	}
)

func NewRecipeHandler(
	recipeService recipe.RecipeService,
	relationService relation.RelationService,
	userService user.UserService,
	validator *validator.Validate,
) RecipeHandler {
	return &recipeHandler{
		recipeService:   recipeService,
		relationService: relationService,
		userService:     userService,
		validator:       validator,
	}
}

// recipeFilter reads the list query. Repeated "tags" (or "tags[]") values are
// all kept; a non-numeric author matches nobody.
func recipeFilter(c *fiber.Ctx) domain.RecipeFilter {
	page, limit := pageParams(c)
	filter := domain.RecipeFilter{
		IsFavorited:      domain.ParseFlag(c.Query("is_favorited")),
		IsInShoppingCart: domain.ParseFlag(c.Query("is_in_shopping_cart")),
		Page:             page,
		Limit:            limit,
	}

	args := c.Context().QueryArgs()
	for _, key := range []string{"tags", "tags[]"} {
		for _, slug := range args.PeekMulti(key) {
			if len(slug) > 0 {
				filter.Tags = append(filter.Tags, string(slug))
			}
		}
	}

	if raw := c.Query("author"); raw != "" {
		var author uint
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			author = uint(id)
		}
		filter.AuthorID = &author
	}
	return filter
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipes(c.UserContext(), recipeFilter(c), middleware.Viewer(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
	}

	res, err := h.recipeService.GetRecipe(c.UserContext(), id, middleware.Viewer(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), *req, actor(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateRecipe, domain.ErrRecipeNotFound)
	}

	req := new(domain.UpdateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.UserContext(), id, *req, actor(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteRecipe, domain.ErrRecipeNotFound)
	}

	if err := h.recipeService.DeleteRecipe(c.UserContext(), id, actor(c)); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteRecipe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// addRelation runs the add side of a recipe toggle and answers with the short
// recipe representation.
func (h *recipeHandler) addRelation(c *fiber.Ctx, rel relation.Relation, failed, success string) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, failed, domain.ErrRecipeNotFound)
	}

	ctx := c.UserContext()
	if err := h.relationService.Add(ctx, rel, currentUserID(c), id); err != nil {
		return presenters.ServiceErrorResponse(c, failed, err)
	}

	res, err := h.recipeService.GetShortRecipe(ctx, id)
	if err != nil {
		return presenters.ServiceErrorResponse(c, failed, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, success)
}

func (h *recipeHandler) removeRelation(c *fiber.Ctx, rel relation.Relation, failed string) error {
	id, err := paramID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, failed, domain.ErrRecipeNotFound)
	}

	if err := h.relationService.Remove(c.UserContext(), rel, currentUserID(c), id); err != nil {
		return presenters.ServiceErrorResponse(c, failed, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	return h.addRelation(c, relation.Favorite, domain.MessageFailedAddFavorite, domain.MessageSuccessAddFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.removeRelation(c, relation.Favorite, domain.MessageFailedRemoveFavorite)
}

func (h *recipeHandler) AddToShoppingCart(c *fiber.Ctx) error {
	return h.addRelation(c, relation.ShoppingCart, domain.MessageFailedAddCart, domain.MessageSuccessAddCart)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	return h.removeRelation(c, relation.ShoppingCart, domain.MessageFailedRemoveCart)
}

func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	content, err := h.recipeService.DownloadShoppingCart(c.UserContext(), currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDownloadCart, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+domain.ShoppingCartFilename)
	return c.Status(fiber.StatusOK).Send(content)
}

func (h *recipeHandler) SendShoppingCart(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	me, err := h.userService.Me(ctx, userID)
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedSendCart, err)
	}
	if err := h.recipeService.SendShoppingCart(ctx, userID, me.Email); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedSendCart, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendCart)
}
