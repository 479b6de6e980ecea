package controller

import (
	"errors"

	"nexmind-be/internal/dto"
	"nexmind-be/internal/pkg/serverutils"
	"nexmind-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISuggestionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Accept(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	Run(ctx *fiber.Ctx) error
}

type suggestionController struct {
	suggestionService service.ISuggestionService
}

func NewSuggestionController(suggestionService service.ISuggestionService) ISuggestionController {
	return &suggestionController{
		suggestionService: suggestionService,
	}
}

func (c *suggestionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/suggestion/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("run", c.Run)
	h.Post(":id/accept", c.Accept)
	h.Post(":id/reject", c.Reject)
}

func (c *suggestionController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ListSuggestionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.suggestionService.List(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list suggestions", res))
}

func (c *suggestionController) Accept(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid suggestion id")
	}

	res, err := c.suggestionService.Accept(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrSuggestionResolved) {
			return fiber.NewError(fiber.StatusConflict, "Suggestion already resolved")
		}
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success accept suggestion", res))
}

func (c *suggestionController) Reject(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid suggestion id")
	}

	res, err := c.suggestionService.Reject(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrSuggestionResolved) {
			return fiber.NewError(fiber.StatusConflict, "Suggestion already resolved")
		}
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reject suggestion", res))
}

func (c *suggestionController) Run(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.suggestionService.Run(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run automation", res))
}
