package controller

import (
	"nexmind-be/internal/pkg/serverutils"
	"nexmind-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGraphController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Rebuild(ctx *fiber.Ctx) error
	NoteNeighbors(ctx *fiber.Ctx) error
}

type graphController struct {
	graphService service.IGraphService
}

func NewGraphController(graphService service.IGraphService) IGraphController {
	return &graphController{
		graphService: graphService,
	}
}

func (c *graphController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/graph/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Post("rebuild", c.Rebuild)
	h.Get("note/:id/neighbors", c.NoteNeighbors)
}

func (c *graphController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.graphService.Show(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show graph", res))
}

func (c *graphController) Rebuild(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.graphService.Rebuild(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rebuild graph", res))
}

func (c *graphController) NoteNeighbors(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	res, err := c.graphService.NoteNeighbors(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.ErrNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note neighbors", res))
}
