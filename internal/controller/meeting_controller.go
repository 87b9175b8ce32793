package controller

import (
	"ai-boardroom-be/internal/dto"
	"ai-boardroom-be/internal/pkg/serverutils"
	"ai-boardroom-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMeetingController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	ShowRun(ctx *fiber.Ctx) error
	ListPersonas(ctx *fiber.Ctx) error
}

type meetingController struct {
	service service.IMeetingService
}

func NewMeetingController(service service.IMeetingService) IMeetingController {
	return &meetingController{service: service}
}

func (c *meetingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/meeting/v1")
	h.Post("", c.Start)
	h.Get("personas", c.ListPersonas)
	h.Get("runs/:id", c.ShowRun)
}

func (c *meetingController) Start(ctx *fiber.Ctx) error {
	var req dto.StartMeetingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run meeting", res))
}

func (c *meetingController) ShowRun(ctx *fiber.Ctx) error {
	res, err := c.service.GetRun(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Meeting run not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show meeting run", res))
}

func (c *meetingController) ListPersonas(ctx *fiber.Ctx) error {
	res, err := c.service.ListPersonas(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list personas", res))
}
