package api

import (
	"github.com/gofiber/fiber/v2"

	"fcajbot/service"
	"fcajbot/types"
)

type RequestHandler struct {
	assistant *service.Assistant
}

func NewRequestHandler(assistant *service.Assistant) *RequestHandler {
	return &RequestHandler{assistant: assistant}
}

// HandleAsk answers one question for one session. Pipeline failures come
// back inside the answer text (warning-prefixed); only configuration
// problems surface as HTTP errors.
func (h *RequestHandler) HandleAsk(c *fiber.Ctx) error {
	var params types.AskParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}
	if errs := types.Validate(&params); len(errs) > 0 {
		return NewValidationError(errs)
	}

	resp, err := h.assistant.Ask(c.Context(), params.SessionID, params.Question)
	if err != nil {
		return NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(resp)
}

// HandleReset clears the session's conversation history.
func (h *RequestHandler) HandleReset(c *fiber.Ctx) error {
	var params types.ResetParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}
	if errs := types.Validate(&params); len(errs) > 0 {
		return NewValidationError(errs)
	}

	h.assistant.Reset(params.SessionID)
	return c.JSON(fiber.Map{"result": "ok"})
}
