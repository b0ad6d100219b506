package httpapi

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-now/internal/session"
	"github.com/i474232898/weather-now/internal/store"
	"github.com/i474232898/weather-now/internal/weather"
)

var validate = validator.New()

// SessionFactory builds a controller for a new session id.
type SessionFactory func(id string) *session.Controller

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, sessions *store.MemoryStore, newSession SessionFactory) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		ctrl := newSession(uuid.NewString())
		if err := sessions.Save(ctrl); err != nil {
			ctrl.Close()
			if errors.Is(err, store.ErrTooManySessions) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "session limit reached")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create session")
		}

		log.Printf("INFO: session=%s created", ctrl.ID())
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":   ctrl.ID(),
			"view": ctrl.View(),
		})
	})

	v1.Get("/sessions/:id", withSession(sessions, func(c *fiber.Ctx, ctrl *session.Controller) error {
		return c.JSON(ctrl.View())
	}))

	v1.Put("/sessions/:id/query", withSession(sessions, func(c *fiber.Ctx, ctrl *session.Controller) error {
		var req queryRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctrl.QueryChange(req.Text)
		return c.JSON(ctrl.View())
	}))

	v1.Post("/sessions/:id/select", withSession(sessions, func(c *fiber.Ctx, ctrl *session.Controller) error {
		var place weather.Place
		if err := c.BodyParser(&place); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(place); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctrl.SelectSuggestion(place)
		return c.JSON(ctrl.View())
	}))

	v1.Post("/sessions/:id/submit", withSession(sessions, func(c *fiber.Ctx, ctrl *session.Controller) error {
		ctrl.Submit()
		return c.JSON(ctrl.View())
	}))

	v1.Post("/sessions/:id/unit/toggle", withSession(sessions, func(c *fiber.Ctx, ctrl *session.Controller) error {
		ctrl.ToggleUnit()
		return c.JSON(ctrl.View())
	}))

	v1.Post("/sessions/:id/reset", withSession(sessions, func(c *fiber.Ctx, ctrl *session.Controller) error {
		ctrl.Reset()
		return c.JSON(ctrl.View())
	}))

	v1.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		if err := sessions.Delete(c.Params("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "session not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete session")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// withSession resolves the :id parameter to a live controller.
func withSession(sessions *store.MemoryStore, h func(*fiber.Ctx, *session.Controller) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := sessions.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "session not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
		}
		return h(c, ctrl)
	}
}

// queryRequest carries the search box text. Empty text is allowed and
// clears the suggestions.
type queryRequest struct {
	Text string `json:"text" validate:"max=200"`
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
