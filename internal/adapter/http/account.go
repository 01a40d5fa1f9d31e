package http

import (
	"github.com/gofiber/fiber/v2"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.accounts.Register(c.UserContext(), req.Username, req.Password); err != nil {
		return h.fail(c, err, registerMessage(err))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := h.accounts.Login(c.UserContext(), req.Username, req.Password); err != nil {
		if statusFor(err) == fiber.StatusUnauthorized {
			return h.fail(c, err, "Invalid username or password")
		}
		return h.fail(c, err, "Failed to log in")
	}
	return c.JSON(fiber.Map{"success": true})
}

func registerMessage(err error) string {
	if statusFor(err) == fiber.StatusConflict {
		return "Username already exists"
	}
	return "Failed to register user"
}
