package http

import (
	"encoding/json"
	"strconv"
	"time"

	"resume-builder/internal/model"

	"github.com/gofiber/fiber/v2"
)

// parseResumeBody validates the raw body against the resume schema before
// decoding it.
func parseResumeBody(c *fiber.Ctx) (*model.ResumePayload, error) {
	body := c.Body()
	if err := model.ValidateResumeJSON(body); err != nil {
		return nil, err
	}
	var p model.ResumePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resume id"})
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	p, err := parseResumeBody(c)
	if err != nil {
		return h.fail(c, err, "Failed to save resume")
	}
	res, err := h.resumes.Create(c.UserContext(), p.Username, p.Fields())
	if err != nil {
		return h.fail(c, err, "Failed to save resume")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         res.ID,
		"message":    "Resume saved successfully",
		"created_at": res.CreatedAt.Format(time.RFC3339Nano),
	})
}

func (h *Handler) ListResumes(c *fiber.Ctx) error {
	list, err := h.resumes.List(c.UserContext(), c.Query("username"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch resumes")
	}
	return c.JSON(list)
}

// GetResume and the other id routes honour an optional ?username= owner
// filter; without it the id alone grants access.
func (h *Handler) GetResume(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	res, err := h.resumes.Get(c.UserContext(), id, c.Query("username"))
	if err != nil {
		return h.fail(c, err, notFoundOr(err, "Failed to fetch resume"))
	}
	return c.JSON(res)
}

func (h *Handler) UpdateResume(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	p, err := parseResumeBody(c)
	if err != nil {
		return h.fail(c, err, "Failed to update resume")
	}
	at, err := h.resumes.Update(c.UserContext(), id, c.Query("username"), p.Fields())
	if err != nil {
		return h.fail(c, err, notFoundOr(err, "Failed to update resume"))
	}
	return c.JSON(fiber.Map{
		"message":    "Resume updated successfully",
		"updated_at": at.Format(time.RFC3339Nano),
	})
}

func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.resumes.Delete(c.UserContext(), id, c.Query("username")); err != nil {
		return h.fail(c, err, notFoundOr(err, "Failed to delete resume"))
	}
	return c.JSON(fiber.Map{"message": "Resume deleted successfully"})
}

type deleteAllReq struct {
	Username string `json:"username"`
}

func (h *Handler) DeleteAllResumes(c *fiber.Ctx) error {
	var req deleteAllReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	n, err := h.resumes.DeleteAll(c.UserContext(), req.Username)
	if err != nil {
		return h.fail(c, err, "Failed to delete resumes")
	}
	return c.JSON(fiber.Map{"message": "All resumes deleted successfully", "deleted": n})
}

func notFoundOr(err error, fallback string) string {
	if statusFor(err) == fiber.StatusNotFound {
		return "Resume not found"
	}
	return fallback
}
