package http

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"resume-builder/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const uploadField = "htmlFile"

type convertReq struct {
	HTML     string `json:"html"`
	Filename string `json:"filename,omitempty"`
}

// Convert prints inline HTML with standard margins.
func (h *Handler) Convert(c *fiber.Ctx) error {
	var req convertReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	doc, err := h.exporter.ConvertHTML(c.UserContext(), req.HTML, req.Filename)
	if err != nil {
		return h.fail(c, err, "Failed to generate PDF")
	}
	return sendPDF(c, doc)
}

// Upload prints a single uploaded HTML file with compact margins. The file is
// checked before it touches disk and the saved copy is always removed.
func (h *Handler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}
	files := form.File[uploadField]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded"})
	}
	total := 0
	for _, fs := range form.File {
		total += len(fs)
	}
	if total != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "exactly one file must be uploaded"})
	}
	fh := files[0]

	if err := h.exporter.CheckUpload(fh.Filename, fh.Header.Get(fiber.HeaderContentType), fh.Size); err != nil {
		return h.fail(c, err, "Invalid upload")
	}

	path := filepath.Join(h.settings.UploadDir, uuid.NewString()+".html")
	if err := c.SaveFile(fh, path); err != nil {
		return h.fail(c, fmt.Errorf("save upload: %w", err), "Failed to generate PDF")
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove upload", "path", path, "error", err)
		}
	}()

	doc, err := h.exporter.ConvertUpload(c.UserContext(), path, fh.Filename)
	if err != nil {
		return h.fail(c, err, "Failed to generate PDF")
	}
	return sendPDF(c, doc)
}

func sendPDF(c *fiber.Ctx, doc *domain.PDFDocument) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	return c.Send(doc.Data)
}
