package http

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/melih/docker-agent/internal/core/domain"
	"github.com/melih/docker-agent/internal/core/ports"
	"github.com/melih/docker-agent/internal/observability"
)

// FileHandler serves the shared directory.
type FileHandler struct {
	store    ports.FileStore
	notifier ports.Notifier
	logger   *slog.Logger
}

func NewFileHandler(store ports.FileStore, notifier ports.Notifier, logger *slog.Logger) *FileHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileHandler{store: store, notifier: notifier, logger: logger.With("component", "files")}
}

func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	files, err := h.store.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"files": files})
}

// Upload stores the multipart field "file" under its original name and
// notifies the automation receiver.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Multipart field 'file' is required",
		})
	}
	src, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	defer src.Close()

	ctx := c.UserContext()
	stored, err := h.store.Save(ctx, header.Filename, src)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidFileName) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	observability.WithTrace(ctx, h.logger).Info("file uploaded", "name", stored.Name, "size", stored.Size)

	h.notifier.Notify(ctx, domain.HookFileUploaded, domain.FileUploadedEvent{
		Filename: stored.Name,
		Size:     stored.Size,
		Path:     stored.Path,
	})

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("File %s uploaded", stored.Name),
		"path":    stored.Path,
	})
}

func (h *FileHandler) Download(c *fiber.Ctx) error {
	name := c.Params("filename")
	body, size, err := h.store.Open(c.UserContext(), name)
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "File not found",
		})
	case errors.Is(err, domain.ErrInvalidFileName):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": err.Error(),
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	// The body stream is closed by fasthttp once it has been sent.
	if ext := filepath.Ext(name); ext != "" {
		c.Type(ext)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	}
	return c.SendStream(body, int(size))
}
