package handler

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"countries-inquiry-service/internal/service"
)

type ImportHandler struct {
	dataImporter service.DataImporter
}

func NewImportHandler(dataImporter service.DataImporter) *ImportHandler {
	return &ImportHandler{
		dataImporter: dataImporter,
	}
}

// ImportJSON replaces the collection with the uploaded JSON array. The
// payload is read from the "file" form field, or from the raw body when no
// multipart form is sent.
func (h *ImportHandler) ImportJSON(c *fiber.Ctx) error {
	var reader io.Reader
	if file, err := c.FormFile("file"); err == nil {
		uploadedFile, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to open uploaded file: " + err.Error(),
			})
		}
		defer uploadedFile.Close()

		reader = bufio.NewReaderSize(uploadedFile, 1024*1024) // 1MB buffer
	} else {
		body := c.Body()
		if len(body) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No file uploaded: " + err.Error(),
			})
		}
		reader = bytes.NewReader(body)
	}

	n, err := h.dataImporter.ImportFromReader(c.Context(), reader)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidImport) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Import completed successfully",
		"records": n,
	})
}

func (h *ImportHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.dataImporter.GetImportStatus(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(status)
}

func (h *ImportHandler) ClearDatabase(c *fiber.Ctx) error {
	if err := h.dataImporter.ClearDatabase(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Database cleared successfully",
	})
}
