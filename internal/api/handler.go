// Package api exposes the statement parser over HTTP.
package api

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/card-statement-parser/internal/extractor"
	"github.com/insightdelivered/card-statement-parser/internal/statement"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server wires the parse pipeline into HTTP handlers.
type Server struct {
	Assembler *statement.Assembler
}

// NewApp builds the fiber application with all routes registered.
// bodyLimitMB caps upload size; readTimeout bounds slow clients.
func NewApp(s *Server, bodyLimitMB int, readTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:   bodyLimitMB << 20,
		ReadTimeout: readTimeout,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/api/health", s.HandleHealth)
	app.Post("/api/parse", s.HandleParse)

	return app
}

// HandleHealth reports service liveness.
func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(map[string]string{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleParse accepts a PDF upload in the "file" form field and returns the
// parse result as JSON. Setting the "no_ocr" form value to "true" disables
// the OCR fallback for this request.
func (s *Server) HandleParse(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	tmpFile, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	assembler := s.Assembler
	if c.FormValue("no_ocr") == "true" {
		assembler = &statement.Assembler{}
	}

	pdfDoc := &extractor.PDFDocument{Path: tmpPath}
	result, err := assembler.Parse(statement.Document{
		SourceFile: fileHeader.Filename,
		Path:       tmpPath,
		Text:       pdfDoc,
		Tables:     pdfDoc,
	})
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}

	return c.JSON(result)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}
