// Package ocr recovers text from image-based PDFs by rasterizing pages and
// running Tesseract on each image. It shells out to pdftoppm
// (poppler-utils) and tesseract rather than binding either library.
package ocr

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrUnavailable reports that the external OCR tools are not installed.
// Callers that require OCR treat this as fatal; callers with OCR disabled
// never see it.
var ErrUnavailable = errors.New("OCR tools not available: install poppler-utils (pdftoppm) and tesseract-ocr")

// Engine runs the pdftoppm + tesseract pipeline. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	// DPI is the rasterization resolution. 300 gives good OCR quality on
	// statement layouts.
	DPI int
	// Language is the Tesseract language pack, e.g. "eng".
	Language string
	// PageSegMode is Tesseract's --psm value. 4 (single column, variable
	// text sizes) suits most statements.
	PageSegMode int
}

// NewEngine returns an Engine with the default statement-friendly settings.
func NewEngine() *Engine {
	return &Engine{DPI: 300, Language: "eng", PageSegMode: 4}
}

// Available reports whether both external tools are on PATH.
func Available() bool {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return false
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return false
	}
	return true
}

// PageTexts rasterizes every page of the PDF at path and OCRs each image,
// returning one string per page in page order. A page whose OCR fails
// contributes an empty string so page numbering is preserved. Returns
// ErrUnavailable when the external tools are missing.
func (e *Engine) PageTexts(path string) ([]string, error) {
	if !Available() {
		return nil, ErrUnavailable
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", strconv.Itoa(e.DPI), "-png", path, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(out))
	}

	imageFiles, err := pageImages(tmpDir)
	if err != nil {
		return nil, err
	}
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images for %q", path)
	}

	pages := make([]string, 0, len(imageFiles))
	for _, imgFile := range imageFiles {
		pages = append(pages, e.ocrImage(imgFile))
	}
	return pages, nil
}

// ocrImage runs tesseract on one page image. Failures are tolerated per
// page: a broken page yields "" and the remaining pages still run.
func (e *Engine) ocrImage(imgFile string) string {
	outBase := strings.TrimSuffix(imgFile, ".png") + "-ocr"
	cmd := exec.Command("tesseract", imgFile, outBase,
		"-l", e.Language, "--psm", strconv.Itoa(e.PageSegMode))
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "tesseract warning for %s: %v (output: %s)\n", imgFile, err, string(out))
		return ""
	}

	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return ""
	}
	return sanitize(strings.TrimSpace(string(data)))
}

// pageImages lists the PNGs pdftoppm wrote, sorted by name. pdftoppm
// zero-pads page numbers, so lexicographic order is page order.
func pageImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
