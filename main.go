package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/card-statement-parser/internal/api"
	"github.com/insightdelivered/card-statement-parser/internal/config"
	"github.com/insightdelivered/card-statement-parser/internal/extractor"
	"github.com/insightdelivered/card-statement-parser/internal/ocr"
	"github.com/insightdelivered/card-statement-parser/internal/statement"
	"github.com/insightdelivered/card-statement-parser/internal/writer"
)

const version = "1.0.0"

func main() {
	// CLI flags
	outputFlag := flag.String("output", "", "Output JSON file path (defaults to stdout)")
	csvFlag := flag.String("csv", "", "Also write transaction tables to this CSV file")
	noOCRFlag := flag.Bool("no-ocr", false, "Disable the OCR fallback for image-based PDFs")
	indentFlag := flag.Bool("indent", true, "Pretty-print JSON output")
	serveFlag := flag.Bool("serve", false, "Run as an HTTP server instead of processing files")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Card Statement PDF Parser
by Insight Delivered

Extracts card type, account digits, statement period, due date, balance
and transaction tables from credit card statement PDFs, with OCR
fallback for scanned documents.

Usage:
  card-statement-parser [flags] <input.pdf> [input2.pdf ...]
  card-statement-parser --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Parse a statement, JSON to stdout
  card-statement-parser statement.pdf

  # Write JSON and CSV outputs
  card-statement-parser --output=result.json --csv=transactions.csv statement.pdf

  # Parse a text-layer PDF only, no OCR
  card-statement-parser --no-ocr statement.pdf

  # Run the HTTP API (port via CSP_SERVER_PORT or PORT)
  card-statement-parser --serve

OCR fallback requires pdftoppm (poppler-utils) and tesseract-ocr on PATH.
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("card-statement-parser v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("Failed to load configuration: %v\n", err)
	}

	assembler := &statement.Assembler{}
	if cfg.OCR.Enabled && !*noOCRFlag {
		assembler.OCR = &ocr.Engine{
			DPI:         cfg.OCR.DPI,
			Language:    cfg.OCR.Language,
			PageSegMode: cfg.OCR.PageSegMode,
		}
	}

	if *serveFlag {
		serve(cfg, assembler)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	inputFiles := flag.Args()

	for i, inputPath := range inputFiles {
		// With multiple inputs the explicit output paths apply to the first
		// file only; the rest derive their names from the input.
		outPath, csvPath := *outputFlag, *csvFlag
		if i > 0 {
			base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
			if outPath != "" {
				outPath = base + ".json"
			}
			if csvPath != "" {
				csvPath = base + ".csv"
			}
		}
		if err := processFile(inputPath, assembler, outPath, csvPath, *indentFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func serve(cfg *config.Config, assembler *statement.Assembler) {
	app := api.NewApp(&api.Server{Assembler: assembler}, cfg.Server.BodyLimitMB, cfg.Server.ReadTimeout)
	fmt.Printf("Listening on %s\n", cfg.Server.Port)
	if err := app.Listen(cfg.Server.Port); err != nil {
		fatalf("Server failed: %v\n", err)
	}
}

func processFile(inputPath string, assembler *statement.Assembler, outputPath, csvPath string, indent bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Fprintf(os.Stderr, "Processing: %s\n", inputPath)

	pdfDoc := &extractor.PDFDocument{Path: inputPath}
	result, err := assembler.Parse(statement.Document{
		SourceFile: inputPath,
		Path:       inputPath,
		Text:       pdfDoc,
		Tables:     pdfDoc,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "  Found %d field(s), %d table(s)\n",
		len(result.Extracted.Confidence), len(result.TransactionsTables))

	jw := &writer.JSONWriter{Indent: indent}
	if outputPath != "" {
		if err := jw.WriteToFile(outputPath, result); err != nil {
			return fmt.Errorf("JSON write failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  Output: %s\n", outputPath)
	} else {
		if err := jw.Write(os.Stdout, result); err != nil {
			return fmt.Errorf("JSON write failed: %w", err)
		}
	}

	if csvPath != "" {
		cw := &writer.CSVWriter{IncludeHeader: true}
		if err := cw.WriteToFile(csvPath, result); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  CSV: %s\n", csvPath)
	}

	return nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
