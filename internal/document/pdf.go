package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
)

// DefaultOutputPath is where Generate writes when no path is configured
const DefaultOutputPath = "recipe.pdf"

const (
	pageMarginBottom = 15
	titleFontSize    = 16
	bodyFontSize     = 12
	lineHeight       = 10
	titleCellWidth   = 200
)

// creationDate is embedded in every document so identical input yields identical bytes
var creationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// IOError reports a failure to write the output document
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Emitter lays recipes out as paginated PDF documents
type Emitter struct {
	outputPath string
}

// NewEmitter creates a new Emitter writing to outputPath
func NewEmitter(outputPath string) *Emitter {
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}
	return &Emitter{outputPath: outputPath}
}

// OutputPath returns the fixed path every document is written to
func (e *Emitter) OutputPath() string {
	return e.outputPath
}

// Generate writes the recipe document to the output path, replacing any earlier
// file, and returns the path.
func (e *Emitter) Generate(recipe, ingredients string, numPeople int) (string, error) {
	dir := filepath.Dir(e.outputPath)
	tmp, err := os.CreateTemp(dir, ".recipe-*.pdf")
	if err != nil {
		return "", &IOError{Path: e.outputPath, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := e.Render(tmp, recipe, ingredients, numPeople); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", &IOError{Path: e.outputPath, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", &IOError{Path: e.outputPath, Err: err}
	}
	if err := os.Rename(tmpName, e.outputPath); err != nil {
		return "", &IOError{Path: e.outputPath, Err: err}
	}

	return e.outputPath, nil
}

// Render writes the recipe document to w
func (e *Emitter) Render(w io.Writer, recipe, ingredients string, numPeople int) error {
	pdf := build(recipe, ingredients, numPeople)
	if err := pdf.Output(w); err != nil {
		return &IOError{Path: e.outputPath, Err: err}
	}
	return nil
}

func build(recipe, ingredients string, numPeople int) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(creationDate)
	pdf.SetModificationDate(creationDate)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(true, pageMarginBottom)

	// Core fonts are cp1252 encoded
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", titleFontSize)
	pdf.CellFormat(titleCellWidth, lineHeight, tr(fmt.Sprintf("Recipe for %d People", numPeople)), "", 1, "C", false, 0, "")
	pdf.Ln(lineHeight)

	pdf.SetFont("Arial", "", bodyFontSize)
	pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("Ingredients: %s\n\n%s", ingredients, recipe)), "", "J", false)

	return pdf
}
