package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// OutputPath returns the report file path for a lab SKU and extension, e.g.
// labcheck-HOL-2701.html.
func OutputPath(dir, labSKU, extension string) string {
	return filepath.Join(dir, fmt.Sprintf("labcheck-%s.%s", labSKU, extension))
}

// WriteFiles writes the JSON, HTML and text log renditions of the report into
// dir, plus the PDF rendition when withPDF is set. The caller must have
// finalized the report first.
func (r *Report) WriteFiles(dir string, withPDF bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	data, err := r.ToJSON()
	if err != nil {
		return fmt.Errorf("cannot serialize report: %w", err)
	}
	jsonPath := OutputPath(dir, r.LabSKU, "json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("cannot write JSON report: %w", err)
	}
	log.Infof("JSON report written to %s", jsonPath)

	htmlPath := OutputPath(dir, r.LabSKU, "html")
	if err := r.writeTo(htmlPath, r.WriteHTML); err != nil {
		return fmt.Errorf("cannot write HTML report: %w", err)
	}
	log.Infof("HTML report written to %s", htmlPath)

	logPath := OutputPath(dir, r.LabSKU, "log")
	if err := r.writeTo(logPath, r.WriteTextLog); err != nil {
		return fmt.Errorf("cannot write text log: %w", err)
	}
	log.Infof("Text log written to %s", logPath)

	if withPDF {
		pdfPath := OutputPath(dir, r.LabSKU, "pdf")
		if err := r.writeTo(pdfPath, r.WritePDF); err != nil {
			return fmt.Errorf("cannot write PDF report: %w", err)
		}
		log.Infof("PDF report written to %s", pdfPath)
	}

	return nil
}

func (r *Report) writeTo(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warnf("failed to close %s: %v", path, closeErr)
		}
	}()
	return render(f)
}
