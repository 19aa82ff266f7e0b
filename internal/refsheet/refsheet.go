// Package refsheet lays generated reference images out on a printable PDF
// contact sheet so a batch can be reviewed at a glance.
package refsheet

import (
	"bytes"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	titleSize = 16
	labelSize = 7

	cols    = 3
	cellW   = 160.0
	cellH   = 172.0
	caption = 12.0
	gutterX = 17.5
	gutterY = 14.0
)

// Scan returns the generated reference images in artDir: weapon crops and
// weapon-less model references, sorted by name.
func Scan(artDir string) ([]string, error) {
	crops, err := filepath.Glob(filepath.Join(artDir, "wpn_*_ref.png"))
	if err != nil {
		return nil, err
	}
	refs, err := filepath.Glob(filepath.Join(artDir, "*_noweapons.png"))
	if err != nil {
		return nil, err
	}
	files := append(crops, refs...)
	sort.Strings(files)
	return files, nil
}

// Generate returns PDF bytes for a contact sheet of the given images, in a
// fixed grid with filename captions. Images keep their aspect ratio inside
// each cell. An empty list still yields a sheet noting that nothing was found.
func Generate(title string, paths []string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetTextColor(30, 30, 35)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, 18, title, "", 0, "L", false, 0, "")

	if len(paths) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetXY(margin, margin+30)
		pdf.CellFormat(pageW-2*margin, 12, "No reference images found.", "", 0, "L", false, 0, "")
		return output(pdf)
	}

	x0 := float64(margin)
	y := float64(margin) + 34
	opts := gofpdf.ImageOptions{ImageType: "PNG"}

	for i, path := range paths {
		col := i % cols
		if col == 0 && i > 0 {
			y += cellH + caption + gutterY
		}
		if y+cellH+caption > pageH-margin {
			pdf.AddPage()
			y = margin
		}
		x := x0 + float64(col)*(cellW+gutterX)

		drawW, drawH, err := fitCell(path)
		if err != nil {
			return nil, err
		}
		pdf.ImageOptions(path, x+(cellW-drawW)/2, y+(cellH-drawH)/2, drawW, drawH, false, opts, 0, "")

		pdf.SetFont("Helvetica", "", labelSize)
		pdf.SetXY(x, y+cellH+2)
		pdf.CellFormat(cellW, 8, filepath.Base(path), "", 0, "C", false, 0, "")
	}

	return output(pdf)
}

// fitCell scales an image's pixel dimensions to fit the cell box.
func fitCell(path string) (w, h float64, err error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	scale := cellW / float64(cfg.Width)
	if s := cellH / float64(cfg.Height); s < scale {
		scale = s
	}
	return float64(cfg.Width) * scale, float64(cfg.Height) * scale, nil
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
