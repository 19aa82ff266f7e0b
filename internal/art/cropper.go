package art

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// CropOutputSize is the square resolution of every weapon reference.
	CropOutputSize = 1024

	// cropPadding scales the square canvas past the crop's larger side so
	// the subject does not touch the edges.
	cropPadding = 1.15
)

// cropCanvasFill is the neutral dark backdrop behind cropped weapons.
var cropCanvasFill = color.NRGBA{R: 30, G: 30, B: 35, A: 255}

// CropWeaponRef crops box out of a character's splash art, centers it on a
// padded square canvas, and writes a CropOutputSize PNG reference.
//
// A missing splash file is reported as a SKIP and returns (false, nil); the
// box is clamped to the image and an empty clamped box is likewise a counted
// failure rather than an error. Only write/encode problems return an error.
func CropWeaponRef(artDir, character, weapon string, box Rect, w io.Writer) (bool, error) {
	splashPath := SplashPath(artDir, character)
	if _, err := os.Stat(splashPath); err != nil {
		fmt.Fprintf(w, "  SKIP: %s not found\n", splashPath)
		return false, nil
	}

	src, err := imaging.Open(splashPath)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", splashPath, err)
	}

	rect := image.Rect(box.Left, box.Top, box.Right, box.Bottom).Intersect(src.Bounds())
	if rect.Empty() {
		fmt.Fprintf(w, "  FAIL: %s/%s box lies outside %s\n", character, weapon, filepath.Base(splashPath))
		return false, nil
	}
	cropped := imaging.Crop(src, rect)
	cw, ch := cropped.Bounds().Dx(), cropped.Bounds().Dy()

	canvas := composeCanvas(cropped)
	out := imaging.Resize(canvas, CropOutputSize, CropOutputSize, imaging.Lanczos)

	outPath := WeaponRefPath(artDir, character, weapon)
	if err := imaging.Save(out, outPath); err != nil {
		return false, fmt.Errorf("save %s: %w", outPath, err)
	}
	fmt.Fprintf(w, "  OK: %s (%dx%d crop -> %dx%d)\n", filepath.Base(outPath), cw, ch, CropOutputSize, CropOutputSize)
	return true, nil
}

// composeCanvas centers a crop on a padded square canvas of the neutral
// fill. Paste offsets are (canvas - crop) / 2 with integer truncation, so an
// odd leftover pixel of padding lands on the bottom/right.
func composeCanvas(cropped *image.NRGBA) *image.NRGBA {
	cw, ch := cropped.Bounds().Dx(), cropped.Bounds().Dy()
	dim := cw
	if ch > dim {
		dim = ch
	}
	size := int(math.Ceil(float64(dim) * cropPadding))
	canvas := imaging.New(size, size, cropCanvasFill)
	return imaging.Paste(canvas, cropped, image.Pt((size-cw)/2, (size-ch)/2))
}

// RunCrops processes every (character, weapon) pair in the table, in sorted
// order so progress output is stable run to run. It returns how many pairs
// produced a reference and how many were attempted.
func RunCrops(artDir string, table CropTable, w io.Writer) (ok, total int, err error) {
	characters := make([]string, 0, len(table))
	for c := range table {
		characters = append(characters, c)
	}
	sort.Strings(characters)

	for _, character := range characters {
		fmt.Fprintf(w, "%s:\n", strings.ToUpper(character))
		weapons := make([]string, 0, len(table[character]))
		for wp := range table[character] {
			weapons = append(weapons, wp)
		}
		sort.Strings(weapons)

		for _, weapon := range weapons {
			total++
			done, err := CropWeaponRef(artDir, character, weapon, table[character][weapon], w)
			if err != nil {
				return ok, total, err
			}
			if done {
				ok++
			}
		}
	}
	return ok, total, nil
}
