package art

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

const (
	// fillBlurRadius is the Gaussian radius for the whole-image fill source.
	// Large on purpose: the replacement must read as diffuse background, not
	// a soft duplicate of the weapon.
	fillBlurRadius = 60

	// featherMargin is how far the mask falls off from fully-replace to
	// fully-original around each rectangle.
	featherMargin = 35

	// maskEdgeOpacity is the partial opacity drawn over the full rectangle,
	// widening the blend zone past the opaque core.
	maskEdgeOpacity = 200

	sampleMargin = 30
	sampleStep   = 5
)

// sampleFallback is the fill color when a border strip yields no samples.
var sampleFallback = color.NRGBA{R: 40, G: 40, B: 45, A: 255}

// RemoveWeapons paints every configured rectangle out of a character's model
// reference and writes the result under the noweapons name. Rectangles are
// applied in order, each reading the previous one's output, so overlapping
// regions blend deterministically.
//
// A character with no rectangles still produces an output: the source is
// copied through byte for byte. A missing source is a SKIP, not an error.
func RemoveWeapons(artDir, character string, regions []Rect, w io.Writer) (bool, error) {
	srcPath := ModelRefPath(artDir, character)
	if _, err := os.Stat(srcPath); err != nil {
		fmt.Fprintf(w, "  SKIP: %s not found\n", srcPath)
		return false, nil
	}
	outPath := NoWeaponsPath(artDir, character)

	if len(regions) == 0 {
		b, err := os.ReadFile(srcPath)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", srcPath, err)
		}
		if err := os.WriteFile(outPath, b, 0o600); err != nil {
			return false, fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Fprintf(w, "  OK: %s (no weapon regions defined, copied original)\n", filepath.Base(outPath))
		return true, nil
	}

	src, err := imaging.Open(srcPath)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", srcPath, err)
	}
	img := imaging.Clone(src)
	flattenAlpha(img)
	fmt.Fprintf(w, "  Source: %s (%dx%d)\n", filepath.Base(srcPath), img.Bounds().Dx(), img.Bounds().Dy())
	fmt.Fprintf(w, "  Removing %d weapon region(s)...\n", len(regions))

	for i, region := range regions {
		img = paintOverRegion(img, region, featherMargin)
		fmt.Fprintf(w, "    Region %d: (%d,%d) -> (%d,%d)\n", i+1, region.Left, region.Top, region.Right, region.Bottom)
	}

	if err := imaging.Save(img, outPath); err != nil {
		return false, fmt.Errorf("save %s: %w", outPath, err)
	}
	fmt.Fprintf(w, "  OK: %s\n", filepath.Base(outPath))
	return true, nil
}

// flattenAlpha drops the alpha channel, forcing every pixel opaque while
// keeping its RGB values. The working image must be opaque before
// compositing: the blurred fill is premultiplied, and mixing it against
// partially transparent pixels would darken the blend.
func flattenAlpha(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// paintOverRegion blends a heavily blurred copy of img over one rectangle
// through a feathered mask. The rectangle is clamped to the image; an empty
// clamped rectangle leaves the image untouched.
func paintOverRegion(img *image.NRGBA, box Rect, feather int) *image.NRGBA {
	bounds := img.Bounds()
	r := image.Rect(box.Left, box.Top, box.Right, box.Bottom).Intersect(bounds)
	if r.Empty() {
		return img
	}

	blurred := blur.Gaussian(img, fillBlurRadius)

	// The opaque core is drawn first, then the full rectangle at partial
	// opacity over it, leaving a uniform edge-opacity rectangle before
	// feathering. Reference outputs were produced with these overwrite
	// semantics, so they are kept.
	mask := image.NewGray(bounds)
	inner := image.Rect(r.Min.X+feather, r.Min.Y+feather, r.Max.X-feather, r.Max.Y-feather)
	if !inner.Empty() {
		draw.Draw(mask, inner, image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	}
	draw.Draw(mask, r, image.NewUniform(color.Gray{Y: maskEdgeOpacity}), image.Point{}, draw.Src)
	feathered := imaging.Blur(mask, float64(feather))

	out := imaging.Clone(img)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			m := uint32(feathered.NRGBAAt(x, y).R)
			if m == 0 {
				continue
			}
			o := img.NRGBAAt(x, y)
			f := blurred.RGBAAt(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8((uint32(f.R)*m + uint32(o.R)*(255-m) + 127) / 255),
				G: uint8((uint32(f.G)*m + uint32(o.G)*(255-m) + 127) / 255),
				B: uint8((uint32(f.B)*m + uint32(o.B)*(255-m) + 127) / 255),
				A: o.A,
			})
		}
	}
	return out
}

// sampleBorderColor averages pixels along strips just outside a rectangle:
// horizontal strips sampleMargin above and below, vertical strips
// sampleMargin left and right, every sampleStep pixels, clamped to bounds.
// It is the flat-fill half of the in-painting technique, kept alongside the
// blurred-fill path for tuning against flat backgrounds.
func sampleBorderColor(img image.Image, box Rect) color.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var rSum, gSum, bSum, n uint64
	add := func(x, y int) {
		px := img.At(bounds.Min.X+clamp(x, 0, w-1), bounds.Min.Y+clamp(y, 0, h-1))
		pr, pg, pb, _ := px.RGBA()
		rSum += uint64(pr >> 8)
		gSum += uint64(pg >> 8)
		bSum += uint64(pb >> 8)
		n++
	}

	for dx := -sampleMargin; dx < box.Width()+sampleMargin; dx += sampleStep {
		add(box.Left+dx, box.Top-sampleMargin)
		add(box.Left+dx, box.Bottom+sampleMargin)
	}
	for dy := -sampleMargin; dy < box.Height()+sampleMargin; dy += sampleStep {
		add(box.Left-sampleMargin, box.Top+dy)
		add(box.Right+sampleMargin, box.Top+dy)
	}

	if n == 0 {
		return sampleFallback
	}
	return color.NRGBA{
		R: uint8(rSum / n),
		G: uint8(gSum / n),
		B: uint8(bSum / n),
		A: 255,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RunRemovals processes every character in the table in sorted order and
// returns how many produced an output and how many were attempted.
func RunRemovals(artDir string, table RemovalTable, w io.Writer) (ok, total int, err error) {
	characters := make([]string, 0, len(table))
	for c := range table {
		characters = append(characters, c)
	}
	sort.Strings(characters)

	for _, character := range characters {
		fmt.Fprintf(w, "%s:\n", strings.ToUpper(character))
		total++
		done, err := RemoveWeapons(artDir, character, table[character], w)
		if err != nil {
			return ok, total, err
		}
		if done {
			ok++
		}
	}
	return ok, total, nil
}
