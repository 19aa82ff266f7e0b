package art

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func TestRemoveWeapons_EmptyRegionsCopiesSource(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, ModelRefPath(dir, "revenant"), uniformImage(200, 350, color.NRGBA{70, 70, 80, 255}))

	var out bytes.Buffer
	ok, err := RemoveWeapons(dir, "revenant", nil, &out)
	if err != nil {
		t.Fatalf("RemoveWeapons: %v", err)
	}
	if !ok {
		t.Fatalf("expected success, output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "copied original") {
		t.Errorf("missing copy notice in output:\n%s", out.String())
	}

	src, err := os.ReadFile(ModelRefPath(dir, "revenant"))
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	got, err := os.ReadFile(NoWeaponsPath(dir, "revenant"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(src, got) {
		t.Error("copy path output differs from source")
	}
}

func TestRemoveWeapons_MissingSourceSkips(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	ok, err := RemoveWeapons(dir, "ghost", []Rect{{Left: 0, Top: 0, Right: 50, Bottom: 50}}, &out)
	if err != nil {
		t.Fatalf("RemoveWeapons: %v", err)
	}
	if ok {
		t.Error("expected skip for missing source")
	}
	if !strings.Contains(out.String(), "SKIP") {
		t.Errorf("missing SKIP line in output:\n%s", out.String())
	}
}

func TestPaintOverRegion_ReplacesInteriorLeavesFarPixels(t *testing.T) {
	// Dark background with a small bright feature inside the target region.
	// The blurred fill spreads the feature out, so interior pixels must
	// change while pixels beyond the feather reach stay byte-identical.
	img := uniformImage(400, 400, color.NRGBA{60, 60, 70, 255})
	fillRect(img, image.Rect(190, 190, 210, 210), color.NRGBA{255, 255, 255, 255})
	orig := imaging.Clone(img)

	got := paintOverRegion(img, Rect{Left: 150, Top: 150, Right: 250, Bottom: 250}, featherMargin)

	if got.NRGBAAt(200, 200) == orig.NRGBAAt(200, 200) {
		t.Error("pixel inside the feathered interior was not replaced")
	}
	for _, p := range []image.Point{{5, 5}, {395, 5}, {5, 395}, {395, 395}} {
		if got.NRGBAAt(p.X, p.Y) != orig.NRGBAAt(p.X, p.Y) {
			t.Errorf("far pixel %v changed: %v -> %v", p, orig.NRGBAAt(p.X, p.Y), got.NRGBAAt(p.X, p.Y))
		}
	}
}

func TestPaintOverRegion_ClampsOutOfBounds(t *testing.T) {
	img := uniformImage(300, 300, color.NRGBA{60, 60, 70, 255})
	fillRect(img, image.Rect(0, 120, 30, 180), color.NRGBA{255, 255, 255, 255})
	orig := imaging.Clone(img)

	// Region hangs off the left edge; the in-bounds part is still painted.
	got := paintOverRegion(img, Rect{Left: -100, Top: 100, Right: 60, Bottom: 200}, featherMargin)

	if got.Bounds() != orig.Bounds() {
		t.Fatalf("bounds changed: %v -> %v", orig.Bounds(), got.Bounds())
	}
	if got.NRGBAAt(10, 150) == orig.NRGBAAt(10, 150) {
		t.Error("in-bounds part of clamped region was not replaced")
	}
}

func TestPaintOverRegion_FullyOutsideIsNoop(t *testing.T) {
	img := uniformImage(100, 100, color.NRGBA{60, 60, 70, 255})
	orig := imaging.Clone(img)

	got := paintOverRegion(img, Rect{Left: 500, Top: 500, Right: 600, Bottom: 600}, featherMargin)

	if !bytes.Equal(got.Pix, orig.Pix) {
		t.Error("fully out-of-bounds region modified the image")
	}
}

func TestRemoveWeapons_SequentialRegions(t *testing.T) {
	dir := t.TempDir()
	ref := uniformImage(300, 400, color.NRGBA{60, 60, 70, 255})
	fillRect(ref, image.Rect(40, 90, 60, 110), color.NRGBA{255, 255, 255, 255})
	fillRect(ref, image.Rect(240, 290, 260, 310), color.NRGBA{255, 255, 255, 255})
	writePNG(t, ModelRefPath(dir, "wraith"), ref)

	regions := []Rect{
		{Left: 10, Top: 60, Right: 90, Bottom: 140},
		{Left: 210, Top: 260, Right: 290, Bottom: 340},
	}
	var out bytes.Buffer
	ok, err := RemoveWeapons(dir, "wraith", regions, &out)
	if err != nil || !ok {
		t.Fatalf("RemoveWeapons ok=%v err=%v", ok, err)
	}
	if !strings.Contains(out.String(), "Removing 2 weapon region(s)") {
		t.Errorf("missing region count in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Region 1:") || !strings.Contains(out.String(), "Region 2:") {
		t.Errorf("missing per-region lines in output:\n%s", out.String())
	}

	got, err := imaging.Open(NoWeaponsPath(dir, "wraith"))
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if got.Bounds().Dx() != 300 || got.Bounds().Dy() != 400 {
		t.Errorf("output is %dx%d, want 300x400", got.Bounds().Dx(), got.Bounds().Dy())
	}
	// Both bright features are gone.
	for _, p := range []image.Point{{50, 100}, {250, 300}} {
		r, g, b, _ := got.At(p.X, p.Y).RGBA()
		if r>>8 > 200 && g>>8 > 200 && b>>8 > 200 {
			t.Errorf("feature at %v still bright: %v", p, got.At(p.X, p.Y))
		}
	}
}

func TestRemoveWeapons_FlattensAlpha(t *testing.T) {
	dir := t.TempDir()
	ref := uniformImage(200, 300, color.NRGBA{60, 60, 70, 255})
	// Semi-transparent strip across the top, outside the painted region.
	fillRect(ref, image.Rect(0, 0, 200, 10), color.NRGBA{60, 60, 70, 120})
	writePNG(t, ModelRefPath(dir, "wraith"), ref)

	var out bytes.Buffer
	ok, err := RemoveWeapons(dir, "wraith", []Rect{{Left: 50, Top: 150, Right: 150, Bottom: 250}}, &out)
	if err != nil || !ok {
		t.Fatalf("RemoveWeapons ok=%v err=%v", ok, err)
	}

	got, err := imaging.Open(NoWeaponsPath(dir, "wraith"))
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	flat := imaging.Clone(got)
	want := color.NRGBA{60, 60, 70, 255}
	if px := flat.NRGBAAt(10, 5); px != want {
		t.Errorf("strip pixel = %v, want RGB kept with alpha flattened %v", px, want)
	}
	if px := flat.NRGBAAt(100, 290); px.A != 255 {
		t.Errorf("pixel (100,290) alpha = %d, want 255", px.A)
	}
}

func TestRunRemovals_TallyCountsSkips(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, ModelRefPath(dir, "wraith"), uniformImage(200, 300, color.NRGBA{60, 60, 70, 255}))
	// No model_ref for "tyrant".

	table := RemovalTable{
		"wraith": {{Left: 50, Top: 50, Right: 150, Bottom: 150}},
		"tyrant": {{Left: 50, Top: 50, Right: 150, Bottom: 150}},
	}

	var out bytes.Buffer
	ok, total, err := RunRemovals(dir, table, &out)
	if err != nil {
		t.Fatalf("RunRemovals: %v", err)
	}
	if ok != 1 || total != 2 {
		t.Errorf("tally = %d/%d, want 1/2", ok, total)
	}
	if _, err := os.Stat(NoWeaponsPath(dir, "wraith")); err != nil {
		t.Errorf("valid source produced no output: %v", err)
	}
}

func TestSampleBorderColor_UniformBackground(t *testing.T) {
	bg := color.NRGBA{120, 110, 100, 255}
	img := uniformImage(300, 300, bg)

	got := sampleBorderColor(img, Rect{Left: 100, Top: 100, Right: 200, Bottom: 200})
	if got != bg {
		t.Errorf("sampled %v, want %v", got, bg)
	}
}

func TestSampleBorderColor_ClampsAtEdges(t *testing.T) {
	bg := color.NRGBA{120, 110, 100, 255}
	img := uniformImage(300, 300, bg)

	// Region touching the top-left corner forces every strip to clamp.
	got := sampleBorderColor(img, Rect{Left: 0, Top: 0, Right: 80, Bottom: 80})
	if got != bg {
		t.Errorf("sampled %v, want %v", got, bg)
	}
}

func TestSampleBorderColor_FallbackWhenNoSamples(t *testing.T) {
	img := uniformImage(300, 300, color.NRGBA{120, 110, 100, 255})

	// Strongly inverted box yields no strip positions at all.
	got := sampleBorderColor(img, Rect{Left: 200, Top: 200, Right: 100, Bottom: 100})
	if got != sampleFallback {
		t.Errorf("sampled %v, want fallback %v", got, sampleFallback)
	}
}
