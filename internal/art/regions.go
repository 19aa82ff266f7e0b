// Package art prepares character splash art for image-to-3D reference use:
// cropping weapon regions onto neutral backdrops and painting weapons out of
// full-body model references. Region tables are hand-tuned per character and
// loaded from YAML data files.
package art

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rect is a pixel-space bounding box in source-image coordinates.
// In YAML it is written as a four-int sequence: [left, top, right, bottom].
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// UnmarshalYAML decodes the [left, top, right, bottom] sequence form and
// rejects inverted or empty boxes so a bad table fails before any image I/O.
func (r *Rect) UnmarshalYAML(value *yaml.Node) error {
	var v []int
	if err := value.Decode(&v); err != nil {
		return err
	}
	if len(v) != 4 {
		return fmt.Errorf("rect needs 4 values [left, top, right, bottom], got %d", len(v))
	}
	r.Left, r.Top, r.Right, r.Bottom = v[0], v[1], v[2], v[3]
	if r.Left >= r.Right || r.Top >= r.Bottom {
		return fmt.Errorf("rect %v is inverted or empty", v)
	}
	return nil
}

// Width returns the horizontal extent in pixels.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent in pixels.
func (r Rect) Height() int { return r.Bottom - r.Top }

// CropTable maps character -> weapon label -> crop box in the character's
// splash art.
type CropTable map[string]map[string]Rect

// RemovalTable maps character -> ordered weapon rectangles to paint over in
// the character's model reference. An empty list means the reference is
// already clean and is copied through unchanged.
type RemovalTable map[string][]Rect

// LoadCropTable loads a crop table from a YAML file.
func LoadCropTable(path string) (CropTable, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var t CropTable
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadRemovalTable loads a removal table from a YAML file.
func LoadRemovalTable(path string) (RemovalTable, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var t RemovalTable
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	return t, nil
}
