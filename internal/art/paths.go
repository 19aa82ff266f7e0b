package art

import (
	"fmt"
	"path/filepath"
)

// Art-dir filename conventions. Sources are 1024x1792 PNGs named after the
// character; outputs overwrite in place, no versioning.

// SplashPath is the full splash art for a character.
func SplashPath(dir, character string) string {
	return filepath.Join(dir, character+"_splash.png")
}

// ModelRefPath is the full-body model reference for a character.
func ModelRefPath(dir, character string) string {
	return filepath.Join(dir, character+"_model_ref.png")
}

// WeaponRefPath is the cropped weapon reference produced by the cropper.
func WeaponRefPath(dir, character, weapon string) string {
	return filepath.Join(dir, fmt.Sprintf("wpn_%s_%s_ref.png", character, weapon))
}

// NoWeaponsPath is the weapon-less model reference produced by the remover.
func NoWeaponsPath(dir, character string) string {
	return filepath.Join(dir, character+"_model_ref_noweapons.png")
}
