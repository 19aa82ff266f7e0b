// refsheet collects the generated reference images into a single PDF
// contact sheet for review.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"artprep/internal/refsheet"
)

const artDir = "public/assets/art"

func main() {
	if _, err := os.Stat(artDir); err != nil {
		log.Fatal(err)
	}

	files, err := refsheet.Scan(artDir)
	if err != nil {
		log.Fatal(err)
	}

	b, err := refsheet.Generate("Weapon reference review", files)
	if err != nil {
		log.Fatal(err)
	}

	outPath := filepath.Join(artDir, "refsheet.pdf")
	if err := os.WriteFile(outPath, b, 0o600); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s (%d images)\n", outPath, len(files))
}
