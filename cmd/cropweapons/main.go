// cropweapons crops weapon regions out of character splash art and writes
// square reference images on a neutral backdrop for image-to-3D generation.
package main

import (
	"fmt"
	"log"
	"os"

	"artprep/internal/art"
)

const (
	artDir    = "public/assets/art"
	tablePath = "regions/weapon_crops.yaml"
)

func main() {
	table, err := art.LoadCropTable(tablePath)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Cropping weapon references from splash art...")
	fmt.Println()

	ok, total, err := art.RunCrops(artDir, table, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nDone: %d/%d weapon references created\n", ok, total)
	fmt.Printf("Output dir: %s\n", artDir)
}
