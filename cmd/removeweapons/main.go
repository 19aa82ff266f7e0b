// removeweapons paints weapon regions out of character model references by
// blending in blurred background, producing clean silhouettes for
// image-to-3D generation.
package main

import (
	"fmt"
	"log"
	"os"

	"artprep/internal/art"
)

const (
	artDir    = "public/assets/art"
	tablePath = "regions/weapon_removal.yaml"
)

func main() {
	table, err := art.LoadRemovalTable(tablePath)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Removing weapons from model_ref images...")
	fmt.Println()

	ok, total, err := art.RunRemovals(artDir, table, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nDone: %d/%d weaponless refs created\n", ok, total)
	fmt.Printf("Output dir: %s\n", artDir)
}
