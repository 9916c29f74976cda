package render

import (
	"fmt"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// LoadEbitenAssets decodes every file in paths (name -> file) into ebiten
// images.
func LoadEbitenAssets(paths map[string]string) (StaticAssets, error) {
	assets := make(StaticAssets, len(paths))
	for name, path := range paths {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", name, err)
		}
		assets[name] = img
	}
	return assets, nil
}

// PlaceholderAssets builds flat-colored square images for names that have no
// file, so content can run without artwork.
func PlaceholderAssets(names []string, size int) StaticAssets {
	assets := make(StaticAssets, len(names))
	for i, name := range names {
		img := ebiten.NewImage(size, size)
		img.Fill(placeholderPalette[i%len(placeholderPalette)])
		assets[name] = img
	}
	return assets
}
