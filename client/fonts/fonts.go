package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func init() {
	if err := loadFonts(); err != nil {
		panic(fmt.Sprintf("Failed to load fonts: %v", err))
	}
}

var TTFSmallFont font.Face
var TTFNormalFont font.Face
var TTFLargeFont font.Face

func loadFonts() error {
	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}

	const dpi = 72
	TTFSmallFont = truetype.NewFace(ttfFont, &truetype.Options{
		Size:    16,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	TTFNormalFont = truetype.NewFace(ttfFont, &truetype.Options{
		Size:    24,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	TTFLargeFont = truetype.NewFace(ttfFont, &truetype.Options{
		Size:    40,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})

	return nil
}
