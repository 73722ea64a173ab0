package assets

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize returns src scaled to w x h with Catmull-Rom filtering. The renderer
// uses it once per window size so the pitch texture matches the playing area.
func Resize(src image.Image, w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
