package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
)

const (
	gifCellW = 8
	gifCellH = 16
	// gifDelay is in hundredths of a second per frame.
	gifDelay = 2
)

// GIFRecorder collects canvas frames into an animation.
type GIFRecorder struct {
	frames []*image.Paletted
	limit  int
}

// NewGIFRecorder keeps at most limit frames, dropping the oldest.
func NewGIFRecorder(limit int) *GIFRecorder {
	return &GIFRecorder{limit: max(limit, 1)}
}

// Capture rasterizes every braille dot of c as a block of pixels.
func (r *GIFRecorder) Capture(c *Canvas) {
	img := image.NewPaletted(
		image.Rect(0, 0, c.Width*gifCellW, c.Height*gifCellH),
		color.Palette{color.Black, color.White},
	)
	dotW, dotH := gifCellW/2, gifCellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern <= 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					x0, y0 := col*gifCellW+dx*dotW, row*gifCellH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(x0+px, y0+py, 1)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
	if len(r.frames) > r.limit {
		r.frames = r.frames[1:]
	}
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

// Encode writes the looping animation.
func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("viz: no frames recorded")
	}
	anim := gif.GIF{}
	for _, f := range r.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, gifDelay)
	}
	return gif.EncodeAll(w, &anim)
}
