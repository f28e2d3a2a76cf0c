package render

import (
	"fmt"
	"image"
	"image/gif"
	"io"
)

// Animation collects paletted frames for GIF export.
type Animation struct {
	delay  int // hundredths of a second per frame
	frames []*image.Paletted
}

// NewAnimation prepares an animation played back at fps frames per second.
func NewAnimation(fps int) *Animation {
	return &Animation{delay: max(1, (100+fps/2)/fps)}
}

func (a *Animation) Add(img *image.Paletted) {
	a.frames = append(a.frames, img)
}

func (a *Animation) Len() int { return len(a.frames) }

// Encode writes the animation as a looping GIF.
func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	delays := make([]int, len(a.frames))
	for i := range delays {
		delays[i] = a.delay
	}
	b := a.frames[0].Bounds()
	return gif.EncodeAll(w, &gif.GIF{
		Image: a.frames,
		Delay: delays,
		Config: image.Config{
			ColorModel: a.frames[0].Palette,
			Width:      b.Dx(),
			Height:     b.Dy(),
		},
	})
}
