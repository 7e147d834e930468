package imgx

import (
	"bytes"
	"context"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
)

const PlaceholderScheme = "placeholder:"

// ImageLoader matches app.ImageLoader.
type ImageLoader interface {
	LoadImage(ctx context.Context, ref string) ([]byte, error)
}

// PlaceholderLoader renders a flat 60x90 PNG for "placeholder:<seed>" refs and
// hands every other ref to Next. Used by the offline catalogue.
type PlaceholderLoader struct {
	Next ImageLoader
}

func (l PlaceholderLoader) LoadImage(ctx context.Context, ref string) ([]byte, error) {
	seed, ok := strings.CutPrefix(ref, PlaceholderScheme)
	if !ok && l.Next != nil {
		return l.Next.LoadImage(ctx, ref)
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	sum := h.Sum32()
	fill := color.RGBA{R: uint8(sum >> 16), G: uint8(sum >> 8), B: uint8(sum), A: 255}

	img := image.NewRGBA(image.Rect(0, 0, 60, 90))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
