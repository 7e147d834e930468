package imgx

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"movie-quiz/internal/domain"
)

// Decoder validates poster payloads. Only the header is decoded; the raw bytes
// are passed on to presenters unchanged.
type Decoder struct{}

func (Decoder) Decode(data []byte) (domain.Picture, error) {
	if len(data) == 0 {
		return domain.Picture{}, errors.New("empty image payload")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.Picture{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return domain.Picture{}, errors.New("invalid image size")
	}
	return domain.Picture{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
