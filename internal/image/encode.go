package imagepkg

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePNG writes img to path; the format follows the extension.
func SavePNG(img image.Image, path string) error {
	return imaging.Save(img, path)
}
