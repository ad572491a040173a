package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"image"
	"net/http"

	"github.com/disintegration/imaging"

	"github.com/youruser/postcard/internal/util"
)

// ErrEmptyImage is returned for zero-length image data.
var ErrEmptyImage = errors.New("empty image data")

// DownloadImage fetches url and decodes the body.
func DownloadImage(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, client, url)
	if err != nil {
		return nil, err
	}
	return DecodeImage(body)
}

// DecodeImage decodes PNG, JPEG, GIF, BMP or TIFF data, honoring EXIF orientation.
func DecodeImage(b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, ErrEmptyImage
	}
	return imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
}
