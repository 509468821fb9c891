package imagestore

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned by Inspect for content that is not an image.
var ErrNotImage = errors.New("imagestore: content is not an image")

// Info describes uploaded image bytes.
type Info struct {
	MimeType  string
	Format    string
	Extension string
	Width     int
	Height    int
	Size      int64
}

// Inspect detects the MIME type and, for decodable formats, the pixel dimensions.
func Inspect(data []byte) (Info, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Info{}, ErrNotImage
	}
	info := Info{
		MimeType:  mt.String(),
		Format:    strings.TrimPrefix(mt.Extension(), "."),
		Extension: mt.Extension(),
		Size:      int64(len(data)),
	}
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		info.Width = cfg.Width
		info.Height = cfg.Height
		info.Format = format
	}
	return info, nil
}
