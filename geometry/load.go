package geometry

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/rad"
)

// Mask I/O errors.
var (
	// ErrEmptyMask is returned when a mask source has no cells or no
	// filled cell.
	ErrEmptyMask = errors.New("geometry: empty mask")

	// ErrEmptyData is returned when mask data is empty.
	ErrEmptyData = errors.New("geometry: empty data")
)

// Channel selects which part of a pixel decides occupancy.
type Channel uint8

const (
	// ChannelColor fills cells whose pixel is not black and not transparent.
	ChannelColor Channel = iota

	// ChannelAlpha fills cells whose pixel is not fully transparent.
	ChannelAlpha
)

// LoadMask loads a mask from the image file at path, auto-detecting the
// format. Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func LoadMask(path string, ch Channel) (*Mask, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("geometry: open mask: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := DecodeMask(f, ch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rad.Logger().Debug("geometry: mask loaded", "path", path,
		"width", m.Width(), "height", m.Height(), "filled", m.Count())
	return m, nil
}

// LoadMaskFromBytes decodes a mask from a byte slice.
func LoadMaskFromBytes(data []byte, ch Channel) (*Mask, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return DecodeMask(bytes.NewReader(data), ch)
}

// DecodeMask decodes an image from r and converts it to a mask.
// Images without any filled cell are rejected with ErrEmptyMask.
func DecodeMask(r io.Reader, ch Channel) (*Mask, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("geometry: decode mask: %w", err)
	}

	var m *Mask
	switch ch {
	case ChannelAlpha:
		m = NewMaskFromAlpha(img)
	default:
		m = NewMaskFromImage(img)
	}
	if m.Empty() || m.Count() == 0 {
		return nil, fmt.Errorf("%w: %dx%d image without filled pixels", ErrEmptyMask, m.Width(), m.Height())
	}
	return m, nil
}
