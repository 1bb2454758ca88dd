package skel

import (
	"path/filepath"
	"strings"

	intImage "github.com/gogpu/skel/internal/image"
)

// ImageBuf is a public alias for the internal pixel buffer that decoded
// images are carried in before they become planes.
type ImageBuf = intImage.ImageBuf

// Errors returned by plane constructors and loaders.
var (
	ErrInvalidDimensions = intImage.ErrInvalidDimensions
	ErrDataTooSmall      = intImage.ErrDataTooSmall
	ErrUnsupportedFormat = intImage.ErrUnsupportedFormat
	ErrNoFrame           = intImage.ErrNoFrame
	ErrEmptyData         = intImage.ErrEmptyData
)

// LoadImage decodes a PNG, JPEG, BMP, TIFF or WebP file.
func LoadImage(path string) (*ImageBuf, error) {
	return intImage.LoadImage(path)
}

// DecodeImage decodes an in-memory PNG, JPEG, BMP, TIFF or WebP image.
// Returns ErrEmptyData for empty input.
func DecodeImage(data []byte) (*ImageBuf, error) {
	return intImage.LoadImageFromBytes(data)
}

// LoadDICOM decodes one frame of a DICOM file as grayscale.
func LoadDICOM(path string, frame int) (*ImageBuf, error) {
	return intImage.LoadDICOM(path, frame)
}

// IsDICOM reports whether path has a DICOM file extension.
func IsDICOM(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dcm", ".dicom":
		return true
	}
	return false
}

// LoadPlane loads path as a plane. DICOM files are read at frame 0.
func LoadPlane(path string) (*Plane, error) {
	var (
		buf *ImageBuf
		err error
	)
	if IsDICOM(path) {
		buf, err = LoadDICOM(path, 0)
	} else {
		buf, err = LoadImage(path)
	}
	if err != nil {
		return nil, err
	}
	return PlaneFromBuf(buf), nil
}

// ResizeToWidth downscales b with Catmull-Rom resampling so that it is at
// most maxWidth pixels wide. b is returned as is when it already fits.
func ResizeToWidth(b *ImageBuf, maxWidth int) *ImageBuf {
	return intImage.Resize(b, maxWidth)
}
