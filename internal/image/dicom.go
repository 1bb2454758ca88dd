package image

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// ErrNoFrame is returned when a DICOM file has no frame at the requested index.
var ErrNoFrame = errors.New("image: DICOM frame not found")

// LoadDICOM reads one frame of a DICOM file as a Gray8 buffer.
//
// Native frames are contrast-stretched from their sample range to 0-255
// using the first sample of each pixel (or the luminance of RGB samples).
// Encapsulated frames are decoded by the dicom package and converted with
// the usual luminance weights.
func LoadDICOM(path string, frameIndex int) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("image: stat file: %w", err)
	}

	ds, err := dicom.Parse(f, info.Size(), nil)
	if err != nil {
		return nil, fmt.Errorf("image: parse DICOM: %w", err)
	}

	pixelElem, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("image: no pixel data: %w", err)
	}

	pdi, ok := pixelElem.Value.GetValue().(dicom.PixelDataInfo)
	if !ok {
		return nil, fmt.Errorf("%w: pixel data is %T", ErrUnsupportedFormat, pixelElem.Value.GetValue())
	}
	if frameIndex < 0 || frameIndex >= len(pdi.Frames) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoFrame, frameIndex, len(pdi.Frames))
	}
	fr := pdi.Frames[frameIndex]

	if fr.Encapsulated {
		img, err := fr.GetImage()
		if err != nil {
			return nil, fmt.Errorf("image: decode DICOM frame: %w", err)
		}
		return FromStdImage(img).ToGray8(), nil
	}

	width := dicomInt(&ds, tag.Columns)
	height := dicomInt(&ds, tag.Rows)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	samples := fr.NativeData.Data
	if len(samples) < width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrDataTooSmall, len(samples), width, height)
	}

	return stretchNative(samples[:width*height], width, height)
}

// stretchNative maps native DICOM samples linearly onto 0-255.
func stretchNative(samples [][]int, width, height int) (*ImageBuf, error) {
	buf, err := NewImageBuf(width, height, FormatGray8)
	if err != nil {
		return nil, err
	}

	values := make([]int, len(samples))
	lo, hi := 0, 0
	for i, px := range samples {
		var v int
		switch len(px) {
		case 0:
		case 1, 2:
			v = px[0]
		default:
			v = (px[0]*299 + px[1]*587 + px[2]*114) / 1000
		}
		values[i] = v
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}

	data := buf.Data()
	if hi == lo {
		return buf, nil
	}
	span := hi - lo
	for i, v := range values {
		data[i] = uint8((v - lo) * 255 / span)
	}
	return buf, nil
}

// dicomInt returns the first integer value of a tag, or 0.
func dicomInt(ds *dicom.Dataset, t tag.Tag) int {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil || elem.Value == nil {
		return 0
	}

	switch v := elem.Value.GetValue().(type) {
	case []int:
		if len(v) > 0 {
			return v[0]
		}
	case int:
		return v
	}
	return 0
}
