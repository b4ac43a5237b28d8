// Package imagemeta recovers image dimensions from file headers without
// decoding pixel data.
package imagemeta

import (
	"bytes"
	"encoding/binary"
)

// Orientation is landscape, portrait or unknown
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
	Unknown   Orientation = "unknown"
)

// Dimensions in pixels (SVG user units may be fractional)
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Orientation treats square images as landscape
func (d Dimensions) Orientation() Orientation {
	if d.Width >= d.Height {
		return Landscape
	}
	return Portrait
}

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Start-of-frame markers carry the frame size. C4 (DHT), C8 (JPG) and
// CC (DAC) are not frames.
var sofMarkers = map[byte]bool{
	0xC0: true, 0xC1: true, 0xC2: true, 0xC3: true,
	0xC5: true, 0xC6: true, 0xC7: true,
	0xC9: true, 0xCA: true, 0xCB: true,
	0xCD: true, 0xCE: true, 0xCF: true,
}

// ReadDimensions sniffs JPEG or PNG bytes. ok is false for anything else or
// for malformed headers.
func ReadDimensions(data []byte) (Dimensions, bool) {
	if d, ok := JPEGSize(data); ok {
		return d, true
	}
	return PNGSize(data)
}

// JPEGSize walks the marker segments after SOI until it finds a frame header
func JPEGSize(data []byte) (Dimensions, bool) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return Dimensions{}, false
	}

	offset := 2
	for offset+9 < len(data) {
		// Fill bytes and stray data between segments
		if data[offset] != 0xFF {
			offset++
			continue
		}

		marker := data[offset+1]
		if marker == 0xD8 || marker == 0xD9 {
			offset += 2
			continue
		}

		segmentLength := int(binary.BigEndian.Uint16(data[offset+2:]))
		if segmentLength < 2 {
			return Dimensions{}, false
		}

		if sofMarkers[marker] {
			height := binary.BigEndian.Uint16(data[offset+5:])
			width := binary.BigEndian.Uint16(data[offset+7:])
			return Dimensions{Width: float64(width), Height: float64(height)}, true
		}

		offset += 2 + segmentLength
	}

	return Dimensions{}, false
}

// PNGSize reads width and height from the IHDR chunk
func PNGSize(data []byte) (Dimensions, bool) {
	if len(data) < 24 || !bytes.Equal(data[:8], pngSignature) {
		return Dimensions{}, false
	}
	width := binary.BigEndian.Uint32(data[16:])
	height := binary.BigEndian.Uint32(data[20:])
	return Dimensions{Width: float64(width), Height: float64(height)}, true
}
