package imagemeta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticJPEG builds SOI, an APP0 segment, an SOF marker segment and EOI
func syntheticJPEG(sof byte, width, height uint16) []byte {
	data := []byte{0xFF, 0xD8}
	// APP0 with a 16 byte length (2 length bytes + 14 payload bytes)
	data = append(data, 0xFF, 0xE0, 0x00, 0x10)
	data = append(data, make([]byte, 14)...)
	// SOFn: length 17, precision 8, height, width, 3 components
	data = append(data, 0xFF, sof, 0x00, 0x11, 0x08,
		byte(height>>8), byte(height), byte(width>>8), byte(width), 0x03)
	data = append(data, make([]byte, 9)...)
	data = append(data, 0xFF, 0xD9)
	return data
}

func syntheticPNG(width, height uint32) []byte {
	data := append([]byte{}, pngSignature...)
	// IHDR chunk: length 13, type, then width and height at offsets 16 and 20
	data = append(data, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R')
	data = append(data,
		byte(width>>24), byte(width>>16), byte(width>>8), byte(width),
		byte(height>>24), byte(height>>16), byte(height>>8), byte(height),
		0x08, 0x02, 0x00, 0x00, 0x00)
	return data
}

func TestJPEGSize_SyntheticSOF(t *testing.T) {
	d, ok := JPEGSize(syntheticJPEG(0xC0, 1024, 683))

	require.True(t, ok)
	assert.Equal(t, Dimensions{Width: 1024, Height: 683}, d)
	assert.Equal(t, Landscape, d.Orientation())
}

func TestJPEGSize_AllFrameMarkers(t *testing.T) {
	for marker := range sofMarkers {
		d, ok := JPEGSize(syntheticJPEG(marker, 600, 900))
		require.True(t, ok, "marker %#x", marker)
		assert.Equal(t, Dimensions{Width: 600, Height: 900}, d, "marker %#x", marker)
	}
}

func TestJPEGSize_NonFrameMarkersAreSkipped(t *testing.T) {
	// DHT (C4) is not a frame, so the scan runs past it and finds nothing
	_, ok := JPEGSize(syntheticJPEG(0xC4, 600, 900))
	assert.False(t, ok)
}

func TestJPEGSize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"too short", []byte{0xFF, 0xD8}},
		{"wrong magic", []byte{0x00, 0xD8, 0xFF, 0xC0, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"png bytes", syntheticPNG(10, 10)},
		{"segment length below two", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x01, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"no frame", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x04, 0, 0, 0xFF, 0xD9, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := JPEGSize(tt.data)
			assert.False(t, ok)
		})
	}
}

func TestJPEGSize_SkipsFillBytes(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0x00, 0x00}
	data = append(data, syntheticJPEG(0xC2, 300, 200)[2:]...)

	d, ok := JPEGSize(data)
	require.True(t, ok)
	assert.Equal(t, Dimensions{Width: 300, Height: 200}, d)
}

func TestPNGSize(t *testing.T) {
	d, ok := PNGSize(syntheticPNG(800, 600))

	require.True(t, ok)
	assert.Equal(t, Dimensions{Width: 800, Height: 600}, d)

	_, ok = PNGSize(syntheticPNG(800, 600)[:20])
	assert.False(t, ok, "Truncated header")

	bad := syntheticPNG(800, 600)
	bad[1] = 'X'
	_, ok = PNGSize(bad)
	assert.False(t, ok, "Broken signature")
}

func TestReadDimensions(t *testing.T) {
	d, ok := ReadDimensions(syntheticPNG(400, 500))
	require.True(t, ok)
	assert.Equal(t, Portrait, d.Orientation())

	d, ok = ReadDimensions(syntheticJPEG(0xC0, 500, 500))
	require.True(t, ok)
	assert.Equal(t, Landscape, d.Orientation(), "Square images count as landscape")

	_, ok = ReadDimensions([]byte("GIF89a"))
	assert.False(t, ok)
}

func TestSVGSize(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want Dimensions
		ok   bool
	}{
		{"explicit", `<svg width="1200" height="800"></svg>`, Dimensions{1200, 800}, true},
		{"units", `<svg width="120px" height="80.5px">`, Dimensions{120, 80.5}, true},
		{"viewBox", `<svg viewBox="0 0 300 600">`, Dimensions{300, 600}, true},
		{"fractional viewBox", `<svg viewBox="0 0 300.5 60">`, Dimensions{300.5, 60}, true},
		{"mixed", `<svg width="500" viewBox="0 0 300 600">`, Dimensions{500, 600}, true},
		{"case insensitive", `<SVG WIDTH="10" HEIGHT="20">`, Dimensions{10, 20}, true},
		{"nothing", `<svg></svg>`, Dimensions{}, false},
		{"percent only", `<svg width="100%" height="">`, Dimensions{}, false},
		{"short viewBox", `<svg viewBox="0 0 300">`, Dimensions{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := SVGSize(tt.svg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}

	assert.Equal(t, Meta{Width: 800, Height: 600, Orientation: Landscape}, Read(write("a.png", syntheticPNG(800, 600))))
	assert.Equal(t, Meta{Width: 600, Height: 900, Orientation: Portrait}, Read(write("b.JPG", syntheticJPEG(0xC0, 600, 900))))
	assert.Equal(t, Meta{Width: 40, Height: 20, Orientation: Landscape}, Read(write("c.svg", []byte(`<svg width="40" height="20"/>`))))

	assert.Equal(t, Unknown, Read(write("corrupt.jpg", []byte("not a jpeg"))).Orientation)
	assert.Equal(t, Unknown, Read(write("d.webp", []byte("RIFF"))).Orientation)
	assert.Equal(t, Unknown, Read(filepath.Join(dir, "missing.png")).Orientation)
}
