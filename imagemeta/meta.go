package imagemeta

import (
	"os"
	"path/filepath"
	"strings"
)

// Meta is what the gallery needs from an image file. Width and Height are
// zero when Orientation is Unknown.
type Meta struct {
	Width       float64     `json:"width,omitempty"`
	Height      float64     `json:"height,omitempty"`
	Orientation Orientation `json:"orientation"`
}

var sniffers = map[string]func([]byte) (Dimensions, bool){
	".jpg":  JPEGSize,
	".jpeg": JPEGSize,
	".png":  PNGSize,
	".svg":  func(data []byte) (Dimensions, bool) { return SVGSize(string(data)) },
}

// Read picks a sniffer by file extension. It never fails: unreadable files
// and unsupported or corrupt formats give an Unknown orientation.
func Read(path string) Meta {
	sniff, supported := sniffers[strings.ToLower(filepath.Ext(path))]
	if !supported {
		return Meta{Orientation: Unknown}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Meta{Orientation: Unknown}
	}

	size, ok := sniff(data)
	if !ok {
		return Meta{Orientation: Unknown}
	}
	return Meta{Width: size.Width, Height: size.Height, Orientation: size.Orientation()}
}
