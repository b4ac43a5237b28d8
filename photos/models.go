package photos

import "github.com/killianmoore/web/imagemeta"

// Exif is optional capture metadata shown with a series image
type Exif struct {
	Camera   string `json:"camera,omitempty"`
	Lens     string `json:"lens,omitempty"`
	ISO      string `json:"iso,omitempty"`
	Shutter  string `json:"shutter,omitempty"`
	Aperture string `json:"aperture,omitempty"`
}

// Image is one entry of a series as authored in the series file
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
	Exif    *Exif  `json:"exif,omitempty"`
}

// Series is a titled group of images
type Series struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Year        int     `json:"year"`
	Cover       string  `json:"cover"`
	Description string  `json:"description"`
	Images      []Image `json:"images"`
}

// Photo is a renderable gallery entry. Src is URL encoded.
type Photo struct {
	Src         string                `json:"src"`
	Alt         string                `json:"alt,omitempty"`
	Width       float64               `json:"width,omitempty"`
	Height      float64               `json:"height,omitempty"`
	Orientation imagemeta.Orientation `json:"orientation"`
}

// DefaultCuratedOrder pins these photos to the front of the gallery
var DefaultCuratedOrder = []string{
	"/images/series-neon-city/n03.jpg",
	"/images/series-neon-city/n09.jpg",
	"/images/series-neon-city/n12.jpg",
	"/images/series-neon-city/n01.jpg",
	"/images/series-neon-city/n06.jpg",
	"/images/series-neon-city/Wide TOTR Dark (1 of 1).jpg",
	"/images/series-neon-city/Golden  Bridge1 (1 of 1).jpg",
	"/images/series-neon-city/WTC Pink +1 (1 of 1).jpg",
	"/images/series-neon-city/Cine Bridge (1 of 1).jpg",
	"/images/series-neon-city/ESB-E-W.jpg",
	"/images/series-neon-city/Billy (1 of 1).jpg",
}
