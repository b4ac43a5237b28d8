package imagemeta

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	svgWidthAttr   = regexp.MustCompile(`(?i)\bwidth\s*=\s*"([^"]+)"`)
	svgHeightAttr  = regexp.MustCompile(`(?i)\bheight\s*=\s*"([^"]+)"`)
	svgViewBoxAttr = regexp.MustCompile(`(?i)\bviewBox\s*=\s*"([^"]+)"`)
	nonNumeric     = regexp.MustCompile(`[^\d.]+`)
	leadingNumber  = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// SVGSize reads explicit width/height attributes, falling back to the third
// and fourth viewBox values. Units are dropped ("100px" is 100).
func SVGSize(svg string) (Dimensions, bool) {
	var viewBox []string
	if m := svgViewBoxAttr.FindStringSubmatch(svg); m != nil {
		viewBox = strings.Fields(m[1])
	}

	width := svgAttr(svg, svgWidthAttr)
	if width == 0 && len(viewBox) > 2 {
		width = parseLeadingFloat(viewBox[2])
	}
	height := svgAttr(svg, svgHeightAttr)
	if height == 0 && len(viewBox) > 3 {
		height = parseLeadingFloat(viewBox[3])
	}

	if width <= 0 || height <= 0 {
		return Dimensions{}, false
	}
	return Dimensions{Width: width, Height: height}, true
}

func svgAttr(svg string, attr *regexp.Regexp) float64 {
	m := attr.FindStringSubmatch(svg)
	if m == nil {
		return 0
	}
	return parseLeadingFloat(nonNumeric.ReplaceAllString(m[1], ""))
}

// parseLeadingFloat parses the numeric prefix of value, returning 0 when
// there is none
func parseLeadingFloat(value string) float64 {
	number := leadingNumber.FindString(strings.TrimSpace(value))
	if number == "" {
		return 0
	}
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0
	}
	return f
}
