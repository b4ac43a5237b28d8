package frontpages

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Block types
const (
	BlockBrand         = "brand"
	BlockEmblem        = "emblem"
	BlockTitle         = "title"
	BlockSubtitle      = "subtitle"
	BlockMinorTitle    = "minorTitle"
	BlockHighlightYear = "highlightYear"
	BlockHighlightName = "highlightName"
	BlockList          = "list"
)

var textBlocks = map[string]bool{
	BlockTitle:         true,
	BlockSubtitle:      true,
	BlockMinorTitle:    true,
	BlockHighlightYear: true,
	BlockHighlightName: true,
}

// Block is one element of a front page. Which fields are meaningful depends
// on Type.
type Block struct {
	Type   string
	Text   string
	Items  []string
	TwoCol bool
}

// MarshalJSON writes only the fields that belong to the block type
func (b Block) MarshalJSON() ([]byte, error) {
	switch {
	case textBlocks[b.Type]:
		return marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{b.Type, b.Text})
	case b.Type == BlockList:
		items := b.Items
		if items == nil {
			items = []string{}
		}
		return marshal(struct {
			Type   string   `json:"type"`
			Items  []string `json:"items"`
			TwoCol bool     `json:"twoCol"`
		}{b.Type, items, b.TwoCol})
	default:
		return marshal(struct {
			Type string `json:"type"`
		}{b.Type})
	}
}

// marshal encodes without HTML escaping so labels like "Friends & Supporters"
// stay readable
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Page is a labelled list of blocks
type Page struct {
	Label  string  `json:"label"`
	Blocks []Block `json:"blocks"`
}

// Pages maps a page number to its content
type Pages map[int]Page

// Numbers returns the page numbers in ascending order
func (p Pages) Numbers() []int {
	numbers := make([]int, 0, len(p))
	for n := range p {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// MarshalJSON writes pages in ascending numeric key order
func (p Pages) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range p.Numbers() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(n)))
		buf.WriteByte(':')

		page := p[n]
		if page.Blocks == nil {
			page.Blocks = []Block{}
		}
		encoded, err := marshal(page)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Fallback is used when the front pages file is missing or unusable
func Fallback() Pages {
	return Pages{
		0: {Label: "Cover", Blocks: []Block{}},
		14: {
			Label: "Friends & Supporters",
			Blocks: []Block{
				{Type: BlockBrand},
				{Type: BlockTitle, Text: "FRIENDS & SUPPORTERS OF THE GUILD"},
				{Type: BlockList, Items: []string{"Patrick & Mary Hurley"}},
			},
		},
	}
}
