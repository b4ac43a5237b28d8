package frontpages

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// ErrNoPages is returned when a document holds no valid page
var ErrNoPages = errors.New("no valid front pages")

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

// pageNumber reads the leading integer of a key ("14", "14-back").
// Keys without one are not pages.
func pageNumber(key string) (int, bool) {
	match := leadingInt.FindStringSubmatch(key)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Load reads the front pages file once. Any failure yields Fallback; the
// returned value is never nil.
func Load(path string, log *zap.Logger) Pages {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("using fallback front pages", zap.String("path", path), zap.Error(err))
		return Fallback()
	}

	pages, err := Parse(data)
	if err != nil {
		log.Warn("using fallback front pages", zap.String("path", path), zap.Error(err))
		return Fallback()
	}

	log.Info("front pages loaded", zap.String("path", path), zap.Int("pages", len(pages)))
	return pages
}

// Parse validates a front pages document. Pages without a string label or a
// blocks array are skipped; invalid blocks are dropped from their page.
func Parse(data []byte) (Pages, error) {
	keys, raw, err := objectEntries(data)
	if err != nil {
		return nil, fmt.Errorf("decode front pages: %w", err)
	}

	// index-like keys come first in ascending order, the rest keep document
	// order, so a later "14-back" replaces "14"
	sort.SliceStable(keys, func(i, j int) bool {
		ni, ci := arrayIndex(keys[i])
		nj, cj := arrayIndex(keys[j])
		if ci && cj {
			return ni < nj
		}
		return ci && !cj
	})

	pages := Pages{}
	for _, key := range keys {
		n, ok := pageNumber(key)
		if !ok {
			continue
		}
		page, ok := parsePage(raw[key])
		if !ok {
			continue
		}
		pages[n] = page
	}

	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}

// objectEntries decodes a JSON object, returning its keys in document order.
// A repeated key keeps its first position and its last value.
func objectEntries(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if tok == nil {
		return nil, nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("front pages must be a JSON object")
	}

	var keys []string
	raw := map[string]json.RawMessage{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, seen := raw[key]; !seen {
			keys = append(keys, key)
		}
		raw[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, raw, nil
}

const maxArrayIndex = 1<<32 - 2

// arrayIndex reports whether key is a canonical array index ("14", not "014")
func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n > maxArrayIndex || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}

func isString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func parsePage(data json.RawMessage) (Page, bool) {
	var fields struct {
		Label  json.RawMessage   `json:"label"`
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return Page{}, false
	}

	var label string
	if !isString(fields.Label) || json.Unmarshal(fields.Label, &label) != nil {
		return Page{}, false
	}
	if fields.Blocks == nil {
		return Page{}, false
	}

	blocks := []Block{}
	for _, rawBlock := range fields.Blocks {
		if block, ok := parseBlock(rawBlock); ok {
			blocks = append(blocks, block)
		}
	}
	return Page{Label: label, Blocks: blocks}, true
}

func parseBlock(data json.RawMessage) (Block, bool) {
	var fields struct {
		Type   string          `json:"type"`
		Text   json.RawMessage `json:"text"`
		Items  json.RawMessage `json:"items"`
		TwoCol json.RawMessage `json:"twoCol"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return Block{}, false
	}

	switch {
	case fields.Type == BlockBrand || fields.Type == BlockEmblem:
		return Block{Type: fields.Type}, true

	case textBlocks[fields.Type]:
		var text string
		if !isString(fields.Text) || json.Unmarshal(fields.Text, &text) != nil {
			return Block{}, false
		}
		return Block{Type: fields.Type, Text: text}, true

	case fields.Type == BlockList:
		var items []string
		if fields.Items == nil || json.Unmarshal(fields.Items, &items) != nil || items == nil {
			return Block{}, false
		}
		var twoCol bool
		if fields.TwoCol != nil {
			// anything but a literal true is false
			_ = json.Unmarshal(fields.TwoCol, &twoCol)
		}
		return Block{Type: BlockList, Items: items, TwoCol: twoCol}, true
	}

	return Block{}, false
}
