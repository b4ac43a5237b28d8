package vendors

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/killianmoore/web/parsers"
)

// MapVendors maps tokenized rows to vendors.
// Row 0 is the header. The category column is sparse: a blank cell inherits
// the last category seen above it. Rows without a business name or without
// both phone and email are dropped. The result is deduplicated within each
// category and sorted by category then business name.
func MapVendors(rows []parsers.Row) []Vendor {
	if len(rows) < 2 {
		return nil
	}

	currentCategory := ""
	var vendors []Vendor

	for i, row := range rows[1:] {
		explicit := row.Field(ColCategory)
		if explicit == "" {
			explicit = row.Field(ColSecondaryCategory)
		}
		if explicit != "" {
			currentCategory = explicit
		}

		vendor := NormalizeVendorRow(row, i+1, currentCategory)
		if vendor.Qualifies() {
			vendors = append(vendors, vendor)
		}
	}

	if len(vendors) == 0 {
		return nil
	}

	vendors = DedupeWithinCategory(vendors)
	SortVendors(vendors)
	return vendors
}

// NormalizeVendorRow builds a vendor from one positional data row using the
// carried-forward category
func NormalizeVendorRow(row parsers.Row, position int, category string) Vendor {
	if category == "" {
		category = Uncategorized
	}

	contactName := strings.TrimSpace(joinNonEmpty(" ", row.Field(ColFirstName), row.Field(ColLastName)))
	if contactName == "" {
		contactName = DefaultContactName
	}

	return Vendor{
		ID:           fmt.Sprintf("v-csv-%d", position),
		Category:     category,
		BusinessName: strings.TrimSpace(row.Field(ColCompanyName)),
		ContactName:  contactName,
		Phone:        strings.TrimSpace(row.Field(ColPhone)),
		Email:        strings.TrimSpace(row.Field(ColEmail)),
		Website:      NormalizeWebsite(row.Field(ColWebsite)),
		Tier:         TierStandard,
	}
}

// NormalizeWebsite returns "" for blank input, keeps http(s) URLs as they are
// and prefixes anything else with https://
func NormalizeWebsite(website string) string {
	value := strings.TrimSpace(website)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

var nonAlphaKey = regexp.MustCompile(`[^a-z0-9 ]`)

// AlphaKey is the comparison key used for dedupe and sorting: lowercase with
// everything outside [a-z0-9 ] removed, then trimmed
func AlphaKey(value string) string {
	return strings.TrimSpace(nonAlphaKey.ReplaceAllString(strings.ToLower(value), ""))
}

// DedupeWithinCategory drops repeated listings inside one category.
// The same business listed under two categories is kept in both.
func DedupeWithinCategory(vendors []Vendor) []Vendor {
	seen := make(map[string]bool)
	var unique []Vendor

	for _, vendor := range vendors {
		key := strings.Join([]string{
			AlphaKey(vendor.Category),
			AlphaKey(vendor.BusinessName),
			AlphaKey(vendor.Phone),
			AlphaKey(vendor.Email),
		}, "|")

		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, vendor)
	}

	return unique
}

// SortVendors orders vendors by category then business name, comparing
// AlphaKey values. The sort is stable.
func SortVendors(vendors []Vendor) {
	sort.SliceStable(vendors, func(i, j int) bool {
		ci, cj := AlphaKey(vendors[i].Category), AlphaKey(vendors[j].Category)
		if ci != cj {
			return ci < cj
		}
		return AlphaKey(vendors[i].BusinessName) < AlphaKey(vendors[j].BusinessName)
	})
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
