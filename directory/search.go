package directory

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/killianmoore/web/members"
	"github.com/killianmoore/web/vendors"
)

var nonSearchable = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeForSearch lowercases and collapses every run of characters
// outside [a-z0-9] to one space
func NormalizeForSearch(value string) string {
	return strings.TrimSpace(nonSearchable.ReplaceAllString(strings.ToLower(value), " "))
}

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(NormalizeForSearch(strings.Join(fields, " ")), query)
}

// FilterMembers keeps members whose name, address, contact or section
// contains the query
func FilterMembers(list []members.Member, query string) []members.Member {
	q := NormalizeForSearch(query)
	filtered := []members.Member{}
	for _, m := range list {
		if matches(q, m.FullName, m.AddressLine1, m.AddressLine2, m.Phone, m.Email, m.Section) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// CategoryCount is one entry of the vendor category picker
type CategoryCount struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// VendorCategories counts vendors per category, sorted by name
func VendorCategories(list []vendors.Vendor) []CategoryCount {
	counts := make(map[string]int)
	for _, v := range list {
		name := strings.TrimSpace(v.Category)
		if name == "" {
			continue
		}
		counts[name]++
	}

	categories := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		categories = append(categories, CategoryCount{Name: name, Slug: slug.Make(name), Count: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		li, lj := strings.ToLower(categories[i].Name), strings.ToLower(categories[j].Name)
		if li != lj {
			return li < lj
		}
		return categories[i].Name < categories[j].Name
	})
	return categories
}

// ResolveCategory maps a requested category (name or slug) to a known
// category name. Unknown requests resolve to "" which means all categories.
func ResolveCategory(list []vendors.Vendor, requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return ""
	}
	for _, c := range VendorCategories(list) {
		if c.Name == requested || c.Slug == requested {
			return c.Name
		}
	}
	return ""
}

// FilterVendors keeps vendors in the resolved category whose listing
// contains the query
func FilterVendors(list []vendors.Vendor, query, category string) []vendors.Vendor {
	q := NormalizeForSearch(query)
	selected := ResolveCategory(list, category)

	filtered := []vendors.Vendor{}
	for _, v := range list {
		if selected != "" && strings.TrimSpace(v.Category) != selected {
			continue
		}
		if matches(q, v.Category, v.BusinessName, v.ContactName, v.Phone, v.Email, v.Website) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// FeaturedVendor is the first featured vendor, else the first vendor, else nil
func FeaturedVendor(list []vendors.Vendor) *vendors.Vendor {
	for i := range list {
		if list[i].Tier == vendors.TierFeatured {
			return &list[i]
		}
	}
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}
