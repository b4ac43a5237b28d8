package exports

import (
	"fmt"
	"time"

	"github.com/killianmoore/web/directory"
	"github.com/killianmoore/web/frontpages"
)

// Export scopes
const (
	ScopeAll     = "all"
	ScopeQuality = "quality"
)

// NormalizeScope maps a requested scope to a known one. Anything other than
// quality, including an empty or unknown value, is the full bundle.
func NormalizeScope(scope string) string {
	if scope == ScopeQuality {
		return ScopeQuality
	}
	return ScopeAll
}

// File is one downloadable export file
type File struct {
	Name    string `json:"name"`
	Mime    string `json:"mime"`
	Content string `json:"content"`
}

// Bundle is the export response body
type Bundle struct {
	GeneratedAt string `json:"generatedAt"`
	Files       []File `json:"files"`
}

// Names lists the file names in bundle order
func (b Bundle) Names() []string {
	names := make([]string, len(b.Files))
	for i, f := range b.Files {
		names[i] = f.Name
	}
	return names
}

// BuildBundle renders the export files for a scope. The quality scope holds
// only the report; every other scope holds members, vendors, front pages and
// the report, in that order.
func BuildBundle(data *directory.Data, pages frontpages.Pages, scope string, now time.Time) (Bundle, error) {
	stamp := FileTimestamp(now)

	reportJSON, err := QualityReportJSON(now, data.LastUpdatedAt, data.Report)
	if err != nil {
		return Bundle{}, fmt.Errorf("render quality report: %w", err)
	}
	qualityFile := File{
		Name:    fmt.Sprintf("data-quality-report-%s.json", stamp),
		Mime:    MimeJSON,
		Content: reportJSON,
	}

	if scope == ScopeQuality {
		return Bundle{GeneratedAt: stamp, Files: []File{qualityFile}}, nil
	}

	pagesJSON, err := FrontPagesJSON(pages)
	if err != nil {
		return Bundle{}, fmt.Errorf("render front pages: %w", err)
	}

	return Bundle{
		GeneratedAt: stamp,
		Files: []File{
			{Name: fmt.Sprintf("members-export-%s.csv", stamp), Mime: MimeCSV, Content: MembersCSV(data.Members)},
			{Name: fmt.Sprintf("vendors-export-%s.csv", stamp), Mime: MimeCSV, Content: VendorsCSV(data.Vendors)},
			{Name: fmt.Sprintf("front-pages-export-%s.json", stamp), Mime: MimeJSON, Content: pagesJSON},
			qualityFile,
		},
	}, nil
}
