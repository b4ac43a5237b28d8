package exports

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/killianmoore/web/directory"
	"github.com/killianmoore/web/frontpages"
	"github.com/killianmoore/web/members"
	"github.com/killianmoore/web/vendors"
)

// Mime types of the generated files
const (
	MimeCSV  = "text/csv;charset=utf-8"
	MimeJSON = "application/json;charset=utf-8"
)

var (
	memberColumns = []string{"id", "section", "full_name", "address_line_1", "address_line_2", "phone", "email"}
	vendorColumns = []string{"id", "category", "business_name", "contact_name", "phone", "email", "website", "tier", "blurb"}
)

// FileTimestamp is directory.FormatTimestamp with ':' and '.' replaced by '-' so it
// can be used in a file name
func FileTimestamp(t time.Time) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(directory.FormatTimestamp(t))
}

// CSVEscape quotes a field only when it contains a comma, a double quote or
// a newline. Embedded quotes are doubled.
func CSVEscape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

func csvLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = CSVEscape(field)
	}
	return strings.Join(escaped, ",")
}

// MembersCSV renders members with a header row. Rows are joined by "\n"
// without a trailing newline.
func MembersCSV(list []members.Member) string {
	lines := make([]string, 0, len(list)+1)
	lines = append(lines, strings.Join(memberColumns, ","))
	for _, m := range list {
		lines = append(lines, csvLine([]string{
			m.ID, m.Section, m.FullName, m.AddressLine1, m.AddressLine2, m.Phone, m.Email,
		}))
	}
	return strings.Join(lines, "\n")
}

// VendorsCSV renders vendors with a header row. Missing website and blurb
// become empty fields.
func VendorsCSV(list []vendors.Vendor) string {
	lines := make([]string, 0, len(list)+1)
	lines = append(lines, strings.Join(vendorColumns, ","))
	for _, v := range list {
		lines = append(lines, csvLine([]string{
			v.ID, v.Category, v.BusinessName, v.ContactName, v.Phone, v.Email, v.Website, string(v.Tier), v.Blurb,
		}))
	}
	return strings.Join(lines, "\n")
}

// QualityReport is the exported form of a directory report
type QualityReport struct {
	GeneratedAt         string            `json:"generatedAt"`
	SourceLastUpdatedAt *string           `json:"sourceLastUpdatedAt"`
	Summary             directory.Summary `json:"summary"`
	Issues              []directory.Issue `json:"issues"`
}

// QualityReportJSON renders the report with a generation timestamp and the
// newest source modification time (null when no source file exists)
func QualityReportJSON(generatedAt time.Time, lastUpdatedAt *time.Time, report directory.Report) (string, error) {
	out := QualityReport{
		GeneratedAt: directory.FormatTimestamp(generatedAt),
		Summary:     report.Summary,
		Issues:      report.Issues,
	}
	if lastUpdatedAt != nil {
		formatted := directory.FormatTimestamp(*lastUpdatedAt)
		out.SourceLastUpdatedAt = &formatted
	}
	if out.Issues == nil {
		out.Issues = []directory.Issue{}
	}
	return indentJSON(out)
}

// FrontPagesJSON renders the front pages in page order
func FrontPagesJSON(pages frontpages.Pages) (string, error) {
	return indentJSON(pages)
}

// indentJSON encodes with two-space indentation and no HTML escaping
func indentJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
