package directory

import (
	"time"

	"github.com/killianmoore/web/members"
	"github.com/killianmoore/web/vendors"
)

// isoMillis matches JavaScript's Date.toISOString
const isoMillis = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in UTC with millisecond precision. Every
// timestamp the directory and its exports emit uses it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// Issue entities and fields
const (
	EntityMember = "member"
	EntityVendor = "vendor"

	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldCategory = "category"
)

// Issue is one data-quality finding
type Issue struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Summary holds the aggregate counts of a report
type Summary struct {
	MembersTotal           int `json:"members_total"`
	MembersMissingPhone    int `json:"members_missing_phone"`
	MembersMissingEmail    int `json:"members_missing_email"`
	VendorsTotal           int `json:"vendors_total"`
	VendorsMissingPhone    int `json:"vendors_missing_phone"`
	VendorsMissingEmail    int `json:"vendors_missing_email"`
	VendorsMissingCategory int `json:"vendors_missing_category"`
	IssuesTotal            int `json:"issues_total"`
}

// Report is a summary plus the ordered issue list
type Report struct {
	Summary
	Issues []Issue `json:"issues"`
}

// BuildReport scans members then vendors. Member issues come first, in input
// order, phone before email; vendor issues follow with category, phone, email.
// The counts are tallied separately from the issue list.
func BuildReport(memberList []members.Member, vendorList []vendors.Vendor) Report {
	issues := []Issue{}

	for _, m := range memberList {
		if m.Phone == "" {
			issues = append(issues, Issue{EntityMember, m.ID, m.FullName, FieldPhone, "Member is missing phone number"})
		}
		if m.Email == "" {
			issues = append(issues, Issue{EntityMember, m.ID, m.FullName, FieldEmail, "Member is missing email address"})
		}
	}

	for _, v := range vendorList {
		if v.MissingCategory() {
			issues = append(issues, Issue{EntityVendor, v.ID, v.BusinessName, FieldCategory, "Vendor is missing category"})
		}
		if v.Phone == "" {
			issues = append(issues, Issue{EntityVendor, v.ID, v.BusinessName, FieldPhone, "Vendor is missing phone number"})
		}
		if v.Email == "" {
			issues = append(issues, Issue{EntityVendor, v.ID, v.BusinessName, FieldEmail, "Vendor is missing email address"})
		}
	}

	summary := Summary{
		MembersTotal: len(memberList),
		VendorsTotal: len(vendorList),
		IssuesTotal:  len(issues),
	}
	for _, m := range memberList {
		if m.Phone == "" {
			summary.MembersMissingPhone++
		}
		if m.Email == "" {
			summary.MembersMissingEmail++
		}
	}
	for _, v := range vendorList {
		if v.Phone == "" {
			summary.VendorsMissingPhone++
		}
		if v.Email == "" {
			summary.VendorsMissingEmail++
		}
		if v.MissingCategory() {
			summary.VendorsMissingCategory++
		}
	}

	return Report{Summary: summary, Issues: issues}
}
