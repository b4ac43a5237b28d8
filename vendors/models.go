package vendors

// Column positions in the vendors CSV
const (
	ColCategory          = 0
	ColCompanyName       = 1
	ColPhone             = 6
	ColEmail             = 7
	ColWebsite           = 8
	ColFirstName         = 9
	ColLastName          = 10
	ColSecondaryCategory = 14

	// MinColumns is the header width the positional contract needs
	MinColumns = 15
)

// Tier controls listing prominence. The mapper always assigns TierStandard.
type Tier string

const (
	TierStandard Tier = "standard"
	TierFeatured Tier = "featured"
)

// Uncategorized is assigned when no category has been seen yet
const Uncategorized = "Uncategorized"

// DefaultContactName is used when a row carries no contact person
const DefaultContactName = "Office"

// Vendor is a single vendor listing
type Vendor struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Website      string `json:"website,omitempty"`
	Tier         Tier   `json:"tier"`
	Blurb        string `json:"blurb,omitempty"`
}

// Qualifies reports whether the vendor has a name and a phone or email
func (v Vendor) Qualifies() bool {
	return v.BusinessName != "" && (v.Phone != "" || v.Email != "")
}

// MissingCategory is true for blank or fallback categories
func (v Vendor) MissingCategory() bool {
	return v.Category == "" || v.Category == Uncategorized
}
