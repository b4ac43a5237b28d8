package members

// Column positions in the members CSV. Index 0 is an unused ID column.
const (
	ColLastName    = 1
	ColFirstName   = 2
	ColWorkAddress = 3
	ColApartment   = 4
	ColPhone       = 5
	ColEmail       = 6
	ColCity        = 7
	ColState       = 8
	ColZip         = 9

	// MinColumns is the header width the positional contract needs
	MinColumns = 10
)

// Member is a single directory listing.
// ID is assigned per parse pass (m-csv-<n>) and is not stable across reads.
type Member struct {
	ID           string `json:"id"`
	Section      string `json:"section"`
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// Qualifies reports whether the member is worth listing: it needs a name and
// at least one way to reach them
func (m Member) Qualifies() bool {
	return m.FullName != "" && (m.Phone != "" || m.Email != "" || m.AddressLine1 != "")
}
