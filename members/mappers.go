package members

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/killianmoore/web/parsers"
)

// MapMembers maps tokenized rows to members.
// Row 0 is the header and is skipped. Rows that do not qualify are dropped
// silently; IDs follow the data row position, so gaps are possible.
func MapMembers(rows []parsers.Row) []Member {
	if len(rows) < 2 {
		return nil
	}

	var members []Member
	for i, row := range rows[1:] {
		member := NormalizeMemberRow(row, i+1)
		if member.Qualifies() {
			members = append(members, member)
		}
	}
	return members
}

// NormalizeMemberRow builds a member from one positional data row
func NormalizeMemberRow(row parsers.Row, position int) Member {
	lastName := row.Field(ColLastName)
	firstName := row.Field(ColFirstName)
	apt := row.Field(ColApartment)

	if apt != "" {
		apt = "Apt. " + apt
	}

	addressLine2 := joinNonEmpty(", ", row.Field(ColCity), row.Field(ColState), row.Field(ColZip))
	addressLine2 = strings.Replace(addressLine2, ", ,", ",", 1)

	return Member{
		ID:           fmt.Sprintf("m-csv-%d", position),
		Section:      SectionFor(lastName),
		FullName:     strings.TrimSpace(joinNonEmpty(", ", lastName, firstName)),
		AddressLine1: joinNonEmpty(" ", row.Field(ColWorkAddress), apt),
		AddressLine2: addressLine2,
		Phone:        row.Field(ColPhone),
		Email:        row.Field(ColEmail),
	}
}

// SectionFor returns the alphabetical bucket for a last name ("Members B").
// An empty last name falls into "Members A".
func SectionFor(lastName string) string {
	letter := 'A'
	for _, r := range strings.TrimSpace(lastName) {
		letter = unicode.ToUpper(r)
		break
	}
	return "Members " + string(letter)
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
