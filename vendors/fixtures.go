package vendors

// SampleVendors is shown whenever the vendors CSV is missing or yields no
// qualifying rows. Tiers and blurbs here are curated by hand.
func SampleVendors() []Vendor {
	out := make([]Vendor, len(sampleVendors))
	copy(out, sampleVendors)
	return out
}

var sampleVendors = []Vendor{
	{
		ID:           "v-001",
		Category:     "Painting",
		BusinessName: "Manhattan Paint & Finish",
		ContactName:  "Liam O'Connell",
		Phone:        "212-555-0123",
		Email:        "office@manhattanpaint.com",
		Website:      "https://example.com/paint",
		Tier:         TierFeatured,
		Blurb:        "High-end interior and exterior painting for residential properties.",
	},
	{ID: "v-002", Category: "Plumbing", BusinessName: "West Side Plumbing Co.", ContactName: "Erik Nolan", Phone: "646-555-0111", Email: "service@wspco.com", Website: "https://example.com/plumbing", Tier: TierStandard},
	{ID: "v-003", Category: "Electrical", BusinessName: "Brightline Electric NYC", ContactName: "Michelle Tran", Phone: "917-555-0173", Email: "dispatch@brightline.nyc", Website: "https://example.com/electrical", Tier: TierStandard},
	{ID: "v-004", Category: "HVAC", BusinessName: "Hudson Air Systems", ContactName: "Paul Donovan", Phone: "212-555-0142", Email: "service@hudsonair.com", Website: "https://example.com/hvac", Tier: TierStandard},
	{ID: "v-005", Category: "Flooring", BusinessName: "Fifth Ave Floor Works", ContactName: "Natalie Brooks", Phone: "646-555-0183", Email: "hello@floorworks.com", Website: "https://example.com/flooring", Tier: TierStandard},
	{ID: "v-006", Category: "Elevator", BusinessName: "Metro Lift Services", ContactName: "Gerard Pike", Phone: "212-555-0158", Email: "support@metrolift.com", Website: "https://example.com/elevator", Tier: TierStandard},
	{ID: "v-007", Category: "Landscaping", BusinessName: "Emerald Exterior Care", ContactName: "Ana Rosales", Phone: "917-555-0184", Email: "team@emeraldexterior.com", Website: "https://example.com/landscaping", Tier: TierStandard},
	{ID: "v-008", Category: "Roofing", BusinessName: "Skyline Roofing Group", ContactName: "Joseph Kim", Phone: "212-555-0166", Email: "quotes@skylineroofing.com", Website: "https://example.com/roofing", Tier: TierStandard},
	{ID: "v-009", Category: "Masonry", BusinessName: "CityStone Restoration", ContactName: "Declan Hennessy", Phone: "646-555-0139", Email: "project@citystone.io", Website: "https://example.com/masonry", Tier: TierStandard},
	{
		ID:           "v-010",
		Category:     "Security",
		BusinessName: "Summit Access Control",
		ContactName:  "Rachel Cohen",
		Phone:        "917-555-0190",
		Email:        "info@summitaccess.com",
		Website:      "https://example.com/security",
		Tier:         TierFeatured,
		Blurb:        "Building entry, camera, and access-control systems for co-ops.",
	},
}
