package members

// SampleMembers is shown whenever the members CSV is missing or yields no
// qualifying rows. Callers receive a copy.
func SampleMembers() []Member {
	out := make([]Member, len(sampleMembers))
	copy(out, sampleMembers)
	return out
}

var sampleMembers = []Member{
	{ID: "m-001", Section: "Members B", FullName: "Brennan, Jimmy", AddressLine1: "936 Fifth Avenue", AddressLine2: "New York, NY 10021", Phone: "212-737-0349", Email: "jimmybillions@gmail.com"},
	{ID: "m-002", Section: "Members B", FullName: "Brown, Daniel", AddressLine1: "357 East 60th Street", AddressLine2: "New York, NY 10022", Phone: "212-879-8020", Email: "dbrown1217@yahoo.com"},
	{ID: "m-003", Section: "Members B", FullName: "Burke, Pat", AddressLine1: "229 East 120th Street", AddressLine2: "New York, NY 10035", Phone: "646-672-5190", Email: "tobiaspburke@gmail.com"},
	{ID: "m-004", Section: "Members B", FullName: "Burke, Seamus", AddressLine1: "525 East 86th Street Apt. 1A", AddressLine2: "New York, NY 10028", Phone: "212-744-0355", Email: "s.burke@rcn.com"},
	{ID: "m-005", Section: "Members C", FullName: "Conway, Patrick", AddressLine1: "204 East 92nd Street", AddressLine2: "New York, NY 10128", Phone: "646-555-0191", Email: "pconway@aol.com"},
	{ID: "m-006", Section: "Members D", FullName: "Doyle, Garrett", AddressLine1: "415 West 52nd Street", AddressLine2: "New York, NY 10019", Phone: "212-555-0168", Email: "garrettdoyle@gmail.com"},
	{ID: "m-007", Section: "Members F", FullName: "Fallon, Anthony", AddressLine1: "301 East 83rd Street", AddressLine2: "New York, NY 10028", Phone: "917-555-0131", Email: "anthonyfallon@gmail.com"},
	{ID: "m-008", Section: "Members K", FullName: "Keegan, John", AddressLine1: "60 Riverside Boulevard", AddressLine2: "New York, NY 10069", Phone: "212-555-0104", Email: "jkeegan@icloud.com"},
	{ID: "m-009", Section: "Members M", FullName: "Moore, James", AddressLine1: "145 East 15th Street", AddressLine2: "New York, NY 10003", Phone: "646-555-0125", Email: "jmoore@outlook.com"},
	{ID: "m-010", Section: "Members R", FullName: "Riordan, Barry", AddressLine1: "89 Murray Street", AddressLine2: "New York, NY 10007", Phone: "212-555-0188", Email: "barryriordan@gmail.com"},
}
