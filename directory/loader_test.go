package directory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const membersHeader = "id,last,first,address,apt,phone,email,city,state,zip\n"
const vendorsHeader = "category,company,addr,city,state,zip,phone,email,website,first,last,c2,c3,c4,category_4\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSource_MissingFilesFallBack(t *testing.T) {
	dir := t.TempDir()
	source := &Source{
		MembersPath: filepath.Join(dir, "members.csv"),
		VendorsPath: filepath.Join(dir, "vendors.csv"),
	}

	_, err := source.LoadMembers()
	assert.True(t, errors.Is(err, ErrSourceMissing))

	data, err := source.Load()
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, data.MembersOrigin)
	assert.Equal(t, OriginFallback, data.VendorsOrigin)
	assert.Len(t, data.Members, 10)
	assert.Len(t, data.Vendors, 10)
	assert.Nil(t, data.LastUpdatedAt)
	assert.Equal(t, len(data.Members), data.Report.MembersTotal)
}

func TestSource_ReadsCSV(t *testing.T) {
	dir := t.TempDir()
	source := &Source{
		MembersPath: writeFile(t, dir, "members.csv", membersHeader+
			"1,Brennan,Jimmy,936 Fifth Avenue,,212-737-0349,jimmybillions@gmail.com,New York,NY,10021\n"+
			"2,Walsh,Nora,,,,nora@example.com,,,\n"),
		VendorsPath: writeFile(t, dir, "vendors.csv", vendorsHeader+
			"Plumbing,Able Pipes,,,,,555-0100,,,Ann,Lee,,,,\n"+
			",Best Drains,,,,,,best@example.com,,,,,,,\n"),
	}

	data, err := source.Load()
	require.NoError(t, err)

	assert.Equal(t, OriginCSV, data.MembersOrigin)
	assert.Equal(t, OriginCSV, data.VendorsOrigin)
	require.Len(t, data.Members, 2)
	assert.Equal(t, "m-csv-1", data.Members[0].ID)
	assert.Equal(t, "Walsh, Nora", data.Members[1].FullName)
	require.Len(t, data.Vendors, 2)
	assert.Equal(t, "Plumbing", data.Vendors[1].Category)
	require.NotNil(t, data.LastUpdatedAt)

	assert.Equal(t, 1, data.Report.MembersMissingPhone)
	assert.Equal(t, 1, data.Report.VendorsMissingPhone)
	assert.Equal(t, 1, data.Report.VendorsMissingEmail)
}

func TestSource_NoQualifyingRowsFallsBack(t *testing.T) {
	dir := t.TempDir()
	source := &Source{
		MembersPath: writeFile(t, dir, "members.csv", membersHeader+"1,,,,,,,,,\n2,Nobody,,,,,,,,\n"),
	}

	_, err := source.LoadMembers()
	assert.True(t, errors.Is(err, ErrNoRecords))

	list, origin, err := source.MembersOrFallback()
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, origin)
	assert.Equal(t, "m-001", list[0].ID)
}

func TestSource_HeaderOnlyFallsBack(t *testing.T) {
	dir := t.TempDir()
	source := &Source{
		VendorsPath: writeFile(t, dir, "vendors.csv", vendorsHeader),
		Strict:      true,
	}

	list, origin, err := source.VendorsOrFallback()
	require.NoError(t, err)
	assert.Equal(t, OriginFallback, origin)
	assert.Len(t, list, 10)
}

func TestSource_NarrowHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "members.csv", "id,last,first\n"+
		"1,Brennan,Jimmy,936 Fifth Avenue,,212-737-0349,,New York,NY,10021\n")

	lenient := &Source{MembersPath: path}
	list, origin, err := lenient.MembersOrFallback()
	require.NoError(t, err)
	assert.Equal(t, OriginCSV, origin, "Lenient mode keeps reading past a narrow header")
	assert.Len(t, list, 1)

	strict := &Source{MembersPath: path, Strict: true}
	_, _, err = strict.MembersOrFallback()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeaderMismatch))
	assert.Contains(t, err.Error(), "expected at least 10")

	_, err = strict.Load()
	assert.True(t, errors.Is(err, ErrHeaderMismatch))
}

func TestSource_LastUpdatedAtIsNewestFile(t *testing.T) {
	dir := t.TempDir()
	membersPath := writeFile(t, dir, "members.csv", membersHeader)
	vendorsPath := writeFile(t, dir, "vendors.csv", vendorsHeader)

	older := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 9, 8, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(membersPath, older, older))
	require.NoError(t, os.Chtimes(vendorsPath, newer, newer))

	source := &Source{MembersPath: membersPath, VendorsPath: vendorsPath}
	latest := source.LastUpdatedAt()
	require.NotNil(t, latest)
	assert.True(t, latest.Equal(newer))

	require.NoError(t, os.Remove(vendorsPath))
	latest = source.LastUpdatedAt()
	require.NotNil(t, latest)
	assert.True(t, latest.Equal(older))
}
