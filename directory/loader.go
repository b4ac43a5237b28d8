package directory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/killianmoore/web/common"
	"github.com/killianmoore/web/members"
	"github.com/killianmoore/web/parsers"
	"github.com/killianmoore/web/vendors"
	"go.uber.org/zap"
)

// Pipeline outcomes that end in the sample dataset
var (
	ErrSourceMissing  = errors.New("source file does not exist")
	ErrNoRecords      = errors.New("no qualifying records")
	ErrHeaderMismatch = errors.New("header does not match column contract")
)

// Origin tells where a record set came from
type Origin string

const (
	OriginCSV      Origin = "csv"
	OriginFallback Origin = "fallback"
)

// Source reads the members and vendors CSV files. Nothing is cached: every
// call re-reads the files.
type Source struct {
	MembersPath string
	VendorsPath string

	// Strict turns header mismatches and read failures into errors instead
	// of falling back to the sample dataset
	Strict bool

	Log *zap.Logger
}

// Data is one consistent read of the directory
type Data struct {
	Members       []members.Member
	Vendors       []vendors.Vendor
	MembersOrigin Origin
	VendorsOrigin Origin
	Report        Report
	LastUpdatedAt *time.Time
}

// LoadMembers parses the members file. It returns ErrSourceMissing or
// ErrNoRecords when there is nothing to show.
func (s *Source) LoadMembers() ([]members.Member, error) {
	rows, err := s.readRows(s.MembersPath, members.MinColumns)
	if err != nil {
		return nil, err
	}
	list := members.MapMembers(rows)
	if len(list) == 0 {
		return nil, ErrNoRecords
	}
	return list, nil
}

// LoadVendors parses the vendors file. It returns ErrSourceMissing or
// ErrNoRecords when there is nothing to show.
func (s *Source) LoadVendors() ([]vendors.Vendor, error) {
	rows, err := s.readRows(s.VendorsPath, vendors.MinColumns)
	if err != nil {
		return nil, err
	}
	list := vendors.MapVendors(rows)
	if len(list) == 0 {
		return nil, ErrNoRecords
	}
	return list, nil
}

// MembersOrFallback substitutes the sample members when the file is missing
// or yields nothing. Other failures fall back too unless Strict is set.
func (s *Source) MembersOrFallback() ([]members.Member, Origin, error) {
	list, err := s.LoadMembers()
	if err == nil {
		return list, OriginCSV, nil
	}
	if err := s.fallbackAllowed(s.MembersPath, err); err != nil {
		return nil, "", err
	}
	return members.SampleMembers(), OriginFallback, nil
}

// VendorsOrFallback substitutes the sample vendors, like MembersOrFallback
func (s *Source) VendorsOrFallback() ([]vendors.Vendor, Origin, error) {
	list, err := s.LoadVendors()
	if err == nil {
		return list, OriginCSV, nil
	}
	if err := s.fallbackAllowed(s.VendorsPath, err); err != nil {
		return nil, "", err
	}
	return vendors.SampleVendors(), OriginFallback, nil
}

// Load reads both files and builds the quality report
func (s *Source) Load() (*Data, error) {
	memberList, membersOrigin, err := s.MembersOrFallback()
	if err != nil {
		return nil, err
	}
	vendorList, vendorsOrigin, err := s.VendorsOrFallback()
	if err != nil {
		return nil, err
	}

	return &Data{
		Members:       memberList,
		Vendors:       vendorList,
		MembersOrigin: membersOrigin,
		VendorsOrigin: vendorsOrigin,
		Report:        BuildReport(memberList, vendorList),
		LastUpdatedAt: s.LastUpdatedAt(),
	}, nil
}

// LastUpdatedAt is the newest modification time of the two files, or nil
// when neither exists
func (s *Source) LastUpdatedAt() *time.Time {
	var latest *time.Time
	for _, path := range []string{s.MembersPath, s.VendorsPath} {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		modTime := info.ModTime().UTC()
		if latest == nil || modTime.After(*latest) {
			latest = &modTime
		}
	}
	return latest
}

func (s *Source) readRows(path string, minColumns int) ([]parsers.Row, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSourceMissing
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := parsers.ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, ErrNoRecords
	}

	if verr := common.ValidateMinColumns(path, rows[0], minColumns); verr != nil {
		if s.Strict {
			return nil, fmt.Errorf("%w: %s", ErrHeaderMismatch, verr.Message)
		}
		s.logger().Warn("csv header does not match column contract",
			zap.String("path", path), zap.Int("columns", len(rows[0])), zap.Int("expected", minColumns))
	}

	return rows, nil
}

// fallbackAllowed logs the fallback decision, or returns the error when
// Strict forbids masking it
func (s *Source) fallbackAllowed(path string, cause error) error {
	expected := errors.Is(cause, ErrSourceMissing) || errors.Is(cause, ErrNoRecords)
	if s.Strict && !expected {
		return cause
	}
	s.logger().Warn("using sample directory data", zap.String("path", path), zap.Error(cause))
	return nil
}

func (s *Source) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
