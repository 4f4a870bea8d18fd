package export

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/Domenick1991/studiobooking/internal/repository"
)

type ExportUseCase interface {
	Export(ctx context.Context, from, to string) (*Result, error)
}

// Result is a ready-to-download CSV document.
type Result struct {
	Filename string
	CSV      string
}

type ExportService struct {
	repo    repository.BookingRepository
	catalog *domain.Catalog
}

func NewExportService(repo repository.BookingRepository, catalog *domain.Catalog) *ExportService {
	return &ExportService{repo: repo, catalog: catalog}
}

// Export collects every booking whose date falls in [from, to] inclusive and
// renders it as CSV. Dates are YYYY-MM-DD, so plain string comparison is the
// range rule. An empty result is ErrNothingToExport, never an empty file.
func (s *ExportService) Export(ctx context.Context, from, to string) (*Result, error) {
	if from == "" {
		return nil, domain.MissingField("from")
	}
	if to == "" {
		return nil, domain.MissingField("to")
	}
	if to < from {
		return nil, domain.InvalidField("to", "end of range precedes start")
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []domain.Booking
	for _, b := range all {
		if b.Date >= from && b.Date <= to {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) == 0 {
		return nil, domain.ErrNothingToExport
	}

	s.sortForExport(filtered)

	return &Result{
		Filename: fmt.Sprintf("bookings_%s_to_%s.csv", from, to),
		CSV:      s.toCSV(filtered),
	}, nil
}

// sortForExport orders rows by studio catalog position (unknown studios
// last), then date, then start time.
func (s *ExportService) sortForExport(bookings []domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if pa, pb := s.catalog.Position(a.Studio), s.catalog.Position(b.Studio); pa != pb {
			return pa < pb
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.StartTime < b.StartTime
	})
}

var csvHeaders = []string{"ID", "Studio", "Date", "Start Time", "End Time", "Name", "Recording Purpose", "Subject"}

// toCSV writes the fixed 8-column layout. Every field is quoted and embedded
// quotes doubled, matching the exporter this format was lifted from.
func (s *ExportService) toCSV(bookings []domain.Booking) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(csvHeaders, ","))

	for _, b := range bookings {
		fields := []string{
			b.ID,
			s.catalog.DisplayName(b.Studio),
			b.Date,
			b.StartTime,
			b.EndTime,
			b.Name,
			string(b.Purpose),
			b.Subject,
		}
		sb.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
			sb.WriteByte('"')
		}
	}
	return sb.String()
}

var _ ExportUseCase = (*ExportService)(nil)
