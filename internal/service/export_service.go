package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type exportBookingRepository interface {
	List(ctx context.Context, filter models.BookingFilter) ([]models.BookingEntry, int, error)
}

type exportArchive interface {
	Save(filename string, data []byte) (string, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// archiveRetention bounds how long rendered export files stay on disk.
const archiveRetention = 24 * time.Hour

// ExportService renders booking reports as downloadable files. When an
// archive store is configured, every rendered file is also persisted there
// and stale files are pruned on the way.
type ExportService struct {
	repo    exportBookingRepository
	archive exportArchive
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs the service. archive may be nil to disable
// on-disk copies.
func NewExportService(repo exportBookingRepository, archive exportArchive, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, archive: archive, csv: export.NewCSVExporter(), pdf: export.NewPDFExporter(), logger: logger}
}

// ExportResult carries the rendered file and its metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportBookings renders a photographer's bookings in the requested format.
// Blocked mirrors are included so the report matches the calendar.
func (s *ExportService) ExportBookings(ctx context.Context, filter models.BookingFilter, format ExportFormat) (*ExportResult, error) {
	filter.PageSize = 200
	entries, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings for export")
	}

	data := export.Dataset{
		Headers: []string{"Date", "Start", "End", "Client", "Service", "Package", "Price", "Status"},
		Rows:    make([]map[string]string, 0, len(entries)),
	}
	for _, e := range entries {
		data.Rows = append(data.Rows, map[string]string{
			"Date":    e.EventDate.Format("2006-01-02"),
			"Start":   e.StartTime,
			"End":     e.EndTime,
			"Client":  e.ClientName,
			"Service": e.ServiceType,
			"Package": e.Package,
			"Price":   fmt.Sprintf("%.2f", e.Price),
			"Status":  string(e.Status),
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	var result *ExportResult
	switch format {
	case FormatCSV:
		raw, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render CSV export")
		}
		result = &ExportResult{FileName: fmt.Sprintf("bookings_%s.csv", stamp), ContentType: "text/csv", Data: raw}
	case FormatPDF:
		subtitle := fmt.Sprintf("%d bookings, generated %s", len(entries), time.Now().UTC().Format("2006-01-02 15:04"))
		raw, err := s.pdf.Render(data, "Booking Report", subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render PDF export")
		}
		result = &ExportResult{FileName: fmt.Sprintf("bookings_%s.pdf", stamp), ContentType: "application/pdf", Data: raw}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	s.archiveResult(result)
	return result, nil
}

// archiveResult stores a copy of the rendered file and prunes stale ones.
// Failures here never fail the export itself.
func (s *ExportService) archiveResult(result *ExportResult) {
	if s.archive == nil {
		return
	}
	if _, err := s.archive.Save(result.FileName, result.Data); err != nil {
		s.logger.Sugar().Warnw("failed to archive export", "file", result.FileName, "error", err)
		return
	}
	if _, err := s.archive.CleanupOlderThan(archiveRetention); err != nil {
		s.logger.Sugar().Warnw("export archive cleanup failed", "error", err)
	}
}
