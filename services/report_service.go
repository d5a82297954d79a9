package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/karmic/meals-api/models"
	"github.com/rs/zerolog/log"
)

// DashboardAggregator provides the per-item order totals a report is built from
type DashboardAggregator interface {
	AggregateByItem(ctx context.Context) ([]models.DashboardRow, error)
}

// ArchivedReport points at a report stored in S3
type ArchivedReport struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// DashboardReport is a rendered dashboard and the moment it was generated
type DashboardReport struct {
	PDF         []byte
	GeneratedAt time.Time
}

// Filename is the download name of the report, dated by its generation time
func (r *DashboardReport) Filename() string {
	return fmt.Sprintf("dashboard_%s.pdf", r.GeneratedAt.Format("2006-01-02"))
}

// ReportService renders the chef dashboard as PDF and archives it
type ReportService struct {
	aggregator DashboardAggregator
	storage    S3Interface // nil when archiving is not configured
	now        func() time.Time
}

// NewReportService creates a new ReportService. storage may be nil; clock
// defaults to time.Now.
func NewReportService(aggregator DashboardAggregator, storage S3Interface, clock func() time.Time) *ReportService {
	if clock == nil {
		clock = time.Now
	}
	return &ReportService{aggregator: aggregator, storage: storage, now: clock}
}

// DashboardPDF aggregates the current orders and renders them
func (s *ReportService) DashboardPDF(ctx context.Context) (*DashboardReport, error) {
	rows, err := s.aggregator.AggregateByItem(ctx)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now()
	pdf, err := RenderDashboardPDF(rows, generatedAt)
	if err != nil {
		return nil, err
	}
	return &DashboardReport{PDF: pdf, GeneratedAt: generatedAt}, nil
}

// ArchiveDashboard renders the dashboard, uploads it and returns a presigned link
func (s *ReportService) ArchiveDashboard(ctx context.Context) (*ArchivedReport, error) {
	if s.storage == nil {
		return nil, ErrReportStorageUnavailable
	}

	report, err := s.DashboardPDF(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/dashboard_%d.pdf", report.GeneratedAt.Unix())
	if err := s.storage.PutObject(ctx, key, report.PDF, "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to archive dashboard: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, key)
	if err != nil {
		if delErr := s.storage.DeleteObject(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("Failed to remove unreachable report")
		}
		return nil, fmt.Errorf("failed to link archived dashboard: %w", err)
	}

	log.Info().Str("key", key).Msg("Dashboard report archived")
	return &ArchivedReport{Key: key, URL: url}, nil
}

// RenderDashboardPDF renders the per-item totals as a one-table PDF document
func RenderDashboardPDF(rows []models.DashboardRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetCreationDate(generatedAt)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Chef Dashboard - Orders per Item", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, "Generated: "+generatedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 10, "Food Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 10, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 10, "Session", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Ordered", "1", 1, "C", false, 0, "")

	var total int64
	pdf.SetFont("Arial", "", 12)
	for _, row := range rows {
		pdf.CellFormat(70, 10, tr(row.FoodItem), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 10, tr(row.Day), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 10, tr(row.Session), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%d", row.TotalOrdered), "1", 1, "R", false, 0, "")
		total += row.TotalOrdered
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 10, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%d", total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render dashboard PDF: %w", err)
	}
	return buf.Bytes(), nil
}
