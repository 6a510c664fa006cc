package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/orbis-edu/school-bi-api/internal/dto"
	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
	"github.com/orbis-edu/school-bi-api/pkg/export"
)

// Report formats accepted by the export endpoint.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

type academicDashboardProvider interface {
	Dashboard(ctx context.Context) (*dto.AcademicDashboardResponse, bool, error)
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table, title string) ([]byte, error)
}

// ReportResult is a rendered export ready to stream to the caller.
type ReportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ReportService renders the academic dashboard as a downloadable file.
// Exports are synchronous; the dataset is small enough that a job queue
// would be overhead.
type ReportService struct {
	academic academicDashboardProvider
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(academic academicDashboardProvider, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{academic: academic, csv: csv, pdf: pdf, logger: logger}
}

// AcademicReport renders the academic dashboard in the requested format.
// Unknown formats fail with a validation error.
func (s *ReportService) AcademicReport(ctx context.Context, format string) (*ReportResult, error) {
	if format != ReportFormatCSV && format != ReportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}

	dashboard, _, err := s.academic.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	table := buildAcademicTable(dashboard)
	timestamp := time.Now().UTC().Format("20060102_150405")

	result := &ReportResult{
		Filename: fmt.Sprintf("academic_report_%s.%s", timestamp, format),
	}
	switch format {
	case ReportFormatCSV:
		result.ContentType = "text/csv"
		result.Payload, err = s.csv.Render(table)
	case ReportFormatPDF:
		result.ContentType = "application/pdf"
		result.Payload, err = s.pdf.Render(table, "Academic Performance Report")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	return result, nil
}

func buildAcademicTable(dashboard *dto.AcademicDashboardResponse) export.Table {
	table := export.Table{Headers: []string{"Section", "Item", "Value"}}

	table.Append(map[string]string{"Section": "KPIs", "Item": "Global Average", "Value": fmt.Sprintf("%.1f", dashboard.KPIs.GlobalAverage)})
	table.Append(map[string]string{"Section": "KPIs", "Item": "Approval Rate (%)", "Value": fmt.Sprintf("%.1f", dashboard.KPIs.ApprovalRate)})
	table.Append(map[string]string{"Section": "KPIs", "Item": "Students At Risk", "Value": fmt.Sprintf("%d", dashboard.KPIs.RiskCount)})
	table.Append(map[string]string{"Section": "KPIs", "Item": "Attendance (%)", "Value": fmt.Sprintf("%.1f", dashboard.KPIs.Attendance)})

	for _, subject := range dashboard.DisciplinePerformance {
		table.Append(map[string]string{"Section": "Disciplines", "Item": subject.Name, "Value": fmt.Sprintf("%.1f", subject.Value)})
	}
	for _, point := range dashboard.Evolution {
		table.Append(map[string]string{"Section": "Evolution", "Item": point.Month, "Value": fmt.Sprintf("%.1f", point.Value)})
	}
	return table
}
