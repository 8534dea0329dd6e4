package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openuni-dev/admission-auction-api/internal/engine"
	"github.com/openuni-dev/admission-auction-api/internal/models"
	appErrors "github.com/openuni-dev/admission-auction-api/pkg/errors"
	"github.com/openuni-dev/admission-auction-api/pkg/export"
	"github.com/openuni-dev/admission-auction-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string    `json:"path"`
	Token        string    `json:"token"`
	URL          string    `json:"url"`
	Format       string    `json:"format"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ExportService renders enrollment outcomes to downloadable files behind
// signed URLs.
type ExportService struct {
	engine  *engine.Engine
	gate    AuthorizationGate
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(eng *engine.Engine, gate AuthorizationGate, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		engine:  eng,
		gate:    gate,
		storage: files,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
}

// Generate renders the enrollment outcome of a closed course. Requires the
// UNI_ADMIN role.
func (s *ExportService) Generate(ctx context.Context, callerID, courseID, format string) (*ExportResult, error) {
	if err := s.gate.Require(ctx, callerID, models.RoleUniAdmin); err != nil {
		return nil, err
	}

	course, err := s.engine.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course.State != models.CourseStateClosed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course enrollment is still open")
	}

	dataset, title := buildEnrollmentDataset(course)

	var payload []byte
	switch strings.ToLower(format) {
	case "csv", "":
		format = "csv"
		payload, err = s.csv.Render(dataset)
	case "pdf":
		payload, err = s.pdf.Render(dataset, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("enrollment_%s_%s.%s", sanitizeFilename(courseID), time.Now().UTC().Format("20060102_150405"), format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	token, expiresAt, err := s.signer.Generate(courseID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download token")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/download?token=%s", prefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

// Resolve validates a download token and opens the referenced file.
func (s *ExportService) Resolve(token string) (*os.File, error) {
	claims, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}
	file, err := s.storage.Open(claims.Filename)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}
	return file, nil
}

// Cleanup removes files older than ttl (defaults to the configured TTL).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func buildEnrollmentDataset(course models.Course) (export.Dataset, string) {
	rows := make([][]string, 0, len(course.EnrolledStudents))
	for i, studentID := range course.EnrolledStudents {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), studentID})
	}
	dataset := export.Dataset{
		Columns: []string{"Rank", "Student ID"},
		Rows:    rows,
	}
	title := fmt.Sprintf("Enrollment Outcome %s", course.ID)
	return dataset, title
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
