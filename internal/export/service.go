package export

import (
	"context"
	"fmt"

	"leadlens/api/internal/record"
	"leadlens/api/internal/view"
)

// Service builds export artifacts from record sets. The uploader is optional;
// without one, Upload reports the store as unconfigured.
type Service struct {
	uploader *Uploader
}

// NewService creates an export service. uploader may be nil.
func NewService(uploader *Uploader) *Service {
	return &Service{uploader: uploader}
}

// Export renders the records in the requested format.
func (s *Service) Export(title string, records []record.Record, format Format) (*Result, error) {
	switch format {
	case FormatCSV:
		data, err := CSV(records)
		if err != nil {
			return nil, err
		}
		return &Result{
			Data:     data,
			Filename: sanitizeFilename(title) + ".csv",
			MimeType: "text/csv",
		}, nil

	case FormatPDF:
		html, err := RenderLeadsHTML(TemplateData{
			Title:   title,
			Cards:   view.Cards(records),
			Summary: fmt.Sprintf("%d leads", len(records)),
		})
		if err != nil {
			return nil, fmt.Errorf("render template: %w", err)
		}
		return renderPDF(html, title)

	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Upload pushes an artifact to object storage when configured.
func (s *Service) Upload(ctx context.Context, result *Result) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("object storage not configured")
	}
	return s.uploader.Upload(ctx, result)
}

// UploadConfigured reports whether exports can be pushed to object storage.
func (s *Service) UploadConfigured() bool {
	return s.uploader != nil
}
