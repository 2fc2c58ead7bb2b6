package out

import (
	"context"

	"unitrack/internal/modules/export/domain"
)

// ManifestStore loads the installed exporter manifests.
type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs exporter binaries out of process.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListFormats(ctx context.Context, manifest domain.Manifest) ([]domain.FormatDescriptor, error)
	Export(ctx context.Context, manifest domain.Manifest, input domain.ExportRequest) (domain.ExportResult, error)
}
