package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	exportout "unitrack/internal/modules/export/adapter/out"
	"unitrack/internal/modules/export/domain"
	"unitrack/internal/modules/export/dto"
	"unitrack/internal/modules/export/service"
)

func writeManifests(t *testing.T, base string, manifests []domain.Manifest) {
	t.Helper()
	pluginsDir := filepath.Join(base, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	raw, err := json.Marshal(manifests)
	if err != nil {
		t.Fatalf("marshal manifests: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginsDir, "plugins.json"), raw, 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}
}

func writeBinary(t *testing.T, base string) (path, checksum string) {
	t.Helper()
	path = filepath.Join(base, "csv-exporter")
	payload := []byte("not-a-real-exporter")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write exporter binary: %v", err)
	}
	hash := sha256.Sum256(payload)
	return path, hex.EncodeToString(hash[:])
}

// fakeHost stands in for the go-plugin transport.
type fakeHost struct {
	formats []domain.FormatDescriptor
	result  domain.ExportResult
	gotReq  domain.ExportRequest
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }

func (h *fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "csv", Version: "1.0.0", Capabilities: []domain.Capability{domain.CapabilityExport}}, nil
}

func (h *fakeHost) ListFormats(context.Context, domain.Manifest) ([]domain.FormatDescriptor, error) {
	return h.formats, nil
}

func (h *fakeHost) Export(_ context.Context, _ domain.Manifest, req domain.ExportRequest) (domain.ExportResult, error) {
	h.gotReq = req
	return h.result, nil
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, _ := writeBinary(t, tmp)
	writeManifests(t, tmp, []domain.Manifest{{
		Name:         "csv",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       strings.Repeat("0", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}})

	svc := service.NewExportService(exportout.NewFileManifestStore(tmp), nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestExportRejectsDisabledExporter(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, checksum := writeBinary(t, tmp)
	writeManifests(t, tmp, []domain.Manifest{{
		Name:         "csv",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      false,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}})

	svc := service.NewExportService(exportout.NewFileManifestStore(tmp), &fakeHost{})
	_, _, err := svc.Export(context.Background(),
		dto.ExportInput{PluginName: "csv", FormatID: "csv"},
		"[]",
		domain.ExportContext{DataDir: tmp, Cwd: tmp},
	)
	if !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected ErrPluginDisabled, got %v", err)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, checksum := writeBinary(t, tmp)
	writeManifests(t, tmp, []domain.Manifest{{
		Name:         "csv",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}})

	host := &fakeHost{formats: []domain.FormatDescriptor{{ID: "csv", Title: "CSV", FileExt: "csv"}}}
	svc := service.NewExportService(exportout.NewFileManifestStore(tmp), host)
	_, _, err := svc.Export(context.Background(),
		dto.ExportInput{PluginName: "csv", FormatID: "xlsx"},
		"[]",
		domain.ExportContext{DataDir: tmp, Cwd: tmp},
	)
	if !errors.Is(err, domain.ErrFormatNotFound) {
		t.Fatalf("expected ErrFormatNotFound, got %v", err)
	}
}

func TestExportPassesRecordsToHost(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath, checksum := writeBinary(t, tmp)
	writeManifests(t, tmp, []domain.Manifest{{
		Name:         "csv",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}})

	host := &fakeHost{
		formats: []domain.FormatDescriptor{{ID: "csv", Title: "CSV", FileExt: "csv"}},
		result:  domain.ExportResult{Payload: "university,course\n", ExitCode: 0},
	}
	svc := service.NewExportService(exportout.NewFileManifestStore(tmp), host)
	recordsJSON := `[{"id":"1","university":"TU Munich","course":"Informatics"}]`
	out, format, err := svc.Export(context.Background(),
		dto.ExportInput{PluginName: "csv", FormatID: "csv"},
		recordsJSON,
		domain.ExportContext{DataDir: tmp, Email: "ana@example.com", Cwd: tmp},
	)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if host.gotReq.RecordsJSON != recordsJSON {
		t.Fatalf("host must receive the serialized record set, got %q", host.gotReq.RecordsJSON)
	}
	if out.Payload != "university,course\n" || format.FileExt != "csv" {
		t.Fatalf("unexpected export output: %+v format %+v", out, format)
	}
}
