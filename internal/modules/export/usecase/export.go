package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"unitrack/internal/platform/clock"
	"unitrack/internal/platform/slug"

	accountin "unitrack/internal/modules/account/port/in"
	"unitrack/internal/modules/export/domain"
	"unitrack/internal/modules/export/dto"
	"unitrack/internal/modules/export/port/in"
	"unitrack/internal/modules/export/service"
	trackerin "unitrack/internal/modules/tracker/port/in"
)

// Interactor feeds the signed-in account's record set to exporter plugins.
// The records are serialized once here; exporters never touch the store.
type Interactor struct {
	svc      *service.ExportService
	accounts accountin.Usecase
	tracker  trackerin.Usecase
	clk      clock.Clock
	dataDir  string
}

func NewInteractor(svc *service.ExportService, accounts accountin.Usecase, tracker trackerin.Usecase, clk clock.Clock, dataDir string) in.Usecase {
	return &Interactor{svc: svc, accounts: accounts, tracker: tracker, clk: clk, dataDir: dataDir}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListFormats(ctx context.Context, pluginName string) ([]dto.FormatInfo, error) {
	return i.svc.ListFormats(ctx, pluginName)
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	session, err := i.accounts.Current(ctx)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("resolve session: %w", err)
	}
	records, err := i.tracker.List(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("marshal records: %w", err)
	}

	cwd := input.Cwd
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return dto.ExportOutput{}, fmt.Errorf("resolve cwd: %w", err)
		}
	}
	env := map[string]string{"UNITRACK_EXPORTED_AT": i.clk.Now().Format(time.RFC3339)}
	for key, value := range input.Env {
		env[key] = value
	}
	exportCtx := domain.ExportContext{
		DataDir: i.dataDir,
		Email:   session.Email,
		Cwd:     cwd,
		Env:     env,
	}
	out, format, err := i.svc.Export(ctx, input, string(recordsJSON), exportCtx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	out.Filename = fmt.Sprintf("applications-%s.%s", slug.Make(session.Email), format.FileExt)
	return out, nil
}
