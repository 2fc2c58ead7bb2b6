package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	accountinadapter "unitrack/internal/modules/account/adapter/in"
	accountoutadapter "unitrack/internal/modules/account/adapter/out"
	accountservice "unitrack/internal/modules/account/service"
	accountusecase "unitrack/internal/modules/account/usecase"
	editorinadapter "unitrack/internal/modules/editor/adapter/in"
	editorservice "unitrack/internal/modules/editor/service"
	editorusecase "unitrack/internal/modules/editor/usecase"
	exportinadapter "unitrack/internal/modules/export/adapter/in"
	exportoutadapter "unitrack/internal/modules/export/adapter/out"
	exportservice "unitrack/internal/modules/export/service"
	exportusecase "unitrack/internal/modules/export/usecase"
	trackerinadapter "unitrack/internal/modules/tracker/adapter/in"
	trackeroutadapter "unitrack/internal/modules/tracker/adapter/out"
	trackerservice "unitrack/internal/modules/tracker/service"
	trackerusecase "unitrack/internal/modules/tracker/usecase"
	"unitrack/internal/platform/clock"
	"unitrack/internal/platform/config"
	"unitrack/internal/platform/id"
	"unitrack/internal/platform/kv"
	"unitrack/internal/platform/logging"
	uiapp "unitrack/internal/ui/app"
)

// App wires every module once and hands out the inbound adapters.
type App struct {
	AccountCLI *accountinadapter.CLIHandler
	TrackerCLI *trackerinadapter.CLIHandler
	EditorCLI  *editorinadapter.CLIHandler
	EditorTUI  *editorinadapter.TUIHandler
	ExportCLI  *exportinadapter.CLIHandler

	store *kv.Store
}

func New(cfg config.Config) (*App, error) {
	store, err := kv.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log := logging.NewDefault(os.Stderr, slog.LevelWarn)

	accountUC := accountusecase.NewInteractor(
		accountservice.NewAccountService(accountoutadapter.NewKVRegistryStore(store, log)),
		accountoutadapter.NewKVSessionStore(store, log),
		cfg.SignInDelay,
	)

	trackerUC := trackerusecase.NewInteractor(
		trackerservice.NewRecordService(trackeroutadapter.NewKVRecordStore(store, log), id.UUID{}),
		accountUC,
	)

	editorUC := editorusecase.NewInteractor(
		editorservice.NewEditorService(cfg.DefaultDocuments),
		trackerUC,
	)

	exportUC := exportusecase.NewInteractor(
		exportservice.NewExportService(
			exportoutadapter.NewFileManifestStore(cfg.PluginsPath),
			exportoutadapter.NewGRPCHost(),
		),
		accountUC,
		trackerUC,
		clock.SystemClock{},
		cfg.DataDir,
	)

	return &App{
		AccountCLI: accountinadapter.NewCLIHandler(accountUC),
		TrackerCLI: trackerinadapter.NewCLIHandler(trackerUC),
		EditorCLI:  editorinadapter.NewCLIHandler(editorUC),
		EditorTUI:  editorinadapter.NewTUIHandler(editorUC),
		ExportCLI:  exportinadapter.NewCLIHandler(exportUC),
		store:      store,
	}, nil
}

// Close releases the underlying store.
func (a *App) Close() error {
	return a.store.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AccountCLI, app.TrackerCLI, app.EditorTUI, app.ExportCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
