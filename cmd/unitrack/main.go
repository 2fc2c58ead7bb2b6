package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"unitrack/internal/bootstrap"
	editordto "unitrack/internal/modules/editor/dto"
	trackerdto "unitrack/internal/modules/tracker/dto"
	"unitrack/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "unitrack",
		Short:         "University application tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.unitrack)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newSignUpCmd(&dataDir))
	root.AddCommand(newSignInCmd(&dataDir))
	root.AddCommand(newSignOutCmd(&dataDir))
	root.AddCommand(newWhoamiCmd(&dataDir))
	root.AddCommand(newAppCmd(&dataDir))
	root.AddCommand(newChecklistCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newPluginCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp wires the app for a single command run and closes it afterwards.
func withApp(dataDir string, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the unitrack terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*dataDir, bootstrap.RunTUI)
		},
	}
}

func newSignUpCmd(dataDir *string) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup --name <name> --email <email>",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
				return fmt.Errorf("--name and --email are required")
			}
			var err error
			if !cmd.Flags().Changed("password") {
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				session, err := app.AccountCLI.SignUp(context.Background(), name, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s <%s>\n", session.Name, session.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted without echo when omitted)")
	return cmd
}

func newSignInCmd(dataDir *string) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signin --email <email>",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("--email is required")
			}
			var err error
			if !cmd.Flags().Changed("password") {
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				session, err := app.AccountCLI.SignIn(context.Background(), email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", session.Name, session.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted without echo when omitted)")
	return cmd
}

func newSignOutCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "End the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if _, err := app.AccountCLI.SignOut(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				session, err := app.AccountCLI.Current(context.Background())
				if err != nil {
					return err
				}
				if !session.Authenticated {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", session.Name, session.Email)
				return nil
			})
		},
	}
}

func newAppCmd(dataDir *string) *cobra.Command {
	appCmd := &cobra.Command{Use: "app", Short: "Application record commands"}

	var university, course, deadline, status, notes string
	var uniAssist, vpdRequired bool
	add := &cobra.Command{
		Use:   "add --university <name> --course <name>",
		Short: "Add an application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.EditorCLI.Create(context.Background(), editordto.Draft{
					University:  university,
					Course:      course,
					Deadline:    deadline,
					Status:      status,
					UniAssist:   uniAssist,
					VPDRequired: vpdRequired,
					Notes:       notes,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s — %s (%s)\n", out.University, out.Course, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&university, "university", "", "university name")
	add.Flags().StringVar(&course, "course", "", "course name")
	add.Flags().StringVar(&deadline, "deadline", "", "application deadline")
	add.Flags().StringVar(&status, "status", "", "stage: Interested|Applied|Interview|Accepted|Rejected|Enrolled")
	add.Flags().BoolVar(&uniAssist, "uni-assist", false, "goes through uni-assist")
	add.Flags().BoolVar(&vpdRequired, "vpd", false, "VPD required")
	add.Flags().StringVar(&notes, "notes", "", "free-form notes")
	appCmd.AddCommand(add)

	appCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List applications for the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				records, err := app.TrackerCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no applications")
					return nil
				}
				for _, record := range records {
					ready, total := record.DocumentsReady()
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-10s\t%s — %s\tdocs %d/%d\n",
						record.ID, record.Status, record.University, record.Course, ready, total)
				}
				return nil
			})
		},
	})

	var showID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show one application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(showID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				record, err := app.TrackerCLI.Get(context.Background(), showID)
				if err != nil {
					return err
				}
				printRecord(cmd, record)
				return nil
			})
		},
	}
	show.Flags().StringVar(&showID, "id", "", "record id")
	appCmd.AddCommand(show)

	var editID string
	edit := &cobra.Command{
		Use:   "edit --id <id>",
		Short: "Edit fields of an application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(editID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.EditorCLI.Edit(context.Background(), editID, func(draft editordto.Draft) editordto.Draft {
					// Only flags the user actually set overwrite the draft.
					if cmd.Flags().Changed("university") {
						draft.University = university
					}
					if cmd.Flags().Changed("course") {
						draft.Course = course
					}
					if cmd.Flags().Changed("deadline") {
						draft.Deadline = deadline
					}
					if cmd.Flags().Changed("status") {
						draft.Status = status
					}
					if cmd.Flags().Changed("uni-assist") {
						draft.UniAssist = uniAssist
					}
					if cmd.Flags().Changed("vpd") {
						draft.VPDRequired = vpdRequired
					}
					if cmd.Flags().Changed("notes") {
						draft.Notes = notes
					}
					return draft
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s — %s (%s)\n", out.University, out.Course, out.ID)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editID, "id", "", "record id")
	edit.Flags().StringVar(&university, "university", "", "university name")
	edit.Flags().StringVar(&course, "course", "", "course name")
	edit.Flags().StringVar(&deadline, "deadline", "", "application deadline")
	edit.Flags().StringVar(&status, "status", "", "stage: Interested|Applied|Interview|Accepted|Rejected|Enrolled")
	edit.Flags().BoolVar(&uniAssist, "uni-assist", false, "goes through uni-assist")
	edit.Flags().BoolVar(&vpdRequired, "vpd", false, "VPD required")
	edit.Flags().StringVar(&notes, "notes", "", "free-form notes")
	appCmd.AddCommand(edit)

	var removeID string
	var yes bool
	remove := &cobra.Command{
		Use:   "remove --id <id> --yes",
		Short: "Remove an application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(removeID) == "" {
				return fmt.Errorf("--id is required")
			}
			if !yes {
				return fmt.Errorf("pass --yes to confirm removal of %s", removeID)
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				if err := app.TrackerCLI.Remove(context.Background(), removeID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", removeID)
				return nil
			})
		},
	}
	remove.Flags().StringVar(&removeID, "id", "", "record id")
	remove.Flags().BoolVar(&yes, "yes", false, "confirm removal")
	appCmd.AddCommand(remove)

	return appCmd
}

func newChecklistCmd(dataDir *string) *cobra.Command {
	checklist := &cobra.Command{Use: "checklist", Short: "Document checklist commands"}

	var recordID, name, oldName, newName string

	add := &cobra.Command{
		Use:   "add --id <id> --name <document>",
		Short: "Add a document to a record's checklist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(recordID) == "" || strings.TrimSpace(name) == "" {
				return fmt.Errorf("--id and --name are required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.EditorCLI.AddItem(context.Background(), recordID, name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %q to %s\n", name, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&recordID, "id", "", "record id")
	add.Flags().StringVar(&name, "name", "", "document name")
	checklist.AddCommand(add)

	rename := &cobra.Command{
		Use:   "rename --id <id> --old <document> --new <document>",
		Short: "Rename a checklist document, keeping its position and state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(recordID) == "" || strings.TrimSpace(oldName) == "" || strings.TrimSpace(newName) == "" {
				return fmt.Errorf("--id, --old, and --new are required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.EditorCLI.RenameItem(context.Background(), recordID, oldName, newName)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "renamed %q to %q in %s\n", oldName, newName, out.ID)
				return nil
			})
		},
	}
	rename.Flags().StringVar(&recordID, "id", "", "record id")
	rename.Flags().StringVar(&oldName, "old", "", "current document name")
	rename.Flags().StringVar(&newName, "new", "", "new document name")
	checklist.AddCommand(rename)

	remove := &cobra.Command{
		Use:   "remove --id <id> --name <document>",
		Short: "Remove a document from a record's checklist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(recordID) == "" || strings.TrimSpace(name) == "" {
				return fmt.Errorf("--id and --name are required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.EditorCLI.RemoveItem(context.Background(), recordID, name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %q from %s\n", name, out.ID)
				return nil
			})
		},
	}
	remove.Flags().StringVar(&recordID, "id", "", "record id")
	remove.Flags().StringVar(&name, "name", "", "document name")
	checklist.AddCommand(remove)

	toggle := &cobra.Command{
		Use:   "toggle --id <id> --name <document>",
		Short: "Toggle a checklist document done/not done",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(recordID) == "" || strings.TrimSpace(name) == "" {
				return fmt.Errorf("--id and --name are required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.EditorCLI.ToggleItem(context.Background(), recordID, name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "toggled %q in %s\n", name, out.ID)
				return nil
			})
		},
	}
	toggle.Flags().StringVar(&recordID, "id", "", "record id")
	toggle.Flags().StringVar(&name, "name", "", "document name")
	checklist.AddCommand(toggle)

	return checklist
}

func newStatsCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show application statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				stats, err := app.TrackerCLI.Stats(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total=%d applied=%d accepted=%d pending=%d\n",
					stats.Total, stats.Applied, stats.Accepted, stats.Pending)
				return nil
			})
		},
	}
}

func newPluginCmd(dataDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Exporter plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exporter plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				plugins, err := app.ExportCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				results, err := app.ExportCLI.Doctor(context.Background())
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})

	var formatsPluginName string
	formats := &cobra.Command{
		Use:   "formats --plugin <name>",
		Short: "List export formats offered by a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(formatsPluginName) == "" {
				return fmt.Errorf("--plugin is required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				items, err := app.ExportCLI.ListFormats(context.Background(), formatsPluginName)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no formats")
					return nil
				}
				for _, item := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s ext=%s timeout_ms=%d title=%q\n", item.ID, item.FileExt, item.TimeoutMS, item.Title)
				}
				return nil
			})
		},
	}
	formats.Flags().StringVar(&formatsPluginName, "plugin", "", "plugin name")
	plugin.AddCommand(formats)

	return plugin
}

func newExportCmd(dataDir *string) *cobra.Command {
	var pluginName, formatID, outPath string
	cmd := &cobra.Command{
		Use:   "export --plugin <name> --format <id>",
		Short: "Export the signed-in account's applications via a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(pluginName) == "" || strings.TrimSpace(formatID) == "" {
				return fmt.Errorf("--plugin and --format are required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ExportCLI.Export(context.Background(), pluginName, formatID)
				if err != nil {
					return err
				}
				target := outPath
				if target == "" {
					cwd, err := os.Getwd()
					if err != nil {
						return err
					}
					target = filepath.Join(cwd, out.Filename)
				}
				if err := os.WriteFile(target, []byte(out.Payload), 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				if strings.TrimSpace(out.Stderr) != "" {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s/%s to %s\n", out.PluginName, out.FormatID, target)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&pluginName, "plugin", "", "plugin name")
	cmd.Flags().StringVar(&formatID, "format", "", "format id")
	cmd.Flags().StringVar(&outPath, "out", "", "output path (defaults to ./<suggested filename>)")
	return cmd
}

func printRecord(cmd *cobra.Command, record trackerdto.Record) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "id: %s\nuniversity: %s\ncourse: %s\nstatus: %s\ndeadline: %s\nuni-assist: %t\nvpd: %t\n",
		record.ID, record.University, record.Course, record.Status, record.Deadline, record.UniAssist, record.VPDRequired)
	_, _ = fmt.Fprintln(out, "documents:")
	for _, name := range record.Documents.Names() {
		mark := " "
		if done, _ := record.Documents.Get(name); done {
			mark = "x"
		}
		_, _ = fmt.Fprintf(out, "  [%s] %s\n", mark, name)
	}
	if strings.TrimSpace(record.Notes) != "" {
		_, _ = fmt.Fprintf(out, "notes: %s\n", record.Notes)
	}
}
