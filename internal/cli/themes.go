package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Railly/tinte-sub002/internal/catalog"
	"github.com/Railly/tinte-sub002/internal/db"
	"github.com/Railly/tinte-sub002/internal/events"
	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/session"
)

var (
	themesImportPublic bool
	themesEditMode     string
	themesEditSet      []string
	themesEditOverride string
	themesEditPublic   bool
)

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesListCmd)
	themesCmd.AddCommand(themesShowCmd)
	themesCmd.AddCommand(themesImportCmd)
	themesCmd.AddCommand(themesEditCmd)
	themesCmd.AddCommand(themesDeleteCmd)

	themesImportCmd.Flags().BoolVar(&themesImportPublic, "public", false, "mark the imported theme public")

	themesEditCmd.Flags().StringVar(&themesEditMode, "mode", "", "mode to edit (light or dark, default from config)")
	themesEditCmd.Flags().StringArrayVar(&themesEditSet, "set", nil, "role=color assignment, repeatable (e.g. --set pr=#1e40af)")
	themesEditCmd.Flags().StringVar(&themesEditOverride, "override", "", "YAML or JSON file of override layers to attach")
	themesEditCmd.Flags().BoolVar(&themesEditPublic, "public", false, "save the theme as public")
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Manage themes",
	Long:  "List, inspect, import, edit and delete canonical themes.",
}

// themeEntry is a theme together with where it was found.
type themeEntry struct {
	Theme     models.Theme           `json:"theme"`
	Source    string                 `json:"source"`
	Overrides []models.OverrideLayer `json:"overrides,omitempty"`
}

// themeLibrary is the union of the user's saved themes and the catalog.
type themeLibrary struct {
	database *db.DB
	repo     *db.ThemeRepository
	events   *db.EventRepository
	entries  []themeEntry
}

func openLibrary(ctx context.Context) (*themeLibrary, error) {
	database, err := openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	lib := &themeLibrary{
		database: database,
		repo:     db.NewThemeRepository(database),
		events:   db.NewEventRepository(database),
	}

	saved, err := lib.repo.LoadUserThemes(ctx, currentIdentity().ID)
	if err != nil {
		database.Close()
		return nil, err
	}
	for _, data := range saved {
		lib.entries = append(lib.entries, themeEntry{Theme: data.Theme, Source: "saved", Overrides: data.Overrides})
	}

	catalogThemes, err := catalog.LoadThemesFromSearchPaths(projectDir)
	if err != nil {
		database.Close()
		return nil, err
	}
	for _, theme := range catalogThemes {
		lib.entries = append(lib.entries, themeEntry{Theme: theme, Source: theme.Provenance})
	}
	return lib, nil
}

func (l *themeLibrary) Close() error {
	return l.database.Close()
}

func (l *themeLibrary) themes() []models.Theme {
	return lo.Map(l.entries, func(e themeEntry, _ int) models.Theme { return e.Theme })
}

// find resolves name against saved themes first, then the catalog.
func (l *themeLibrary) find(name string) (themeEntry, error) {
	theme, err := catalog.Find(l.themes(), name)
	if err != nil {
		return themeEntry{}, err
	}
	for _, entry := range l.entries {
		if entry.Theme.ID == theme.ID && entry.Theme.Name == theme.Name {
			return entry, nil
		}
	}
	return themeEntry{Theme: theme}, nil
}

func (l *themeLibrary) session(entry themeEntry, opts ...session.Option) *session.Session {
	cfg := GetConfig()
	opts = append([]session.Option{
		session.WithHistoryLimit(cfg.HistoryLimit),
		session.WithEvents(l.events),
	}, opts...)
	sess := session.New(entry.Theme, currentIdentity(), l.repo, opts...)
	if len(entry.Overrides) > 0 {
		sess.Load(entry.Theme, entry.Overrides...)
	}
	return sess
}

// resolveTheme opens the library, finds name and closes the library.
func resolveTheme(ctx context.Context, name string) (themeEntry, error) {
	lib, err := openLibrary(ctx)
	if err != nil {
		return themeEntry{}, err
	}
	defer lib.Close()
	return lib.find(name)
}

func themeArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return GetConfig().DefaultTheme
}

var themesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary(cmd.Context())
		if err != nil {
			return err
		}
		defer lib.Close()

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), lib.entries)
		}

		rows := make([][]string, 0, len(lib.entries))
		for _, entry := range lib.entries {
			t := entry.Theme
			rows = append(rows, []string{
				t.ID,
				t.Name,
				entry.Source,
				lo.Ternary(t.Author == "", "-", t.Author),
				formatList(t.Tags),
				formatYesNo(t.IsPublic),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "SOURCE", "AUTHOR", "TAGS", "PUBLIC"}, rows)
	},
}

var themesShowCmd = &cobra.Command{
	Use:   "show [theme]",
	Short: "Print a theme as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := resolveTheme(cmd.Context(), themeArg(args))
		if err != nil {
			return err
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), entry)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(entry.Theme); err != nil {
			return err
		}
		return enc.Close()
	},
}

var themesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a YAML or JSON theme into your saved themes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		format, err := catalog.ParseFormat(filepath.Ext(path))
		if err != nil {
			return err
		}
		data, err := afero.ReadFile(appFs, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		theme, err := catalog.Import(data, format)
		if err != nil {
			return err
		}
		theme.OwnerID = currentIdentity().OwnerID()
		theme.Provenance = path

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		result, err := db.NewThemeRepository(database).Save(ctx, theme, nil, themesImportPublic)
		if err != nil {
			return err
		}
		if err := events.LogThemeCreated(ctx, db.NewEventRepository(database), result.Saved.ID, result.Saved.Name); err != nil {
			return err
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), result.Saved)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s (%s)\n", result.Saved.Name, result.Saved.ID, humanize.Bytes(uint64(len(data))))
		return nil
	},
}

var themesEditCmd = &cobra.Command{
	Use:   "edit <theme>",
	Short: "Edit roles of a theme and save it",
	Long: `Apply role assignments to a theme and save the result. Themes you don't
own (built-ins, other people's themes) are forked into a private copy first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mode := GetConfig().Mode()
		if themesEditMode != "" {
			parsed, err := models.ParseMode(themesEditMode)
			if err != nil {
				return err
			}
			mode = parsed
		}

		assignments, err := parseAssignments(themesEditSet)
		if err != nil {
			return err
		}
		var layers []models.OverrideLayer
		if themesEditOverride != "" {
			if layers, err = readOverrides(themesEditOverride); err != nil {
				return err
			}
		}
		if len(assignments) == 0 && len(layers) == 0 {
			return &PreflightError{
				Message:  "nothing to edit",
				Hint:     "pass at least one --set role=color or --override file",
				NextStep: "tinte themes edit " + args[0] + " --set pr=#1e40af",
			}
		}

		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer lib.Close()

		entry, err := lib.find(args[0])
		if err != nil {
			return err
		}
		sess := lib.session(entry)

		for _, a := range assignments {
			if err := sess.Edit(ctx, mode, a.role, a.value); err != nil {
				return err
			}
		}
		for _, layer := range layers {
			if err := sess.SetOverride(ctx, layer); err != nil {
				return err
			}
		}

		step := startProgress("Saving " + sess.Theme().Name)
		outcome := <-sess.Save(ctx, themesEditPublic)
		sess.Wait()
		if outcome.Err != nil {
			step.Fail(outcome.Err)
			return outcome.Err
		}
		step.Done()

		saved := outcome.Theme
		if outcome.Saved != nil {
			saved = *outcome.Saved
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), saved)
		}
		verb := "Saved"
		if outcome.Forked {
			verb = "Forked and saved"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %q as %s\n", verb, saved.Name, saved.ID)
		return nil
	},
}

var themesDeleteCmd = &cobra.Command{
	Use:   "delete <theme>",
	Short: "Delete one of your saved themes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer lib.Close()

		entry, err := lib.find(args[0])
		if err != nil {
			return err
		}

		deleted, err := lib.session(entry).Delete(ctx)
		if errors.Is(err, session.ErrNotOwner) {
			return &PreflightError{
				Message:  fmt.Sprintf("%s is not one of your themes", entry.Theme.Name),
				Hint:     "built-in and shared themes cannot be deleted",
				NextStep: "tinte themes list",
			}
		}
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("%w: %s", db.ErrThemeNotFound, entry.Theme.ID)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), map[string]any{"id": entry.Theme.ID, "deleted": true})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q (%s)\n", entry.Theme.Name, entry.Theme.ID)
		return nil
	},
}

type assignment struct {
	role  models.Role
	value string
}

func parseAssignments(values []string) ([]assignment, error) {
	out := make([]assignment, 0, len(values))
	for _, raw := range values {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q (want role=color)", raw)
		}
		role, err := models.ParseRole(key)
		if err != nil {
			return nil, err
		}
		out = append(out, assignment{role: role, value: strings.TrimSpace(value)})
	}
	return out, nil
}
