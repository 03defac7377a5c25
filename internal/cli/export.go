package cli

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/providers"
)

var (
	exportProviders []string
	exportMode      string
	exportOut       string
	exportClipboard bool
	exportOverride  string
	exportCSS       bool
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVarP(&exportProviders, "provider", "p", nil, "provider ids to export (default: config export.providers, else all)")
	exportCmd.Flags().StringVar(&exportMode, "mode", "", "mode for single-mode formats (light or dark, default from config)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default: config export.output_dir)")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "copy the artifact to the clipboard instead of writing a file")
	exportCmd.Flags().StringVar(&exportOverride, "override", "", "YAML or JSON file of extra override layers")
	exportCmd.Flags().BoolVar(&exportCSS, "css", false, "also write syntax highlighting CSS")
}

// ExportResult describes one exported artifact.
type ExportResult struct {
	Provider string `json:"provider"`
	Filename string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int    `json:"size"`
	Error    string `json:"error,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export [theme]",
	Short: "Export a theme to editor, terminal and app formats",
	Long: `Export a theme through one or more providers. Each provider is
exported independently: one failing format does not stop the others.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := GetConfig()

		entry, err := resolveTheme(ctx, themeArg(args))
		if err != nil {
			return err
		}

		mode := cfg.Mode()
		if exportMode != "" {
			if mode, err = models.ParseMode(exportMode); err != nil {
				return err
			}
		}

		layers := models.CloneLayers(entry.Overrides)
		if exportOverride != "" {
			extra, err := readOverrides(exportOverride)
			if err != nil {
				return err
			}
			layers = append(layers, extra...)
		}

		registry := providers.Default()
		ids := exportProviders
		if len(ids) == 0 {
			ids = cfg.Export.Providers
		}
		if len(ids) == 0 {
			ids = registry.IDs()
		}

		opts := providers.ExportOptions{Mode: mode, Overrides: layers}

		if exportClipboard {
			if len(ids) != 1 {
				return &PreflightError{
					Message:  "--clipboard needs exactly one provider",
					NextStep: "tinte export " + entry.Theme.ID + " --provider slack --clipboard",
				}
			}
			artifact := registry.Export(ids[0], entry.Theme, opts)
			if artifact == nil {
				return fmt.Errorf("export %s failed", ids[0])
			}
			if err := clipboardWrite(string(artifact.Content)); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s (%s) to clipboard\n", artifact.Filename, humanize.Bytes(uint64(len(artifact.Content))))
			return nil
		}

		outDir := exportOut
		if outDir == "" {
			outDir = cfg.Export.OutputDir
		}
		if err := appFs.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		step := startProgress(fmt.Sprintf("Exporting %s to %d formats", entry.Theme.Name, len(ids)))
		results := make([]ExportResult, 0, len(ids)+1)
		failed := 0
		for _, id := range ids {
			result := ExportResult{Provider: id}
			artifact := registry.Export(id, entry.Theme, opts)
			if artifact == nil {
				result.Error = "export failed"
				failed++
				results = append(results, result)
				continue
			}
			result.Filename = artifact.Filename
			result.MimeType = artifact.MimeType
			result.Size = len(artifact.Content)
			result.Path = filepath.Join(outDir, artifact.Filename)
			if err := afero.WriteFile(appFs, result.Path, artifact.Content, 0o644); err != nil {
				result.Error = err.Error()
				failed++
			}
			results = append(results, result)
		}

		if exportCSS {
			result := ExportResult{Provider: "chroma-css"}
			css, err := providers.ExportCSS(entry.Theme, mode)
			if err == nil {
				result.Filename = fmt.Sprintf("%s-%s-chroma.css", entry.Theme.Slug(), mode)
				result.MimeType = "text/css"
				result.Size = len(css)
				result.Path = filepath.Join(outDir, result.Filename)
				err = afero.WriteFile(appFs, result.Path, css, 0o644)
			}
			if err != nil {
				result.Error = err.Error()
				failed++
			}
			results = append(results, result)
		}

		if failed == len(results) {
			step.Fail(nil)
		} else {
			step.Done()
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(cmd.OutOrStdout(), results); err != nil {
				return err
			}
		} else {
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				size := humanize.Bytes(uint64(r.Size))
				path := r.Path
				if r.Error != "" {
					size = "-"
					path = "error: " + r.Error
				}
				rows = append(rows, []string{r.Provider, path, size})
			}
			if err := writeTable(cmd.OutOrStdout(), []string{"PROVIDER", "FILE", "SIZE"}, rows); err != nil {
				return err
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d exports failed", failed, len(results))
		}
		return nil
	},
}
