package cli

import (
	"github.com/spf13/cobra"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

var (
	resolveMode     string
	resolveOverride string
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveMode, "mode", "", "mode to resolve (light or dark, default from config)")
	resolveCmd.Flags().StringVar(&resolveOverride, "override", "", "YAML or JSON file of extra override layers")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [theme]",
	Short: "Print the final token map of a theme",
	Long: `Resolve a theme into its flat token map: the semantic roles, derived
surfaces and status colors, with override layers applied in channel order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := resolveTheme(cmd.Context(), themeArg(args))
		if err != nil {
			return err
		}

		mode := GetConfig().Mode()
		if resolveMode != "" {
			if mode, err = models.ParseMode(resolveMode); err != nil {
				return err
			}
		}

		layers := models.CloneLayers(entry.Overrides)
		if resolveOverride != "" {
			extra, err := readOverrides(resolveOverride)
			if err != nil {
				return err
			}
			layers = append(layers, extra...)
		}

		tm := tokens.Resolve(entry.Theme, mode, layers)
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), tm)
		}

		rows := make([][]string, 0, len(tm))
		for _, key := range tm.Keys() {
			rows = append(rows, []string{key, colorSwatch(tm[key])})
		}
		return writeTable(cmd.OutOrStdout(), []string{"TOKEN", "COLOR"}, rows)
	},
}
