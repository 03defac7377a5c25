package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Railly/tinte-sub002/internal/providers"
)

var (
	providersCategory string
	providersTag      string
)

func init() {
	rootCmd.AddCommand(providersCmd)

	providersCmd.Flags().StringVar(&providersCategory, "category", "", "filter by category (editor, terminal, chat, design-tool, other)")
	providersCmd.Flags().StringVar(&providersTag, "tag", "", "filter by tag")
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List export formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := providers.Default()

		list := registry.List()
		if providersCategory != "" {
			category := providers.Category(providersCategory)
			if !lo.Contains(categories, category) {
				return fmt.Errorf("unknown category %q", providersCategory)
			}
			list = registry.ByCategory(category)
		}
		if providersTag != "" {
			tagged := lo.SliceToMap(registry.ByTag(providersTag), func(p providers.Provider) (string, bool) {
				return p.Descriptor().ID, true
			})
			list = lo.Filter(list, func(p providers.Provider, _ int) bool {
				return tagged[p.Descriptor().ID]
			})
		}

		descriptors := lo.Map(list, func(p providers.Provider, _ int) providers.Descriptor {
			return p.Descriptor()
		})
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), descriptors)
		}

		rows := make([][]string, 0, len(list))
		for _, p := range list {
			desc := p.Descriptor()
			channel := "-"
			if o, ok := p.(providers.Overridable); ok {
				channel = string(o.Channel())
			}
			rows = append(rows, []string{
				desc.ID,
				desc.Name,
				string(desc.Category),
				"." + desc.Extension,
				lo.Ternary(desc.DualMode, "both", "single"),
				channel,
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "CATEGORY", "EXT", "MODES", "OVERRIDES"}, rows)
	},
}

var categories = []providers.Category{
	providers.CategoryEditor,
	providers.CategoryTerminal,
	providers.CategoryChat,
	providers.CategoryDesignTool,
	providers.CategoryOther,
}
