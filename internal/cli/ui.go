package cli

import (
	"github.com/spf13/cobra"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/preview"
)

var previewMode string

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewMode, "mode", "", "initial mode (light or dark, default from config)")
}

var previewCmd = &cobra.Command{
	Use:   "preview [theme]",
	Short: "Preview and edit a theme in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsNonInteractive() {
			return &PreflightError{
				Message:  "preview requires an interactive terminal",
				Hint:     "run without --non-interactive and with a TTY, or use `tinte resolve`",
				NextStep: "tinte resolve " + themeArg(args),
			}
		}

		ctx := cmd.Context()
		mode := GetConfig().Mode()
		if previewMode != "" {
			parsed, err := models.ParseMode(previewMode)
			if err != nil {
				return err
			}
			mode = parsed
		}

		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		defer lib.Close()

		entry, err := lib.find(themeArg(args))
		if err != nil {
			return err
		}
		sess := lib.session(entry)
		defer sess.Wait()

		return preview.Run(ctx, sess, mode)
	},
}
