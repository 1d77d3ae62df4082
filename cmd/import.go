package cmd

import (
	"fmt"
	"io"
	"os"

	"codexmgr/config/transfer"
	"codexmgr/internal/errs"

	"github.com/spf13/cobra"
)

var importKeepID bool

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importKeepID, "keep-id", false, "Keep the id from the file, replacing a profile with the same id")
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a profile from YAML",
	Long:  "Import a profile exported with 'codexmgr export'. Use - to read from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return errs.IO("read "+args[0], err)
		}

		profile, err := transfer.Import(data, importKeepID)
		if err != nil {
			return err
		}

		configManager, err := newManager()
		if err != nil {
			return err
		}
		if err := configManager.Save(profile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Imported profile: %s (%s)", profile.Name, profile.ID)))
		return nil
	},
}
