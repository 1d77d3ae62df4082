package cmd

import (
	"fmt"

	"codexmgr/config/storage"
	"codexmgr/config/transfer"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportRedact bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportRedact, "redact", false, "Leave API keys out of the export")
}

var exportCmd = &cobra.Command{
	Use:   "export <profile>",
	Short: "Export a profile as YAML",
	Long:  "Export a profile as a YAML document that 'codexmgr import' can read back.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configManager, err := newManager()
		if err != nil {
			return err
		}
		profile, err := findProfile(configManager, args[0])
		if err != nil {
			return err
		}
		data, err := transfer.Export(profile, exportRedact)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := storage.AtomicWrite(exportOutput, data, 0600); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Exported %s to %s", profile.Name, exportOutput)))
		return nil
	},
}
