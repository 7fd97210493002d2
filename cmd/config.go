// =============================================================================
// SSIM Pretty Printer - Config Command
// =============================================================================
//
// COMMAND USAGE:
//   ssim config                    Print the default configuration
//   ssim config --write config.yaml
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nalian79/ssim-pprint/internal/config"
	"github.com/Nalian79/ssim-pprint/pkg/utils"
)

var (
	configWritePath string
	configForce     bool
)

// configCmd represents the 'config' command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the default configuration",
	Long: `Print the built-in configuration as YAML. Every key can also be set with
an SSIM_* environment variable or in a .env file.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.DefaultYAML()
		if err != nil {
			return err
		}

		if configWritePath == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if utils.FileExists(configWritePath) && !configForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", configWritePath)
		}
		if err := os.WriteFile(configWritePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configWritePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVar(&configWritePath, "write", "", "Write the configuration to this file")
	configCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}
