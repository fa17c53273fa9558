package safehold

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/safehold-dev/safehold/internal/version"
	"github.com/safehold-dev/safehold/pkg/logging"
)

var verbosity int

// NewRootCmd builds the safehold command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safehold",
		Short: "Overwrite protection for files",
		Long: `safehold runs write operations against files under a protection
protocol: existing content is snapshotted before the operation, the file is
re-checksummed afterwards, and any overwritten content is preserved in a
sibling backup named {stem}_{8 hex digits}{ext}. Nothing is ever silently
lost.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newStoreCmd())
	rootCmd.AddCommand(newBackupsCmd())

	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("safehold version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
