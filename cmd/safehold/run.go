package safehold

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/safehold-dev/safehold/pkg/fileguard"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <path> -- <command> [args...]",
		Short: "Run a command against a file under the protection protocol",
		Long: `Run executes a command that is expected to (re)write <path>. If the
file exists beforehand, its prior content is preserved in a sibling backup
whenever the command changes it, and retained even when the command fails.

Every occurrence of {} in the command arguments is replaced by the path.`,
		Example: `  safehold run config.json -- my-generator --out {}
  safehold run notes.txt -- sh -c 'date >> {}'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cmdline := args[1:]

			guard := fileguard.New().WithNotifier(func(message string) {
				fmt.Fprintln(os.Stderr, styleNotice.Render(message))
			})

			return guard.Protect(path, func(p string) error {
				expanded := make([]string, len(cmdline))
				for i, arg := range cmdline {
					expanded[i] = strings.ReplaceAll(arg, "{}", p)
				}

				c := exec.Command(expanded[0], expanded[1:]...)
				c.Stdin = os.Stdin
				c.Stdout = os.Stdout
				c.Stderr = os.Stderr
				return c.Run()
			})
		},
	}
}
