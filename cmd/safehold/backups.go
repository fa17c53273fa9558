package safehold

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

func newBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backups <path>",
		Short: "List the backups safehold kept for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			dir := filepath.Dir(path)
			base := filepath.Base(path)
			ext := filepath.Ext(base)
			if ext == base {
				ext = ""
			}
			stem := strings.TrimSuffix(base, ext)

			pattern, err := regexp.Compile(
				"^" + regexp.QuoteMeta(stem) + "_[0-9a-f]{8}" + regexp.QuoteMeta(ext) + "$")
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return err
			}

			found := 0
			for _, entry := range entries {
				if entry.IsDir() || !pattern.MatchString(entry.Name()) {
					continue
				}
				found++

				line := filepath.Join(dir, entry.Name())
				if info, ierr := entry.Info(); ierr == nil {
					line += "  " + styleDim.Render(info.ModTime().Format("2006-01-02 15:04:05"))
				}
				fmt.Println(line)
			}

			if found == 0 {
				fmt.Println(styleDim.Render("no backups for " + path))
			}
			return nil
		},
	}
}
