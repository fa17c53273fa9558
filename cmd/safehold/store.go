package safehold

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/safehold-dev/safehold/pkg/config"
	"github.com/safehold-dev/safehold/pkg/errors"
	"github.com/safehold-dev/safehold/pkg/fileguard"
	"github.com/safehold-dev/safehold/pkg/serialize"
)

func newStoreCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "store <path> <json-value>",
		Short: "Store a value to a file, preserving prior content",
		Long: `Store serializes a value to <path> under the protection protocol.
The value is given as a JSON literal; the on-disk format is chosen by
--format (or the store.format config key, default json).`,
		Example: `  safehold store settings.json '{"retries": 3}'
  safehold store settings.yaml '{"retries": 3}' --format yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, literal := args[0], args[1]

			cfg, err := config.Load("")
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Store.Format
			}

			var value interface{}
			if err := json.Unmarshal([]byte(literal), &value); err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "value must be a JSON literal")
			}

			s, err := serialize.New(serialize.Format(format))
			if err != nil {
				return err
			}

			guard := fileguard.New().WithNotifier(func(message string) {
				fmt.Fprintln(os.Stderr, styleNotice.Render(message))
			})

			written, err := guard.ProtectedStore(value, path, s)
			if err != nil {
				return err
			}

			fmt.Println(styleSuccess.Render("stored " + written))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Serialization format: json, toml or yaml")
	return cmd
}
