package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/dot/internal/config"
	"github.com/vango-dev/dot/internal/errors"
	"github.com/vango-dev/dot/pkg/storage"
)

// storeFlags override the configured storage backend.
type storeFlags struct {
	backend string
	path    string
	driver  string
	dsn     string
}

func storeCmd(global *globalFlags) *cobra.Command {
	flags := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect persisted store snapshots",
		Long: `Inspect and edit the snapshots that stores persist.

The backend comes from the storage section of the config file and
can be overridden with flags.

Examples:
  dot store list
  dot store get dot-example-state
  dot store put prefs '{"theme":"dark"}'
  dot store put prefs --yaml - < prefs.yaml
  dot store delete prefs --backend=bolt --path=.dot/state.db`,
	}

	cmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "Storage backend: memory, bolt, sql or s3")
	cmd.PersistentFlags().StringVar(&flags.path, "path", "", "Bolt database file")
	cmd.PersistentFlags().StringVar(&flags.driver, "driver", "", "database/sql driver name")
	cmd.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "database/sql data source name")

	cmd.AddCommand(
		storeListCmd(global, flags),
		storeGetCmd(global, flags),
		storePutCmd(global, flags),
		storeDeleteCmd(global, flags),
	)
	return cmd
}

// openBackend opens the configured backend with flag overrides applied.
func openBackend(cmd *cobra.Command, global *globalFlags, flags *storeFlags) (storage.Backend, error) {
	cfg, err := loadConfig(global)
	if err != nil {
		return nil, err
	}
	applyStoreFlags(&cfg.Storage, flags)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return storage.Open(cmd.Context(), cfg.Storage)
}

func applyStoreFlags(cfg *config.StorageConfig, flags *storeFlags) {
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.path != "" {
		cfg.Path = flags.path
	}
	if flags.driver != "" {
		cfg.Driver = flags.driver
	}
	if flags.dsn != "" {
		cfg.DSN = flags.dsn
	}
	if cfg.Backend == config.BackendSQL && cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
}

func storeListCmd(global *globalFlags, flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshot keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd, global, flags)
			if err != nil {
				return err
			}
			defer b.Close()

			keys, err := b.Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}

func storeGetCmd(global *globalFlags, flags *storeFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a snapshot",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd, global, flags)
			if err != nil {
				return err
			}
			defer b.Close()

			data, err := b.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if data == nil {
				return errors.New("E050").WithDetail("no snapshot under %q", args[0])
			}

			if !raw {
				var buf bytes.Buffer
				if json.Indent(&buf, data, "", "  ") == nil {
					data = buf.Bytes()
				}
			}
			w := cmd.OutOrStdout()
			w.Write(data)
			fmt.Fprintln(w)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the stored bytes unformatted")
	return cmd
}

func storePutCmd(global *globalFlags, flags *storeFlags) *cobra.Command {
	var fromYAML bool

	cmd := &cobra.Command{
		Use:   "put <key> <json|->",
		Short: "Write a snapshot",
		Long: `Write a snapshot. The value is JSON, or YAML with --yaml, given
inline or read from stdin when it is "-".`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := []byte(args[1])
			if args[1] == "-" {
				var err error
				if value, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			data, err := snapshotJSON(value, fromYAML)
			if err != nil {
				return err
			}

			b, err := openBackend(cmd, global, flags)
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Save(cmd.Context(), args[0], data); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Saved %s (%d bytes)", args[0], len(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromYAML, "yaml", false, "Parse the value as YAML")
	return cmd
}

// snapshotJSON returns value as compact JSON, converting from YAML first
// when asked.
func snapshotJSON(value []byte, fromYAML bool) ([]byte, error) {
	if fromYAML {
		var v any
		if err := yaml.Unmarshal(value, &v); err != nil {
			return nil, errors.New("E050").WithDetail("value is not valid YAML").Wrap(err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, errors.New("E050").WithDetail("YAML value has no JSON form").Wrap(err)
		}
		return out, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return nil, errors.New("E050").WithDetail("value is not valid JSON").Wrap(err)
	}
	return buf.Bytes(), nil
}

func storeDeleteCmd(global *globalFlags, flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Delete a snapshot",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd, global, flags)
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Deleted %s", args[0])
			return nil
		},
	}
}

// exactArgs is cobra.ExactArgs reporting a structured error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New("E050").
				WithDetail("%s takes %d argument(s), got %d", cmd.Name(), n, len(args)).
				WithSuggestion("Usage: " + cmd.UseLine())
		}
		return nil
	}
}
