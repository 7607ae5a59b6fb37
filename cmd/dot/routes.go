package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dot/internal/errors"
	"github.com/vango-dev/dot/pkg/router"
	"github.com/vango-dev/dot/pkg/vdom"
)

func routesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Debug route tables",
	}
	cmd.AddCommand(routesMatchCmd())
	return cmd
}

func routesMatchCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "match <pattern>... --path <path>",
		Short: "Show which pattern a path matches",
		Long: `Build a route table from the patterns, in order, and print the
entry a path matches. Patterns are tried first to last, so an earlier
pattern shadows a later one; "*" is the fallback wherever it appears.

Examples:
  dot routes match / /todos /todos/:id '*' --path /todos/42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return errors.New("E050").WithDetail("--path is required")
			}

			table := make(router.Table, len(args))
			for i, pattern := range args {
				table[i] = router.Route{
					Pattern:   pattern,
					Component: func(router.Params) vdom.Node { return vdom.Text(pattern) },
				}
			}
			if err := table.Validate(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			m := table.Match(path)
			fmt.Fprintf(w, "path:    %s\n", m.Path)
			if !m.Found() {
				fmt.Fprintln(w, "pattern: (no match)")
				return nil
			}
			fmt.Fprintf(w, "pattern: %s\n", m.Pattern)

			names := make([]string, 0, len(m.Params))
			for name := range m.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "param:   %s = %s\n", name, m.Params[name])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path to match")
	return cmd
}
