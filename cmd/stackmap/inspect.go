package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stackmap/internal/catalog"
)

func (a *app) payloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payload EDGE",
		Short: "Print the example payload carried by an edge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(a.cfg.Catalog)
			if err != nil {
				return err
			}
			if _, ok := cat.Edge(args[0]); !ok {
				Warn.Fprintf(cmd.ErrOrStderr(), "Unknown edge %s\n", args[0])
			}

			sess, err := a.openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			fmt.Fprintln(cmd.OutOrStdout(), sess.svc.Payload(args[0]))
			return nil
		},
	}
}

func (a *app) scenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the business flows that can be highlighted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(a.cfg.Catalog)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(cat.Scenarios))
			for _, s := range cat.Scenarios {
				rows = append(rows, []string{s.Key, s.Title, strconv.Itoa(len(s.EdgeIDs))})
			}
			printTable(cmd.OutOrStdout(), []string{"KEY", "TITLE", "EDGES"}, rows)
			return nil
		},
	}
}

func (a *app) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the node and edge catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a catalog file, the configured one, or the built-in catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Catalog
			if len(args) == 1 {
				cfg.Path = args[0]
			}

			var (
				cat *catalog.Catalog
				err error
			)
			source := cfg.Path
			if source == "" {
				source = "built-in catalog"
				cat = catalog.Retail()
				err = cat.Validate()
			} else {
				cat, err = loadCatalog(cfg)
			}
			if err != nil {
				Bad.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", source)
				return err
			}

			Good.Fprintf(cmd.OutOrStdout(), "✓ %s: %d nodes, %d edges, %d scenarios\n",
				source, len(cat.Nodes), len(cat.Edges), len(cat.Scenarios))
			return nil
		},
	})

	return cmd
}
