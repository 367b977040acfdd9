package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stackmap/internal/codec"
	"stackmap/internal/domain"
	"stackmap/internal/view"
)

func (a *app) exportCmd() *cobra.Command {
	var (
		format string
		output string
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored positions of a layout as a document",
		Long: `Export the node positions of a layout as JSON or YAML.

  stackmap export                       # active layout as JSON on stdout
  stackmap export --layout lanes --format yaml
  stackmap export --output layout.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := exportCodec(format, output)
			if err != nil {
				return err
			}

			sess, err := a.openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			if mode != "" {
				if _, err := sess.svc.SwitchLayout(cmd.Context(), domain.LayoutMode(mode)); err != nil {
					return err
				}
			}

			if output == "" {
				return sess.svc.ExportTo(cmd.OutOrStdout(), c)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := sess.svc.ExportTo(f, c); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			Good.Fprintf(cmd.ErrOrStderr(), "Exported %s layout to %s\n", sess.svc.State().Layout, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json or yaml (default from --output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&mode, "layout", "", "Layout to export (default: configured layout)")
	return cmd
}

func exportCodec(format, output string) (codec.Codec, error) {
	if format == "" && output != "" {
		return codec.ForPath(output), nil
	}
	return codec.ForFormat(format)
}

func (a *app) importCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store the positions of a layout document",
		Long: `Import a JSON or YAML layout document. The format follows the file
extension unless --format is given. Use - to read from stdin.

  stackmap import layout.yaml
  cat layout.json | stackmap import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var c codec.Codec
			switch {
			case format != "":
				var err error
				if c, err = codec.ForFormat(format); err != nil {
					return err
				}
			default:
				c = codec.ForPath(path)
			}

			var r io.Reader = cmd.InOrStdin()
			if path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open %s: %w", path, err)
				}
				defer f.Close()
				r = f
			}

			sess, err := a.openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			model, err := sess.svc.ImportState(cmd.Context(), r, c)
			if err != nil {
				return err
			}
			Good.Fprintf(cmd.OutOrStdout(), "Imported positions for the %s layout\n", model.State.Layout)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json or yaml")
	return cmd
}

func (a *app) resetCmd() *cobra.Command {
	var (
		yes  bool
		mode string
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the preset positions of a layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			if mode != "" {
				if _, err := sess.svc.SwitchLayout(cmd.Context(), domain.LayoutMode(mode)); err != nil {
					return err
				}
			}

			confirmer := view.Approve
			if !yes {
				confirmer = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			model, err := sess.svc.ResetLayout(cmd.Context(), confirmer)
			if err != nil {
				return err
			}
			Good.Fprintf(cmd.OutOrStdout(), "Reset the %s layout to its preset\n", model.State.Layout)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&mode, "layout", "", "Layout to reset (default: configured layout)")
	return cmd
}

// promptConfirmer asks on out and accepts y or yes from in
func promptConfirmer(in io.Reader, out io.Writer) view.Confirmer {
	return view.ConfirmFunc(func(prompt string) bool {
		Warn.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}
