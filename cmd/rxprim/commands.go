package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rxprim/internal/automaton"
	"rxprim/internal/prim"
	"rxprim/internal/render"
	"rxprim/internal/translate"
)

type options struct {
	verbose bool
	context string
	strict  bool
	format  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "rxprim",
		Short:        "Lower regular expressions into primitive trees",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")
	root.PersistentFlags().StringVarP(&opts.context, "context", "c", "re", "group id prefix")
	root.PersistentFlags().BoolVar(&opts.strict, "strict-backrefs", false, "reject backreferences to missing groups")

	root.AddCommand(newTranslateCmd(opts), newDotCmd(opts), newEquivCmd(opts))
	return root
}

func (o *options) walker(cmd *cobra.Command) *translate.Walker {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	walkerOpts := []translate.Option{translate.WithLogger(logger)}
	if o.strict {
		walkerOpts = append(walkerOpts, translate.WithStrictBackrefs())
	}
	return translate.New(walkerOpts...)
}

// contextFor keeps the bare context for a single pattern and numbers it
// otherwise, so group ids never collide across patterns.
func (o *options) contextFor(i, total int) string {
	if total == 1 {
		return o.context
	}
	return fmt.Sprintf("%s%d", o.context, i+1)
}

func newTranslateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate PATTERN...",
		Short: "Print the primitive tree of each pattern",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := opts.walker(cmd)
			results := make([]prim.Node, len(args))
			var g errgroup.Group
			for i, pattern := range args {
				i, pattern := i, pattern
				g.Go(func() error {
					out, err := translatePattern(w, pattern, opts.contextFor(i, len(args)))
					results[i] = out
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for i, out := range results {
				if len(args) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", args[i])
				}
				if err := write(cmd.OutOrStdout(), opts.format, out); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, pretty or yaml")
	return cmd
}

func write(w io.Writer, format string, n prim.Node) error {
	switch format {
	case "text":
		_, err := fmt.Fprintln(w, n)
		return err
	case "pretty":
		_, err := io.WriteString(w, render.Pretty(n))
		return err
	case "yaml":
		return render.YAML(w, n)
	}
	return fmt.Errorf("unknown format %q", format)
}

func newDotCmd(opts *options) *cobra.Command {
	var (
		nfa, raw, png bool
		outFile       string
	)
	cmd := &cobra.Command{
		Use:   "dot PATTERN",
		Short: "Export the automaton of a pattern as Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := translatePattern(opts.walker(cmd), args[0], opts.context)
			if err != nil {
				return err
			}
			graph, err := automaton.Build(n)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			switch {
			case nfa:
				err = automaton.ExportDOT(&buf, graph)
			case raw:
				err = automaton.ExportDOT(&buf, automaton.Determinize(graph))
			default:
				err = automaton.ExportDOT(&buf, automaton.Minimize(automaton.Determinize(graph)))
			}
			if err != nil {
				return err
			}

			if png {
				if outFile == "-" {
					return fmt.Errorf("--png needs a file name")
				}
				dot := exec.Command("dot", "-Tpng", "-o", outFile)
				dot.Stdin = &buf
				dot.Stderr = cmd.ErrOrStderr()
				if err := dot.Run(); err != nil {
					return fmt.Errorf("dot failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "PNG written to %s\n", outFile)
				return nil
			}
			if outFile == "-" {
				_, err = io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			return os.WriteFile(outFile, buf.Bytes(), 0o644)
		},
	}
	cmd.Flags().BoolVar(&nfa, "nfa", false, "export the Thompson NFA")
	cmd.Flags().BoolVar(&raw, "raw", false, "export the DFA before minimisation")
	cmd.Flags().BoolVar(&png, "png", false, "render PNG through the dot binary")
	cmd.Flags().StringVarP(&outFile, "output", "o", "-", "output file, - for stdout")
	return cmd
}

func newEquivCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "equiv PATTERN PATTERN",
		Short: "Check whether two patterns accept the same strings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := opts.walker(cmd)
			var dfas [2]*automaton.DFA
			for i, pattern := range args {
				n, err := translatePattern(w, pattern, opts.contextFor(i, 2))
				if err != nil {
					return err
				}
				if dfas[i], err = automaton.Compile(n); err != nil {
					return fmt.Errorf("%q: %w", pattern, err)
				}
			}
			if !automaton.Equivalent(dfas[0], dfas[1]) {
				return fmt.Errorf("%q and %q differ", args[0], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "equivalent")
			return nil
		},
	}
}
