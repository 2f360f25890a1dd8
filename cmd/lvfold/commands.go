package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvfold/internal/httpapi"
	"github.com/katalvlaran/lvfold/internal/service"
	"github.com/katalvlaran/lvfold/pairing"
	"github.com/katalvlaran/lvfold/structure"
)

func newFoldCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fold SEQUENCE...",
		Short: "Print the optimum, the exact count and every optimal structure",
		Long: `Fold one or more sequences. Several sequences are folded concurrently
(fold.workers), and printed in argument order.

Examples:
  lvfold fold GCGC
  lvfold fold --model wobble --max-structures 20 GGGAAACCC GCAUAGCUGC
  lvfold fold -o json GCGC`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.folder.FoldBatch(cmd.Context(), args, "")
			if err != nil {
				return err
			}
			out := make([]foldOutput, len(results))
			for i, r := range results {
				out[i] = newFoldOutput(r)
			}
			var v any = out
			if len(out) == 1 {
				v = out[0]
			}

			return render(cmd.OutOrStdout(), a.output, v, func(w io.Writer) error {
				for _, r := range out {
					if err := writeFoldText(w, r); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count SEQUENCE",
		Short: "Print the exact number of admissible structures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := a.folder.Count(cmd.Context(), args[0], "")
			if err != nil {
				return err
			}
			v := map[string]string{"sequence": pairing.Normalize(args[0]), "count": total.String()}

			return render(cmd.OutOrStdout(), a.output, v, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, total.String())
				return err
			})
		},
	}
}

func newConsensusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "consensus STRUCTURE...",
		Short: "Extract a maximum-support consensus from dot-bracket structures",
		Long: `Tabulate how often each base pair occurs across the given structures and
print one non-crossing structure of maximum total frequency.

Example:
  lvfold consensus "(..)" "(())"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.folder.Consensus(cmd.Context(), args)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), a.output, res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s\nsupport: %d\n", res.Structure, res.Support)
				return err
			})
		},
	}
}

func newPlanarizeCmd(a *app) *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "planarize I:J...",
		Short: "Drop the fewest pairs needed to remove crossings",
		Long: `Read base pairs as zero-based I:J tokens and print a maximum non-crossing
subset in dot-bracket notation.

Example:
  lvfold planarize --length 9 0:5 1:4 2:8 3:7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := parsePairs(args)
			if err != nil {
				return err
			}
			n := length
			if n == 0 {
				n = inferLength(pairs)
			}
			partners, err := a.folder.Planarize(cmd.Context(), n, pairs)
			if err != nil {
				return err
			}
			db, err := structure.Format(partners)
			if err != nil {
				return err
			}
			v := map[string]any{"length": n, "structure": db, "pairs": structure.Pairs(partners)}

			return render(cmd.OutOrStdout(), a.output, v, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, db)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&length, "length", 0, "sequence length, default 1 + the largest index")

	return cmd
}

// parsePairs reads "i:j" tokens.
func parsePairs(args []string) ([]structure.Pair, error) {
	pairs := make([]structure.Pair, 0, len(args))
	for _, tok := range args {
		left, right, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("pair %q: want I:J", tok)
		}
		i, err := strconv.Atoi(left)
		if err != nil {
			return nil, fmt.Errorf("pair %q: %w", tok, err)
		}
		j, err := strconv.Atoi(right)
		if err != nil {
			return nil, fmt.Errorf("pair %q: %w", tok, err)
		}
		pairs = append(pairs, structure.Pair{I: i, J: j})
	}

	return pairs, nil
}

func inferLength(pairs []structure.Pair) int {
	n := 0
	for _, p := range pairs {
		if p.I+1 > n {
			n = p.I + 1
		}
		if p.J+1 > n {
			n = p.J + 1
		}
	}

	return n
}

func newDesignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "design TARGET [SEQUENCE]",
		Short: "Check whether a sequence folds uniquely into a target structure",
		Long: `Fold SEQUENCE and report whether TARGET is its only optimal structure.
Without SEQUENCE the A/U seed of the target is checked.

Example:
  lvfold design "(((...)))" GGGAAACCC --model wobble`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := ""
			if len(args) == 2 {
				seq = args[1]
			}
			res, err := a.folder.Design(cmd.Context(), args[0], seq, "")
			if err != nil {
				return err
			}
			v := struct {
				service.DesignResult `yaml:",inline"`
				Count                string `json:"count" yaml:"count"`
			}{res, res.Count.String()}

			return render(cmd.OutOrStdout(), a.output, v, func(w io.Writer) error {
				verdict := "not solved"
				if res.Solved {
					verdict = "solved"
				}
				_, err := fmt.Fprintf(w, "%s\n%s\n%s (unique: %t, optimum: %g)\n",
					res.Target, res.Sequence, verdict, res.Unique, res.Optimum)
				return err
			})
		},
	}
}

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available pairing models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := pairing.Names()

			return render(cmd.OutOrStdout(), a.output, names, func(w io.Writer) error {
				for _, name := range names {
					marker := " "
					if name == a.cfg.Fold.Model {
						marker = "*"
					}
					if _, err := fmt.Fprintf(w, "%s %s\n", marker, name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Start the HTTP server (GET /health, GET /metrics, POST /api/v1/fold,
/api/v1/count, /api/v1/consensus, /api/v1/design) and stop on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			srv, err := httpapi.NewServer(a.folder, a.registry, a.log, a.cfg.Server.Addr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("shutdown failed", zap.Error(err))
				return err
			}

			return <-errCh
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")

	return cmd
}
