package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bc-combo-solver/internal/combo"
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return ExitError{Code: 2, Err: err}
}

// cliState is shared by all subcommands; the root pre-run fills it in.
type cliState struct {
	configPath string
	verbose    bool
	logJSON    bool
	combosPath string
	catsPath   string

	cfg Config
}

func (st *cliState) dataset() (*Dataset, error) {
	return LoadDataset(st.cfg.Data.Combos, st.cfg.Data.Cats)
}

func newRootCmd() *cobra.Command {
	st := &cliState{}
	cmd := &cobra.Command{
		Use:   "bc-combo",
		Short: "Find the cheapest unit line-ups that reach a combo effect strength",
		Long: `bc-combo searches a combos table for sets of combos whose summed strength
reaches a target while needing as few distinct units as possible.

Data files may be TSV (header: Name, Effect, Unit1..Unit5), JSON or XLSX.
An optional cats table (First, Evolved, True, Ultra) adds evolution hints.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			initLogger(cmd.ErrOrStderr(), st.verbose, st.logJSON)
			cfg, err := LoadConfig(st.configPath)
			if err != nil {
				return usageError(err)
			}
			if cmd.Flags().Changed("combos") {
				cfg.Data.Combos = st.combosPath
			}
			if cmd.Flags().Changed("cats") {
				cfg.Data.Cats = st.catsPath
			}
			st.cfg = cfg
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&st.configPath, "config", "", "config file (default ./"+defaultConfigFile+" if present)")
	pf.BoolVarP(&st.verbose, "verbose", "v", false, "print search progress to stderr")
	pf.BoolVar(&st.logJSON, "log-json", false, "log as JSON lines instead of console text")
	pf.StringVar(&st.combosPath, "combos", "", "combos table (.tsv, .json or .xlsx)")
	pf.StringVar(&st.catsPath, "cats", "", "cats table with evolution forms; empty string disables")

	cmd.AddCommand(newSearchCmd(st), newEffectsCmd(st), newFormsCmd(st), newServeCmd(st))
	return cmd
}

func newSearchCmd(st *cliState) *cobra.Command {
	var (
		effect   string
		strength int
		maxUnits int
		jsonOut  bool
		xlsxPath string
		opts     combo.Options
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for combo sets reaching a strength within a unit budget",
		Long: `Search for sets of up to five combos whose total strength reaches --strength
using at most --max-units distinct units. Results are ranked by fewest units,
then fewest combos, then highest strength.

Examples:
  bc-combo search --effect "Attack Up" --strength 3 --max-units 4
  bc-combo search --strength 5 --max-units 6 --json
  bc-combo search --effect "Worker Start Lv." --strength 2 --xlsx out.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := st.cfg
			if !cmd.Flags().Changed("strength") {
				strength = cfg.Defaults.Strength
			}
			if !cmd.Flags().Changed("max-units") {
				maxUnits = cfg.Defaults.MaxUnits
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.Search.Timeout
			}
			if err := checkOptionFlags(cmd, opts); err != nil {
				return usageError(err)
			}
			o := cfg.Search.Options
			if opts.MaxComboSize != 0 {
				o.MaxComboSize = opts.MaxComboSize
			}
			if opts.SearchCap != 0 {
				o.SearchCap = opts.SearchCap
			}
			if opts.RankLimit != 0 {
				o.RankLimit = opts.RankLimit
			}

			req := combo.Request{EffectType: effect, TargetStrength: strength, MaxUnits: maxUnits}
			if err := req.Validate(); err != nil {
				return usageError(err)
			}

			ds, err := st.dataset()
			if err != nil {
				return err
			}
			res, err := runSearch(cmd.Context(), ds, req, o, timeout)
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				if err := ExportXLSX(xlsxPath, res); err != nil {
					return err
				}
				log.Info().Str("path", xlsxPath).Int("solutions", res.Count).Msg("exported")
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSONTo(out, res)
			}
			_, err = fmt.Fprint(out, FormatResult(res, ds.Forms, isTerminal(out)))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&effect, "effect", "e", "", "effect type to search (empty searches all types)")
	f.IntVarP(&strength, "strength", "s", 1, "total strength to reach")
	f.IntVarP(&maxUnits, "max-units", "u", 5, "maximum number of distinct units")
	f.BoolVar(&jsonOut, "json", false, "output results as JSON")
	f.StringVar(&xlsxPath, "xlsx", "", "also write results to this XLSX file")
	f.IntVar(&opts.MaxComboSize, "max-combos", 0, "maximum combos per solution (1-5, default from config)")
	f.IntVar(&opts.SearchCap, "cap", 0, "stop after this many distinct solutions (default from config)")
	f.IntVar(&opts.RankLimit, "limit", 0, "number of ranked solutions to print (default from config)")
	f.DurationVar(&timeout, "timeout", 0, "search deadline; partial results are printed when it fires")
	return cmd
}

// checkOptionFlags rejects search limits given on the command line that the
// config file would also reject.
func checkOptionFlags(cmd *cobra.Command, opts combo.Options) error {
	f := cmd.Flags()
	if f.Changed("max-combos") && (opts.MaxComboSize < 1 || opts.MaxComboSize > combo.HardMaxComboSize) {
		return fmt.Errorf("--max-combos must be between 1 and %d, got %d", combo.HardMaxComboSize, opts.MaxComboSize)
	}
	if f.Changed("cap") && opts.SearchCap < 1 {
		return fmt.Errorf("--cap must be at least 1, got %d", opts.SearchCap)
	}
	if f.Changed("limit") && opts.RankLimit < 1 {
		return fmt.Errorf("--limit must be at least 1, got %d", opts.RankLimit)
	}
	return nil
}

func newEffectsCmd(st *cliState) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "effects",
		Short: "List the effect types present in the combos table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := st.dataset()
			if err != nil {
				return err
			}
			types := ds.Catalog.EffectTypes()
			if jsonOut {
				return writeJSONTo(cmd.OutOrStdout(), effectsResponse{EffectTypes: types})
			}
			for _, t := range types {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func newFormsCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "forms <unit>",
		Short: "Show which evolution forms count as the given unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := st.dataset()
			if err != nil {
				return err
			}
			if ds.Forms == nil {
				return usageError(fmt.Errorf("no cats table loaded"))
			}
			forms := ds.Forms.Forms(args[0])
			if forms == nil {
				return ExitError{Code: 1, Err: fmt.Errorf("unit %q not found", args[0])}
			}
			for _, f := range forms {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func newServeCmd(st *cliState) *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search over HTTP",
		Long: `Serve a JSON API:

  GET  /healthz        dataset status
  GET  /effects        effect type vocabulary
  GET  /forms/{unit}   evolution forms accepted for a unit
  POST /search         {"effectType": "...", "strength": 3, "maxUnits": 4}

With --watch the data files are reloaded when they change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := st.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.Serve.Watch = watch
			}

			ds, err := st.dataset()
			if err != nil {
				return err
			}
			srv := newSearchServer(ds, cfg.Search.Options, cfg.Search.Timeout)

			ctx := cmd.Context()
			if cfg.Serve.Watch {
				err := watchFiles(ctx, ds.Sources, func() {
					next, err := st.dataset()
					if err != nil {
						log.Error().Err(err).Msg("reload failed, keeping previous data")
						return
					}
					srv.Swap(next)
				})
				if err != nil {
					return err
				}
			}
			return serveHTTP(ctx, cfg.Serve.Addr, srv.routes())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload data files when they change")
	return cmd
}

func writeJSONTo(w io.Writer, v any) error {
	body, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", body)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
