package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"tax-engine/internal/config"
	"tax-engine/internal/engine"
	"tax-engine/internal/logging"
	"tax-engine/internal/model"
	"tax-engine/internal/report"
	"tax-engine/internal/taxyear"
)

type app struct {
	tablesDir string
	logLevel  string
	cfg       config.Config
	registry  *taxyear.Registry
	log       *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "taxcalc",
		Short:        "Federal Form 1040 calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".env")
			if err != nil {
				return err
			}
			a.cfg = cfg
			if !cmd.Flags().Changed("tables-dir") {
				a.tablesDir = cfg.TablesDir
			}
			a.log, err = logging.New(a.logLevel)
			if err != nil {
				return err
			}
			a.registry = taxyear.NewRegistry(a.tablesDir,
				taxyear.WithRemote(cfg.TablesURL, 0), taxyear.WithLogger(a.log))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.tablesDir, "tables-dir", "", "directory of <year>.yaml tables overriding the built-in ones")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level")

	root.AddCommand(a.computeCmd(), a.tablesCmd())
	return root
}

func (a *app) computeCmd() *cobra.Command {
	var (
		file   string
		year   int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a return from a situation or calculation request file",
		Long: `Reads either a calculation request ({"situation": ..., "calculation_instructions": ...})
or a bare situation document and prints a summary of the computed return.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(file)
			if err != nil {
				return err
			}
			if year > 0 {
				req.TaxYear = year
			}

			eng := engine.New(a.registry, a.cfg.DefaultTaxYear, a.log)
			resp := eng.Process(req)
			out := cmd.OutOrStdout()

			if asJSON {
				raw, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(raw))
				return err
			}
			return a.printSummary(out, resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON input file")
	cmd.Flags().IntVar(&year, "year", 0, "tax year (overrides the file)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full calculation response as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readRequest(path string) (*model.CalculationRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req model.CalculationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if req.Situation == nil && len(req.CalculationInstructions.Mutations) == 0 {
		var sit model.Situation
		if err := json.Unmarshal(raw, &sit); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		req.Situation = &sit
	}
	return &req, nil
}

var errCalculationFailed = errors.New("calculation failed")

func (a *app) printSummary(out io.Writer, resp *model.CalculationResponse) error {
	result := resp.CalculationResult
	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		printMessages(out, result.Messages)
		return errCalculationFailed
	}

	ret := result.Return
	table, err := a.registry.Get(ret.TaxYear)
	if err != nil {
		return err
	}
	brackets, err := table.Brackets(ret.FilingStatus)
	if err != nil {
		return err
	}
	if err := report.Build(ret, brackets).Write(out, language.English); err != nil {
		return err
	}
	printMessages(out, result.Messages)
	return nil
}

func printMessages(out io.Writer, msgs []model.CalculationMessage) {
	if len(msgs) == 0 {
		return
	}
	fmt.Fprintln(out)
	for _, m := range msgs {
		fmt.Fprintf(out, "%s %s: %s\n", m.Level, m.Code, m.Message)
	}
}

func (a *app) tablesCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the constant table of a tax year, or list the supported years",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if year == 0 {
				for _, y := range a.registry.Years() {
					fmt.Fprintln(out, y)
				}
				return nil
			}
			table, err := a.registry.Get(year)
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(table)
			if err != nil {
				return err
			}
			_, err = out.Write(raw)
			return err
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "tax year")
	return cmd
}
