package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pcalab/pkg/config"
	"pcalab/pkg/data"
	"pcalab/pkg/dataprep"
	"pcalab/pkg/pipeline"
	"pcalab/pkg/report"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pcalab",
		Short:         "Standardize a feature table and run principal component analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

type runFlags struct {
	configPath   string
	input        string
	features     []string
	label        string
	ignore       []string
	components   int
	maxSweeps    int
	tolerance    float64
	format       string
	plot         string
	variancePlot string
	logLevel     string
}

func bindRunFlags(fs *pflag.FlagSet, f *runFlags) {
	fs.StringVar(&f.configPath, "config", "", "YAML run configuration")
	fs.StringVar(&f.input, "input", "", "CSV file to analyse (default: built-in classroom dataset)")
	fs.StringSliceVar(&f.features, "features", nil, "features to analyse, in order")
	fs.StringVar(&f.label, "label", "", "CSV column used as row labels")
	fs.StringSliceVar(&f.ignore, "ignore", nil, "CSV columns to skip")
	fs.IntVarP(&f.components, "components", "k", 0, "components to keep (0 = all)")
	fs.IntVar(&f.maxSweeps, "max-sweeps", 0, "Jacobi sweep budget")
	fs.Float64Var(&f.tolerance, "tolerance", 0, "Jacobi relative convergence tolerance")
	fs.StringVar(&f.format, "format", "", "report format: text or yaml")
	fs.StringVar(&f.plot, "plot", "", "write a PC1/PC2 scatter to this file (.png, .svg, .pdf)")
	fs.StringVar(&f.variancePlot, "variance-plot", "", "write an explained variance bar chart to this file")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// apply overlays flags the user set on cfg.
func (f *runFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("input") {
		cfg.Input = f.input
	}
	if fs.Changed("features") {
		cfg.Features = f.features
	}
	if fs.Changed("label") {
		cfg.LabelColumn = f.label
	}
	if fs.Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if fs.Changed("components") {
		cfg.Components = f.components
	}
	if fs.Changed("max-sweeps") {
		cfg.MaxSweeps = f.maxSweeps
	}
	if fs.Changed("tolerance") {
		cfg.Tolerance = f.tolerance
	}
	if fs.Changed("format") {
		cfg.Output.Format = f.format
	}
	if fs.Changed("plot") {
		cfg.Output.Plot = f.plot
	}
	if fs.Changed("variance-plot") {
		cfg.Output.VariancePlot = f.variancePlot
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
}

func newRunCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the PCA pipeline and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if flags.configPath != "" {
				loaded, err := config.Load(flags.configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			flags.apply(cmd.Flags(), &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			lvl, _ := cfg.Log.ZerologLevel()
			zerolog.SetGlobalLevel(lvl)
			return run(cfg, cmd.OutOrStdout(), log.Logger)
		},
	}
	bindRunFlags(cmd.Flags(), &flags)
	return cmd
}

// run loads the table named by cfg, runs the pipeline and writes reports.
func run(cfg config.Config, out io.Writer, logger zerolog.Logger) error {
	table, extra, err := loadTable(cfg)
	if err != nil {
		return err
	}
	logger.Info().Str("input", inputName(cfg)).Int("rows", table.Len()).Strs("features", table.Names).Msg("table loaded")

	opts := []pipeline.Option{
		pipeline.WithComponents(cfg.Components),
		pipeline.WithMaxSweeps(cfg.MaxSweeps),
		pipeline.WithTolerance(cfg.Tolerance),
		pipeline.WithLogger(logger),
	}
	if len(cfg.Features) > 0 {
		opts = append(opts, pipeline.WithSchema(pipeline.Schema{FeatureNames: cfg.Features}))
	}
	res, err := pipeline.New(opts...).Run(table)
	if err != nil {
		return err
	}
	logger.Info().
		Int("components", res.K).
		Float64("pc1_ratio", res.Components[0].ExplainedVarianceRatio).
		Msg("pca complete")

	switch cfg.Output.Format {
	case "yaml":
		err = report.WriteYAML(out, res, extra...)
	default:
		err = report.WriteText(out, res, extra...)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.Output.Plot != "" {
		if err := report.PlotProjection(res, cfg.Output.Plot); err != nil {
			return fmt.Errorf("plot projection: %w", err)
		}
		logger.Info().Str("path", cfg.Output.Plot).Msg("saved projection plot")
	}
	if cfg.Output.VariancePlot != "" {
		if err := report.PlotExplainedVariance(res, cfg.Output.VariancePlot); err != nil {
			return fmt.Errorf("plot explained variance: %w", err)
		}
		logger.Info().Str("path", cfg.Output.VariancePlot).Msg("saved explained variance plot")
	}
	return nil
}

// loadTable returns the analysed table plus display-only columns.
func loadTable(cfg config.Config) (*data.FeatureTable, []report.Column, error) {
	if cfg.Input != "" {
		t, err := data.LoadCSVFile(cfg.Input, data.CSVOptions{
			LabelColumn: cfg.LabelColumn,
			Features:    cfg.Features,
			Ignore:      cfg.Ignore,
		})
		return t, nil, err
	}

	t := data.Students()
	if len(cfg.Features) > 0 {
		var err error
		if t, err = t.Select(cfg.Features...); err != nil {
			return nil, nil, err
		}
	}
	grades := data.StudentGrades()
	codes, err := dataprep.OrdinalEncode(grades, data.GradeEncoding)
	if err != nil {
		return nil, nil, err
	}
	encoded := make([]string, len(codes))
	for i, c := range codes {
		encoded[i] = strconv.Itoa(c)
	}
	extra := []report.Column{
		{Header: data.FinalGrade, Values: grades},
		{Header: data.FinalGradeEncoded, Values: encoded},
	}
	return t, extra, nil
}

func inputName(cfg config.Config) string {
	if cfg.Input == "" {
		return "classroom"
	}
	return cfg.Input
}
