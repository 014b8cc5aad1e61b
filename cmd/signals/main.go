package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/rxtech-lab/argo-signals/internal/config"
	"github.com/rxtech-lab/argo-signals/internal/datasource"
	"github.com/rxtech-lab/argo-signals/internal/evaluation"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/strategy"
	"github.com/rxtech-lab/argo-signals/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool("verbose") {
		return logger.NewLoggerWithLevel(zapcore.DebugLevel)
	}

	return logger.NewLogger()
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}

func listAction(_ context.Context, cmd *cli.Command) error {
	for _, name := range strategy.NewRegistry().ListStrategies() {
		fmt.Fprintln(cmd.Root().Writer, name)
	}

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Fprintln(cmd.Root().Writer, schema)

	return nil
}

func openDataSource(path string, l *logger.Logger) (datasource.DataSource, error) {
	dataSource, err := datasource.NewDataSource(":memory:", l)
	if err != nil {
		return nil, err
	}

	if err := dataSource.Initialize(path); err != nil {
		dataSource.Close()

		return nil, err
	}

	return dataSource, nil
}

func symbolsAction(_ context.Context, cmd *cli.Command) error {
	l, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer l.Sync()

	dataSource, err := openDataSource(cmd.String("data"), l)
	if err != nil {
		return err
	}
	defer dataSource.Close()

	symbols, err := dataSource.GetAllSymbols()
	if err != nil {
		return err
	}

	for _, symbol := range symbols {
		fmt.Fprintln(cmd.Root().Writer, symbol)
	}

	return nil
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	l, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer l.Sync()

	runConfig, err := config.Read(cmd.String("config"))
	if err != nil {
		return err
	}

	if data := cmd.String("data"); data != "" {
		runConfig.DataFile = data
	}

	if symbol := cmd.String("symbol"); symbol != "" {
		runConfig.Symbol = symbol
	}

	if err := runConfig.Validate(); err != nil {
		return err
	}

	request, err := runConfig.Request()
	if err != nil {
		return err
	}

	dataSource, err := openDataSource(runConfig.DataFile, l)
	if err != nil {
		return err
	}
	defer dataSource.Close()

	l.Debug("Running evaluation",
		zap.String("data", runConfig.DataFile),
		zap.String("symbol", request.Symbol),
		zap.Int("strategies", len(request.Jobs)))

	service := evaluation.NewService(dataSource, strategy.NewRegistry(), clock.New(), l)

	report, err := service.Run(ctx, request)
	if err != nil {
		return err
	}

	return writeJSON(cmd.Root().Writer, report)
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "signals",
		Usage:   "Evaluate trading strategies over market data and print their signals",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the available strategies",
				Action: listAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the run config",
				Action: schemaAction,
			},
			{
				Name:  "symbols",
				Usage: "List the symbols in a market data file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Parquet or CSV market data file",
						Required: true,
					},
				},
				Action: symbolsAction,
			},
			{
				Name:  "analyze",
				Usage: "Run the strategies of a run config and print the JSON report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML run config",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Market data file, overrides dataFile of the run config",
					},
					&cli.StringFlag{
						Name:    "symbol",
						Aliases: []string{"s"},
						Usage:   "Symbol, overrides symbol of the run config",
					},
				},
				Action: analyzeAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
