package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"github.com/yanun0323/logs"

	"github.com/quantetra/backtester/config"
	"github.com/quantetra/backtester/engine"
)

func main() {
	app := &cli.App{
		Name:  "backtester",
		Usage: "event-driven trading strategy backtester",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the run configuration file",
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "override the configured strategy",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every event as it is processed",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logs.Fatalf("%v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if s := c.String("strategy"); s != "" {
		cfg.Strategy = s
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}

	bt, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if err := bt.Run(c.Context); err != nil {
		return err
	}

	bt.Statistics.PrintResult()

	if path := cfg.Export.FillsCSV; path != "" {
		if err := exportFills(bt, path); err != nil {
			return err
		}
		logs.Infof("fill audit trail written to %s", path)
	}
	return nil
}

func exportFills(bt *engine.BackTest, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bt.Compliance.ExportCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
