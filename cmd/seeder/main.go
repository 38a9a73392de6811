// Copyright 2025 Trovia Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Command seeder loads vendor submissions and moderation overrides into a
// directory database. It stands in for the external vendor-submission and
// moderation surfaces, which share the database with the directory itself.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/trovia/trovia/core"
	"github.com/trovia/trovia/ingest"
	"github.com/trovia/trovia/storage"
	badgerstore "github.com/trovia/trovia/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "seeder",
		Usage: "Seed vendor submissions and moderation overrides",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the directory database",
				Value:   "./trovia_db",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "vendors",
				Usage:     "Submit vendor records from a JSON file",
				ArgsUsage: "<file>",
				Action:    vendorsCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Validation worker count",
						Value: 4,
					},
				},
			},
			{
				Name:  "override",
				Usage: "Manage moderation overrides",
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Set an override for a provider",
						ArgsUsage: "<source> <provider-id>",
						Action:    overrideSetCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "removed",
								Usage: "Hide the provider from listings",
							},
							&cli.StringFlag{
								Name:  "verified",
								Usage: "Force verification state (true or false)",
							},
						},
					},
					{
						Name:      "clear",
						Usage:     "Clear the override for a provider",
						ArgsUsage: "<source> <provider-id>",
						Action:    overrideClearCommand,
					},
					{
						Name:   "list",
						Usage:  "List stored overrides",
						Action: overrideListCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openStores(c *cli.Context) (storage.Stores, error) {
	stores, err := badgerstore.Open(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open directory database: %w", err)
	}
	return stores, nil
}

func vendorsCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("input file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []core.Provider
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	stores, err := openStores(c)
	if err != nil {
		return err
	}
	defer stores.Close()

	pipeline, err := ingest.NewPipeline(stores.Vendors(), ingest.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.Submit(context.Background(), records)
	if err != nil {
		return err
	}

	fmt.Printf("accepted %d, rejected %d\n", len(report.Accepted), len(report.Rejected))
	for _, rej := range report.Rejected {
		fmt.Printf("  rejected %q: %v\n", rej.Record.Name, rej.Err)
	}
	return nil
}

func overrideSetCommand(c *cli.Context) error {
	source, id, err := overrideArgs(c)
	if err != nil {
		return err
	}

	var override core.Override
	if c.Bool("removed") {
		removed := true
		override.Removed = &removed
	}
	if c.IsSet("verified") {
		switch strings.ToLower(c.String("verified")) {
		case "true":
			verified := true
			override.Verified = &verified
		case "false":
			verified := false
			override.Verified = &verified
		default:
			return fmt.Errorf("invalid verified value %q: must be true or false", c.String("verified"))
		}
	}

	stores, err := openStores(c)
	if err != nil {
		return err
	}
	defer stores.Close()

	if err := stores.Overrides().Set(context.Background(), core.OverrideKey(source, id), override); err != nil {
		return err
	}
	fmt.Printf("override set for %s\n", core.OverrideKey(source, id))
	return nil
}

func overrideClearCommand(c *cli.Context) error {
	source, id, err := overrideArgs(c)
	if err != nil {
		return err
	}

	stores, err := openStores(c)
	if err != nil {
		return err
	}
	defer stores.Close()

	if err := stores.Overrides().Clear(context.Background(), core.OverrideKey(source, id)); err != nil {
		return err
	}
	fmt.Printf("override cleared for %s\n", core.OverrideKey(source, id))
	return nil
}

func overrideListCommand(c *cli.Context) error {
	stores, err := openStores(c)
	if err != nil {
		return err
	}
	defer stores.Close()

	overrides, err := stores.Overrides().Overrides(context.Background())
	if err != nil {
		return err
	}
	for key, o := range overrides {
		fmt.Printf("%s:", key)
		if o.Removed != nil {
			fmt.Printf(" removed=%t", *o.Removed)
		}
		if o.Verified != nil {
			fmt.Printf(" verified=%t", *o.Verified)
		}
		fmt.Println()
	}
	return nil
}

func overrideArgs(c *cli.Context) (core.Source, string, error) {
	source := core.Source(c.Args().Get(0))
	id := c.Args().Get(1)
	if source == "" || id == "" {
		return "", "", fmt.Errorf("source and provider id are required")
	}
	if err := core.ValidateSource(source); err != nil {
		return "", "", err
	}
	return source, id, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
