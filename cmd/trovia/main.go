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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/trovia/trovia"
	"github.com/trovia/trovia/catalog"
	"github.com/trovia/trovia/core"
)

func main() {
	app := &cli.App{
		Name:  "trovia",
		Usage: "Local-service discovery directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
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
				Name:      "search",
				Usage:     "Search the provider listing",
				ArgsUsage: "[query words]",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category label, or 'all'",
						Value: core.FilterAll,
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Location label, or 'all'",
						Value: core.FilterAll,
					},
					&cli.StringFlag{
						Name:  "availability",
						Usage: "Availability status (Available, Busy, Offline), or 'all'",
						Value: core.FilterAll,
					},
					&cli.BoolFlag{
						Name:  "favorites",
						Usage: "Only favorited providers",
					},
					&cli.BoolFlag{
						Name:  "verified",
						Usage: "Only verified providers",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort mode (relevance, rating-desc, name-asc, status-availability)",
						Value: string(core.SortRelevance),
					},
					&cli.DurationFlag{
						Name:  "load-delay",
						Usage: "Simulated catalog fetch delay",
						Value: catalog.DefaultDelay,
					},
					&cli.BoolFlag{
						Name:  "fail-load",
						Usage: "Inject a catalog load failure",
					},
				},
			},
			{
				Name:      "favorite",
				Usage:     "Toggle a provider's favorite state",
				ArgsUsage: "<provider-id>",
				Action:    favoriteCommand,
			},
			{
				Name:   "favorites",
				Usage:  "List favorited provider IDs",
				Action: favoritesCommand,
			},
			{
				Name:   "history",
				Usage:  "Show recent search terms",
				Action: historyCommand,
			},
			{
				Name:      "detail",
				Usage:     "Show full detail for one provider (requires a signed-in role)",
				ArgsUsage: "<provider-id>",
				Action:    detailCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Record source (static or vendor)",
						Value: string(core.SourceStatic),
					},
				},
			},
			{
				Name:  "profile",
				Usage: "Show or update the stored profile",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the stored profile",
						Action: profileShowCommand,
					},
					{
						Name:   "set",
						Usage:  "Update profile fields",
						Action: profileSetCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "location",
								Usage: "Viewer location used for ranking",
							},
							&cli.StringFlag{
								Name:  "role",
								Usage: "Signed-in role (e.g. member, admin)",
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDirectory(c *cli.Context, opts ...trovia.Option) (*trovia.Directory, error) {
	dir, err := trovia.Open(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	return dir, nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	catalogOpts := []catalog.Option{
		catalog.WithDelay(c.Duration("load-delay")),
	}
	if c.Bool("fail-load") {
		catalogOpts = append(catalogOpts, catalog.WithFailure(nil))
	}

	dir, err := openDirectory(c, trovia.WithCatalogOptions(catalogOpts...))
	if err != nil {
		return err
	}
	defer dir.Close()

	state := core.NewFilterState()
	state.Query = strings.Join(c.Args().Slice(), " ")
	state.Category = c.String("category")
	state.Location = c.String("location")
	state.Availability = c.String("availability")
	state.OnlyFavorites = c.Bool("favorites")
	state.OnlyVerified = c.Bool("verified")

	mode := core.SortMode(c.String("sort"))

	start := time.Now()
	results, err := dir.Search(ctx, state, mode)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("%d providers (%s)\n", len(results), time.Since(start).Round(time.Millisecond))
	for _, r := range results {
		marker := " "
		if r.Top {
			marker = "*"
		}
		verified := ""
		if r.Verified {
			verified = " [verified]"
		}
		fmt.Printf("%s %-28s %-14s %-14s %-9s %.1f%s  (%s, score %.3f)\n",
			marker, r.Provider.Name, r.Provider.Category, r.Provider.Location,
			r.Provider.Status, r.Provider.Rating, verified, r.Source, r.Score)
	}
	return nil
}

func favoriteCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("provider id is required")
	}

	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	now, err := dir.ToggleFavorite(context.Background(), id)
	if err != nil {
		return err
	}
	if now {
		fmt.Printf("favorited %s\n", id)
	} else {
		fmt.Printf("unfavorited %s\n", id)
	}
	return nil
}

func favoritesCommand(c *cli.Context) error {
	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	favs, err := dir.Favorites(context.Background())
	if err != nil {
		return err
	}
	for id := range favs {
		fmt.Println(id)
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	terms, err := dir.RecentSearches(context.Background())
	if err != nil {
		return err
	}
	for _, term := range terms {
		fmt.Println(term)
	}
	return nil
}

func detailCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("provider id is required")
	}

	dir, err := openDirectory(c, trovia.WithCatalogOptions(catalog.WithDelay(0)))
	if err != nil {
		return err
	}
	defer dir.Close()

	res, err := dir.Detail(context.Background(), core.Source(c.String("source")), id)
	if err != nil {
		return err
	}

	fmt.Printf("Name:      %s\n", res.Provider.Name)
	fmt.Printf("Category:  %s\n", res.Provider.Category)
	fmt.Printf("Location:  %s\n", res.Provider.Location)
	fmt.Printf("Status:    %s\n", res.Provider.Status)
	fmt.Printf("Rating:    %.1f\n", res.Provider.Rating)
	fmt.Printf("Source:    %s\n", res.Source)
	fmt.Printf("Verified:  %t\n", res.Verified)
	return nil
}

func profileShowCommand(c *cli.Context) error {
	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	profile, err := dir.Profile(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Location: %s\n", profile.ViewerLocation())
	fmt.Printf("Role:     %s\n", profile.Role)
	return nil
}

func profileSetCommand(c *cli.Context) error {
	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	ctx := context.Background()
	profile, err := dir.Profile(ctx)
	if err != nil {
		return err
	}

	if c.IsSet("location") {
		profile.Location = c.String("location")
	}
	if c.IsSet("role") {
		profile.Role = c.String("role")
	}

	if err := dir.SaveProfile(ctx, profile); err != nil {
		return err
	}
	fmt.Println("profile updated")
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
