// Copyright 2025 Atarsearch Authors
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

	"github.com/urfave/cli/v2"

	"github.com/atarsearch/atarsearch"
	"github.com/atarsearch/atarsearch/core"
	"github.com/atarsearch/atarsearch/ingestion"
	"github.com/atarsearch/atarsearch/search"
)

func main() {
	app := &cli.App{
		Name:   "atarsearch",
		Usage:  "Search and rank admissions data: courses, scaled subjects, student results",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Load dataset files into the database",
				Action: migrateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "courses",
						Usage: "Path to a course dataset JSON file",
					},
					&cli.StringFlag{
						Name:  "subjects",
						Usage: "Path to a subject scaling dataset JSON file",
					},
					&cli.StringFlag{
						Name:  "students",
						Usage: "Path to a student results dataset JSON file",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent batch writers",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records written per transaction",
						Value: 200,
					},
				},
			},
			{
				Name:      "courses",
				Usage:     "Search and rank courses",
				ArgsUsage: "[query]",
				Action:    coursesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "atar",
						Usage: "ATAR used to classify courses as safe, target, or reach",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Keep only one category (safe, target, reach, unknown)",
						Value: "all",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (0 = no limit)",
					},
				},
			},
			{
				Name:      "subjects",
				Usage:     "Search scaled subjects",
				ArgsUsage: "[query]",
				Action:    subjectsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: search.DefaultSubjectLimit,
					},
				},
			},
			{
				Name:      "students",
				Usage:     "Search student results",
				ArgsUsage: "[query]",
				Action:    studentsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Restrict results to one graduating year",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrateCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.String("courses") == "" && c.String("subjects") == "" && c.String("students") == "" {
		return fmt.Errorf("nothing to load: pass at least one of --courses, --subjects, --students")
	}

	db, err := atarsearch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	opts := []ingestion.Option{ingestion.WithBatchSize(c.Int("batch-size"))}
	if c.Int("pool-size") > 0 {
		opts = append(opts, ingestion.WithPoolSize(c.Int("pool-size")))
	}
	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	load := func(path, kind string, fn func(context.Context, *os.File) (int, error)) error {
		if path == "" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s dataset: %w", kind, err)
		}
		defer f.Close()
		n, err := fn(ctx, f)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", kind, err)
		}
		fmt.Fprintf(os.Stderr, "Loaded %d %s from %s\n", n, kind, path)
		return nil
	}

	if err := load(c.String("courses"), "courses", func(ctx context.Context, f *os.File) (int, error) {
		return pipeline.LoadCourses(ctx, f)
	}); err != nil {
		return err
	}
	if err := load(c.String("subjects"), "subjects", func(ctx context.Context, f *os.File) (int, error) {
		return pipeline.LoadSubjects(ctx, f)
	}); err != nil {
		return err
	}
	return load(c.String("students"), "students", func(ctx context.Context, f *os.File) (int, error) {
		return pipeline.LoadStudents(ctx, f)
	})
}

func coursesCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := atarsearch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	results, err := db.SearchCourses(ctx, search.CourseSearchOptions{
		SearchTerm: strings.Join(c.Args().Slice(), " "),
		Category:   core.Category(strings.ToLower(c.String("category"))),
		ATAR:       c.Float64("atar"),
		Limit:      c.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("course search failed: %w", err)
	}

	for _, course := range results {
		fmt.Printf("%-8s %-50s %-30s %6s  %s\n",
			course.Code, course.Name, course.Institution, course.Rank, course.Category)
	}
	fmt.Fprintf(os.Stderr, "%d courses\n", len(results))
	return nil
}

func subjectsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := atarsearch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	results, err := db.SearchSubjects(ctx, search.SubjectSearchOptions{
		Query: strings.Join(c.Args().Slice(), " "),
		Limit: c.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("subject search failed: %w", err)
	}

	for _, subject := range results {
		fmt.Printf("%-10s %-40s mean=%.1f stdev=%.1f\n",
			subject.Code, subject.Name, subject.Mean, subject.Stdev)
	}
	fmt.Fprintf(os.Stderr, "%d subjects\n", len(results))
	return nil
}

func studentsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := atarsearch.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	results, err := db.SearchStudents(ctx, strings.Join(c.Args().Slice(), " "), c.Int("year"))
	if err != nil {
		return fmt.Errorf("student search failed: %w", err)
	}

	for _, student := range results {
		fmt.Printf("%-30s %-30s %d\n", student.Name, student.School, student.Year)
		for _, score := range student.Subjects {
			marker := ""
			if score.Perfect() {
				marker = " *"
			}
			fmt.Printf("    %-40s %d%s\n", score.Subject, score.Score, marker)
		}
	}
	fmt.Fprintf(os.Stderr, "%d students\n", len(results))
	return nil
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
