// Command quizgen prints a quiz for each document given on the command line.
//
//	quizgen [-n 5] [-s seed] [-o 4] [-j jobs] file...
//
// Output is one JSON object per file, in argument order.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/quizgen"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type fileResult struct {
	File  string      `json:"file"`
	Seed  int64       `json:"seed"`
	Quiz  domain.Quiz `json:"quiz"`
	Error string      `json:"error,omitempty"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	code := run(context.Background(), cfg.Generation, os.Args[1:], os.Stdout, os.Stderr)
	logger.Sync()
	os.Exit(code)
}

// run parses args, generates every quiz and returns the exit code.
func run(ctx context.Context, gen config.GenerationConfig, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("quizgen", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	numQuestions := flags.IntP("num-questions", "n", gen.NumQuestions, "questions per format")
	seed := flags.Int64P("seed", "s", 0, "seed for reproducible output (default: time based)")
	numOptions := flags.IntP("options", "o", gen.NumOptions, "options per multiple-choice question")
	jobs := flags.IntP("jobs", "j", runtime.NumCPU(), "files processed in parallel")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	files := flags.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "usage: quizgen [flags] file...")
		flags.PrintDefaults()
		return 2
	}
	if *numQuestions < 1 || (gen.MaxQuestions > 0 && *numQuestions > gen.MaxQuestions) {
		fmt.Fprintf(stderr, "num-questions must be between 1 and %d\n", gen.MaxQuestions)
		return 2
	}

	opts := quizgen.OptionsFromConfig(gen)
	opts.NumOptions = *numOptions
	generator, err := quizgen.NewGenerator(opts, logger.Get())
	if err != nil {
		fmt.Fprintf(stderr, "invalid generation settings: %v\n", err)
		return 2
	}

	baseSeed := *seed
	if !flags.Changed("seed") {
		baseSeed = time.Now().UnixNano()
	}

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if *jobs > 0 {
		g.SetLimit(*jobs)
	}
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Each file gets its own seed so a fixed -s reproduces every quiz.
			fileSeed := baseSeed + int64(i)
			quiz, err := generator.GenerateFile(gctx, path, *numQuestions, fileSeed)
			results[i] = fileResult{File: path, Seed: fileSeed, Quiz: quiz}
			if err != nil {
				logger.Get().Warn("Quiz generation failed", zap.String("file", path), zap.Error(err))
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(stderr, "quizgen: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	exitCode := 0
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(stderr, "quizgen: %v\n", err)
			return 1
		}
		if r.Error != "" {
			exitCode = 1
		}
	}
	return exitCode
}
