package main

import (
	"context"
	"errors"
	"fmt"

	handscript "github.com/alnah/go-handscript"
	"github.com/alnah/go-handscript/internal/config"
	"github.com/alnah/go-handscript/internal/dateutil"
	"github.com/alnah/go-handscript/internal/hints"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := resolveConfig(ctx, &flags.settings, envCfg)
	if err != nil {
		return err
	}
	if flags.settings.changed("pdf") {
		cfg.Output.PDF = flags.out.pdf
	}

	log := newLogger(cfg, &flags.settings.common, env.Stderr)
	warnUnknownEnvVars(env.Environ(), log)
	setMaxProcs(log)

	timeout, err := resolveTimeout(flags.out.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}
	workers, err := resolveWorkers(flags.out.workers, cfg.Workers)
	if err != nil {
		return err
	}
	if cfg.Assets.BasePath != "" {
		if _, err := handscript.NewAssetLoader(cfg.Assets.BasePath); err != nil {
			return err
		}
	}

	jobs, err := collectJobs(positional, flags, cfg, env)
	if err != nil {
		return err
	}

	// Resolve "today" once so every document of a batch carries the same date.
	dateline, err := dateutil.Dateline(cfg.Input.Dateline, env.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", handscript.ErrInvalidDateline, err)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	size := min(workers, len(jobs))
	log.Debug("starting conversion", "documents", len(jobs), "workers", size, "engine", cfg.Handwriting.Engine)
	pool := handscript.NewConverterPool(size, converterOptions(cfg, engine, log, timeout)...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Warn("closing converters", "err", err)
		}
	}()

	params := &conversionParams{
		processing: cfg.ProcessingSettings(),
		chunking:   cfg.ChunkSettings(),
		render:     cfg.RenderSettings(),
		style:      cfg.Handwriting.Style,
		bias:       cfg.Handwriting.Bias,
		dateline:   dateline,
		title:      flags.settings.input.title,
		pdf:        cfg.Output.PDF,
	}

	results := convertBatch(ctx, pool, jobs, params)
	summary := printResults(results, flags.settings.common.quiet, flags.settings.common.verbose, env.Stdout, env.Stderr)
	return withEngineHint(batchError(results, summary), cfg)
}

// collectJobs resolves the documents to convert. Sources, in order of
// precedence: --csv, a positional path ("-" is stdin), input.defaultDir.
func collectJobs(positional []string, flags *convertFlags, cfg *config.Config, env *Environment) ([]job, error) {
	var format handscript.InputFormat
	if cfg.Input.Format != "" {
		f, err := handscript.ParseInputFormat(cfg.Input.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	outputDir := flags.out.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	if flags.out.csv != "" {
		return readCSVJobs(flags.out.csv, flags.out.column, outputDir, format)
	}

	input := ""
	if len(positional) > 0 {
		input = positional[0]
	} else if cfg.Input.DefaultDir != "" {
		input = cfg.Input.DefaultDir
	}

	switch input {
	case "":
		return nil, ErrNoInput
	case "-":
		j, err := readStdinJob(env.Stdin, outputDir, flags.out.name, format)
		if err != nil {
			return nil, err
		}
		return []job{j}, nil
	default:
		return discoverFiles(input, outputDir, format)
	}
}

// withEngineHint appends advice for external engine failures.
func withEngineHint(err error, cfg *config.Config) error {
	if err == nil || cfg.Handwriting.Engine != config.EngineCommand {
		return err
	}
	if !errors.Is(err, handscript.ErrStrokeGeneration) && !errors.Is(err, handscript.ErrEmptyStrokes) {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForEngineCommand(cfg.Handwriting.Command[0]))
}
