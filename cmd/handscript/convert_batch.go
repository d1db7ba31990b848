package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	handscript "github.com/alnah/go-handscript"
	"github.com/alnah/go-handscript/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadInput        = errors.New("failed to read input file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrCreateOutputDir  = errors.New("failed to create output directory")
	ErrConversionFailed = errors.New("conversion failed")
)

// documentConverter is the part of handscript.Converter the batch uses.
type documentConverter interface {
	Convert(ctx context.Context, input handscript.Input) (*handscript.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ documentConverter = (*handscript.Converter)(nil)

// conversionParams groups settings shared by every job of a batch.
type conversionParams struct {
	processing handscript.ProcessingConfig
	chunking   handscript.ChunkConfig
	render     handscript.RenderSettings
	style      int
	bias       float64
	dateline   string
	title      string
	pdf        bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	Source   string
	Outputs  []string
	Pages    int
	Err      error
	Duration time.Duration
}

// convertBatch converts jobs concurrently, one pooled converter per worker.
// Results keep the order of jobs. A failed job does not stop the others.
func convertBatch(ctx context.Context, pool *handscript.ConverterPool, jobs []job, params *conversionParams) []ConversionResult {
	results := make([]ConversionResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(pool.Size())

	for i := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{Source: jobs[i].Source, Err: err}
				return nil
			}

			conv, err := pool.Acquire()
			if err != nil {
				results[i] = ConversionResult{Source: jobs[i].Source, Err: err}
				return nil
			}
			defer pool.Release(conv)

			results[i] = convertJob(ctx, conv, jobs[i], params)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// convertJob converts one job and writes its pages, plus the PDF when asked.
func convertJob(ctx context.Context, conv documentConverter, j job, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{Source: j.Source}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	text := j.Text
	if j.Path != "" {
		data, err := os.ReadFile(j.Path) // #nosec G304 -- discovered path
		if err != nil {
			return done(fmt.Errorf("%w: %v", ErrReadInput, err))
		}
		text = string(data)
	}

	title := params.title
	if title == "" {
		title = j.BaseName
	}

	out, err := conv.Convert(ctx, handscript.Input{
		Text:       text,
		Format:     j.Format,
		Title:      title,
		Processing: &params.processing,
		Chunking:   &params.chunking,
		Render:     &params.render,
		Style:      params.style,
		Bias:       params.bias,
		PDF:        params.pdf,
		Dateline:   params.dateline,
	})
	if err != nil {
		return done(err)
	}
	if len(out.Pages) == 0 {
		return done(nil)
	}

	if err := os.MkdirAll(j.OutputDir, dirPermissions); err != nil {
		return done(fmt.Errorf("%w: %v", ErrCreateOutputDir, err))
	}

	for _, page := range out.Pages {
		name := fileutil.PageFileName(j.BaseName, page.Number, len(out.Pages), "svg")
		path := filepath.Join(j.OutputDir, name)
		if err := fileutil.WriteFileAtomic(path, page.SVG, filePermissions); err != nil {
			return done(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.Outputs = append(result.Outputs, path)
	}

	if out.PDF != nil {
		path := filepath.Join(j.OutputDir, j.BaseName+".pdf")
		if err := fileutil.WriteFileAtomic(path, out.PDF, filePermissions); err != nil {
			return done(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.Outputs = append(result.Outputs, path)
	}

	result.Pages = len(out.Pages)
	return done(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Pages     int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Pages += r.Pages
	}
	return summary
}

// printResults writes one line per conversion and a summary for batches.
// Failures go to stderr; a single failure is left for the caller to report.
func printResults(results []ConversionResult, quiet, verbose bool, stdout, stderr io.Writer) ResultSummary {
	summary := countResults(results)
	batch := len(results) > 1

	for _, r := range results {
		if r.Err != nil {
			if batch {
				fmt.Fprintf(stderr, "FAILED %s: %v\n", r.Source, r.Err)
			}
			continue
		}
		if quiet {
			continue
		}

		switch {
		case r.Pages == 0:
			fmt.Fprintf(stdout, "%s: no text to write\n", r.Source)
		case verbose:
			fmt.Fprintf(stdout, "%s -> %d page(s) in %s (%v)\n", r.Source, r.Pages, filepath.Dir(r.Outputs[0]), r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(stdout, "%s -> %d page(s) in %s\n", r.Source, r.Pages, filepath.Dir(r.Outputs[0]))
		}
	}

	if batch && !quiet {
		fmt.Fprintf(stdout, "\n%d succeeded, %d failed, %d page(s) written\n", summary.Succeeded, summary.Failed, summary.Pages)
	}
	return summary
}

// batchError turns the results into the command error.
func batchError(results []ConversionResult, summary ResultSummary) error {
	if summary.Failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return fmt.Errorf("converting %s: %w", results[0].Source, results[0].Err)
	}
	return fmt.Errorf("%w: %d of %d document(s)", ErrConversionFailed, summary.Failed, len(results))
}
