package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	handscript "github.com/alnah/go-handscript"
	"github.com/alnah/go-handscript/internal/config"
	"github.com/alnah/go-handscript/internal/hints"
	"github.com/alnah/go-handscript/internal/preset"
)

// Exit codes for the handscript CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitEngine  = 5 // Stroke engine errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, handscript.ErrBrowserConnect) ||
		errors.Is(err, handscript.ErrPageCreate) ||
		errors.Is(err, handscript.ErrPageLoad) ||
		errors.Is(err, handscript.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Engine errors (exit 5)
	if errors.Is(err, handscript.ErrStrokeGeneration) ||
		errors.Is(err, handscript.ErrEmptyStrokes) ||
		errors.Is(err, handscript.ErrEmptyCommand) {
		return ExitEngine
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidSettings) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrCSVColumn) ||
		errors.Is(err, handscript.ErrInvalidConfig) ||
		errors.Is(err, handscript.ErrStyleNotFound) ||
		errors.Is(err, handscript.ErrTemplateSetNotFound) ||
		errors.Is(err, handscript.ErrIncompleteTemplateSet) ||
		errors.Is(err, handscript.ErrInvalidAssetPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, preset.ErrPresetNotFound) ||
		errors.Is(err, preset.ErrInvalidPresetName) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoTextFiles) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadStdin) ||
		errors.Is(err, ErrReadCSV) ||
		errors.Is(err, ErrReadPreset) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns actionable advice for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, handscript.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, handscript.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if dir, err := config.UserDir(); err == nil {
			searched = append(searched, filepath.Join(dir, "config.yaml"))
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, handscript.ErrStyleNotFound):
		return hints.ForAssetNotFound("ink", handscript.BuiltinStyles())
	case errors.Is(err, handscript.ErrTemplateSetNotFound):
		return hints.ForAssetNotFound("paper", handscript.BuiltinPapers())
	case errors.Is(err, handscript.ErrPageOverflow):
		return hints.ForPageOverflow()
	case errors.Is(err, handscript.ErrEmptyCommand):
		return hints.ForEngineCommand("")
	case errors.Is(err, preset.ErrPresetNotFound):
		return hints.ForPresetNotFound()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
