package handscript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// ErrEmptyCommand is returned by NewCommandEngine for an empty argv.
var ErrEmptyCommand = errors.New("engine command cannot be empty")

// maxStderrLen bounds the engine stderr quoted in errors.
const maxStderrLen = 512

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) (stdout, stderr []byte, err error)
}

// execRunner implements CommandRunner using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- command comes from user config
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CommandEngine runs an external program once per chunk. The program reads
// one JSON request on stdin:
//
//	{"text": "hello world", "style": 3, "bias": 0.75}
//
// and writes the strokes as JSON on stdout:
//
//	{"points": [{"x": 0, "y": 0}, {"x": 4.2, "y": 6.1, "pen_up": true}]}
//
// Wrap it in a SerialEngine when the program must not run concurrently.
type CommandEngine struct {
	name   string
	args   []string
	runner CommandRunner
}

// NewCommandEngine creates a CommandEngine for argv, e.g.
// []string{"python3", "synthesize.py"}.
func NewCommandEngine(argv []string) (*CommandEngine, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, ErrEmptyCommand
	}
	return &CommandEngine{name: argv[0], args: argv[1:], runner: execRunner{}}, nil
}

type commandRequest struct {
	Text  string  `json:"text"`
	Style int     `json:"style"`
	Bias  float64 `json:"bias"`
}

type commandPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	PenUp bool    `json:"pen_up"`
}

type commandResponse struct {
	Points []commandPoint `json:"points"`
}

// Generate implements StrokeGenerator.
func (e *CommandEngine) Generate(ctx context.Context, req StrokeRequest) ([]Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(commandRequest{Text: req.Text, Style: req.Style, Bias: req.Bias})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, payload, e.name, e.args...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		if msg := trimStderr(stderr); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", e.name, err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", e.name, err)
	}

	var resp commandResponse
	if err := json.Unmarshal(stdout, &resp); err != nil {
		return nil, fmt.Errorf("decoding output of %s: %w", e.name, err)
	}

	points := make([]Point, len(resp.Points))
	for i, p := range resp.Points {
		points[i] = Point{X: p.X, Y: p.Y, PenUp: p.PenUp}
	}
	return points, nil
}

func trimStderr(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxStderrLen {
		cut := maxStderrLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
