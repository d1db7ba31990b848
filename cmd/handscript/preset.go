package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-handscript/internal/config"
	"github.com/alnah/go-handscript/internal/fileutil"
	"github.com/alnah/go-handscript/internal/preset"
)

// presetFlags holds flags shared by the preset subcommands.
type presetFlags struct {
	config string
	db     string
	output string
	name   string
}

// addPresetStoreFlags adds the flags that locate the preset store.
func addPresetStoreFlags(fs *flag.FlagSet, f *presetFlags) {
	fs.StringVar(&f.db, "db", "", "preset database path")
}

// runPreset dispatches the preset subcommands.
func runPreset(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printPresetUsage(env.Stderr)
		return fmt.Errorf("%w: preset needs a subcommand", ErrUsage)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return runPresetList(ctx, rest, env)
	case "show", "export":
		return runPresetExport(ctx, rest, env)
	case "save":
		return runPresetSave(ctx, rest, env)
	case "delete":
		return runPresetDelete(ctx, rest, env)
	case "import":
		return runPresetImport(ctx, rest, env)
	default:
		printPresetUsage(env.Stderr)
		return fmt.Errorf("%w: unknown preset subcommand %q", ErrUsage, sub)
	}
}

// parsePresetFlags parses store flags plus the extras, and checks the
// number of positional arguments.
func parsePresetFlags(name string, args []string, env *Environment, wantArgs int, extra func(*flag.FlagSet, *presetFlags)) (*presetFlags, []string, error) {
	f := &presetFlags{}
	fs := newFlagSet("preset "+name, env.Stderr, printPresetUsage)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	addPresetStoreFlags(fs, f)
	if extra != nil {
		extra(fs, f)
	}

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() != wantArgs {
		return nil, nil, fmt.Errorf("%w: preset %s takes %d argument(s), got %d", ErrUsage, name, wantArgs, fs.NArg())
	}
	return f, fs.Args(), nil
}

// openStoreFor opens the preset store selected by --db, the environment
// or the config file.
func openStoreFor(f *presetFlags, env *Environment) (*preset.Store, error) {
	cfg := config.DefaultConfig()
	envCfg := loadEnvConfig(env.Getenv)

	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	applyEnvConfig(envCfg, cfg)
	if f.db != "" {
		cfg.Presets.Path = f.db
	}
	return openPresetStore(cfg)
}

func runPresetList(ctx context.Context, args []string, env *Environment) error {
	f, _, err := parsePresetFlags("list", args, env, 0, nil)
	if err != nil {
		return err
	}
	store, err := openStoreFor(f, env)
	if err != nil {
		return err
	}
	defer store.Close()

	presets, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		fmt.Fprintf(env.Stdout, "no presets in %s\n", store.Path())
		return nil
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTYLE\tBIAS\tPAPER\tINK\tUPDATED")
	for _, p := range presets {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			p.Name, p.Style, strconv.FormatFloat(p.Bias, 'f', -1, 64),
			p.Render.Template, p.Render.Style, p.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runPresetExport(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parsePresetFlags("export", args, env, 1, func(fs *flag.FlagSet, f *presetFlags) {
		fs.StringVarP(&f.output, "output", "o", "", "write YAML to a file instead of stdout")
	})
	if err != nil {
		return err
	}
	store, err := openStoreFor(f, env)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Get(ctx, positional[0])
	if err != nil {
		return err
	}
	data, err := preset.Export(*p)
	if err != nil {
		return err
	}

	if f.output == "" {
		_, err = env.Stdout.Write(data)
		return err
	}
	if err := fileutil.WriteFileAtomic(f.output, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	fmt.Fprintf(env.Stdout, "exported %s to %s\n", p.Name, f.output)
	return nil
}

// runPresetSave stores the settings given by config, environment and flags
// under a name. An existing preset of that name is replaced.
func runPresetSave(ctx context.Context, args []string, env *Environment) error {
	sf := &settingsFlags{}
	pf := &presetFlags{}
	fs := newFlagSet("preset save", env.Stderr, printPresetUsage)
	addSettingsFlags(fs, sf)
	addPresetStoreFlags(fs, pf)
	if err := parseFlagSet(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: preset save takes 1 argument, got %d", ErrUsage, fs.NArg())
	}
	name := fs.Arg(0)
	if err := preset.ValidateName(name); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	if pf.db != "" {
		envCfg.PresetsPath = pf.db
	}
	cfg, err := resolveConfig(ctx, sf, envCfg)
	if err != nil {
		return err
	}

	store, err := openPresetStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	p := preset.Preset{
		Name:       name,
		Style:      cfg.Handwriting.Style,
		Bias:       cfg.Handwriting.Bias,
		Processing: cfg.ProcessingSettings(),
		Chunking:   cfg.ChunkSettings(),
		Render:     cfg.RenderSettings(),
	}
	if err := store.Save(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "saved preset %s\n", name)
	return nil
}

func runPresetDelete(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parsePresetFlags("delete", args, env, 1, nil)
	if err != nil {
		return err
	}
	store, err := openStoreFor(f, env)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(ctx, positional[0]); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "deleted preset %s\n", positional[0])
	return nil
}

// runPresetImport reads a YAML preset and saves it. --name overrides the
// name in the file.
func runPresetImport(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parsePresetFlags("import", args, env, 1, func(fs *flag.FlagSet, f *presetFlags) {
		fs.StringVar(&f.name, "name", "", "store under this name")
	})
	if err != nil {
		return err
	}

	data, err := readPresetFile(positional[0], env.Stdin)
	if err != nil {
		return err
	}
	p, err := preset.ImportAs(data, f.name)
	if err != nil {
		return fmt.Errorf("preset %s: %w", positional[0], err)
	}

	store, err := openStoreFor(f, env)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "imported preset %s\n", p.Name)
	return nil
}

// readPresetFile reads a preset file, or stdin for "-".
func readPresetFile(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadStdin, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadPreset, err)
	}
	return data, nil
}
