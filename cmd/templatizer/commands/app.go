package commands

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/arthur-debert/templatizer/pkg/config"
	"github.com/arthur-debert/templatizer/pkg/discovery"
	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/expression"
	"github.com/arthur-debert/templatizer/pkg/generator"
	"github.com/arthur-debert/templatizer/pkg/logging"
	"github.com/arthur-debert/templatizer/pkg/paths"
	"github.com/arthur-debert/templatizer/pkg/template"
	"github.com/arthur-debert/templatizer/pkg/ui"
)

// app is everything a command needs once configuration and discovery ran
type app struct {
	paths    paths.Paths
	cfg      *config.Config
	report   *discovery.Report
	gen      *generator.Generator
	renderer *ui.Renderer
}

func loadConfig(o *options) (paths.Paths, *config.Config, error) {
	p, err := paths.New()
	if err != nil {
		return nil, nil, err
	}

	loadOpts := config.DefaultLoadOptions(p)
	if o.configFile != "" {
		loadOpts.UserFile = paths.ExpandHome(o.configFile)
		loadOpts.RequireUserFile = true
	}
	if o.strict {
		loadOpts.Overrides = map[string]interface{}{"arguments.strict": true}
	}

	cfg, err := config.Load(loadOpts)
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

func newRenderer(o *options, cfg *config.Config, out io.Writer) (*ui.Renderer, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	if format == ui.FormatAuto {
		if file, ok := out.(*os.File); ok {
			format = ui.FormatForColor(cfg.Output.Color, file)
		} else {
			format = ui.FormatText
		}
	}
	ui.ConfigureColor(format == ui.FormatTerminal)
	return ui.NewRenderer(format, out)
}

// loadApp loads configuration, discovers descriptors and registers them
// resolved against args
func loadApp(o *options, args map[string]string, strict bool, out io.Writer) (*app, error) {
	logger := logging.GetLogger("cmd")

	p, cfg, err := loadConfig(o)
	if err != nil {
		return nil, err
	}

	renderer, err := newRenderer(o, cfg, out)
	if err != nil {
		return nil, err
	}

	report := discovery.Scan(afero.NewOsFs(), cfg.Templates.Paths, cfg.Templates.Extensions)
	gen := generator.New()
	report.Register(gen, args, template.Options{
		StrictArguments: strict && cfg.Arguments.Strict,
		Evaluator:       expression.NewEvaluator(),
	})

	logger.Debug().
		Strs("paths", cfg.Templates.Paths).
		Int("templates", gen.Len()).
		Int("problems", len(report.Failures())).
		Msg("Templates loaded")

	return &app{paths: p, cfg: cfg, report: report, gen: gen, renderer: renderer}, nil
}

// lookup finds a template and explains a miss with the descriptor's own
// error when a descriptor of that name failed to load
func (a *app) lookup(name string) (*template.Template, error) {
	t, err := a.gen.Lookup(name)
	if err == nil {
		return t, nil
	}
	if failure := a.report.Failure(name); failure != nil {
		return nil, failure
	}
	return nil, err
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot determine working directory")
		}
		return wd, nil
	}

	abs, err := filepath.Abs(paths.ExpandHome(dir))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", dir).WithDetail("path", dir)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput, "working directory %s does not exist", dir).
			WithDetail("path", abs)
	}
	return abs, nil
}
