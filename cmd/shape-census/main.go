// Package main is the shape-census command: it counts and classifies the
// objects in photographs, or serves the same census over MCP on stdio.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ironsheep/shape-census/internal/census"
	"github.com/ironsheep/shape-census/internal/config"
	"github.com/ironsheep/shape-census/internal/logging"
	"github.com/ironsheep/shape-census/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	flagConfig = "config"
	flagDebug  = "debug"
	flagOut    = "out"
	flagJSON   = "json"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "load pipeline parameters from YAML `FILE`",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "enable debug logging (also " + logging.EnvLogLevel + "=debug)",
		},
	}
}

func analyzeFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:    flagOut,
			Aliases: []string{"o"},
			Usage:   "write the annotated image to `FILE`; with several images the image name is appended",
		},
		&cli.BoolFlag{
			Name:  flagJSON,
			Usage: "print reports as JSON instead of text",
		},
	)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "shape-census",
		Usage:           "count and classify the objects in photographs",
		ArgsUsage:       "IMAGE...",
		Version:         Version,
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags:           analyzeFlags(),
		Action:          analyzeAction,
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "run the shape census on one or more images",
				ArgsUsage: "IMAGE...",
				Flags:     analyzeFlags(),
				Action:    analyzeAction,
			},
			{
				Name:   "serve",
				Usage:  "serve the census as MCP tools over stdin/stdout",
				Flags:  commonFlags(),
				Action: serveAction,
			},
			{
				Name:   "version",
				Usage:  "print version, build time and commit",
				Action: versionAction,
			},
		},
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger shared by every
// command.
func setup(c *cli.Context) (config.Config, *zap.SugaredLogger, error) {
	logger := logging.NewLogger("shape-census", c.Bool(flagDebug) || logging.DebugFromEnv())

	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, nil, err
		}
		logger.Debugw("loaded config", "path", path)
	}
	return cfg, logger, nil
}

func analyzeAction(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return errors.New("no images given; see --help")
	}

	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	analyzer, err := census.NewAnalyzer(cfg, logger)
	if err != nil {
		return err
	}

	out := c.App.Writer
	failed := 0
	for _, path := range paths {
		if err := analyzeOne(c, analyzer, path, len(paths) > 1, out); err != nil {
			logger.Errorw("census failed", "path", path, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d images failed", failed, len(paths))
	}
	return nil
}

func analyzeOne(c *cli.Context, analyzer *census.Analyzer, path string, several bool, out io.Writer) error {
	res, err := analyzer.AnalyzeFile(path)
	if err != nil {
		return err
	}

	if c.Bool(flagJSON) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Report); err != nil {
			return errors.Wrap(err, "failed to write report")
		}
	} else if err := res.Report.WriteText(out); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	if dest := c.String(flagOut); dest != "" {
		if several {
			dest = annotatedPath(dest, path)
		}
		if err := census.SaveAnnotated(dest, res.Annotated); err != nil {
			return err
		}
	}
	return nil
}

// annotatedPath inserts the source image's base name before the extension of
// out: "annotated.png" with "photos/a.jpg" becomes "annotated-a.png".
func annotatedPath(out, source string) string {
	ext := filepath.Ext(out)
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return strings.TrimSuffix(out, ext) + "-" + name + ext
}

func serveAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	analyzer, err := census.NewAnalyzer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Debugw("starting MCP server", "version", Version, "build_time", BuildTime, "commit", GitCommit)
	return server.New(analyzer, logger.Named("server"), Version).Run()
}

func versionAction(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintf(w, "shape-census %s\n", Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	return nil
}
