package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/label-extract/internal/annotation"
	"github.com/ironsheep/label-extract/internal/batch"
	"github.com/ironsheep/label-extract/internal/config"
	"github.com/ironsheep/label-extract/internal/extract"
	"github.com/ironsheep/label-extract/internal/imaging"
	"github.com/ironsheep/label-extract/internal/lexicon"
	"github.com/ironsheep/label-extract/internal/logging"
	"github.com/ironsheep/label-extract/internal/ocr"
	"github.com/ironsheep/label-extract/internal/reconstruct"
	"github.com/ironsheep/label-extract/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	mode := ""
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "label-extract %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printUsage(stdout)
			return 0
		case "serve":
			mode = "serve"
		default:
			mode = args[0]
		}
	}
	if len(args) > 1 {
		fmt.Fprintln(stderr, "error: too many arguments")
		printUsage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// Logs go to stderr; stdout carries transcripts or MCP traffic.
	log := logging.New(stderr, "label-extract", cfg.Debug)
	log.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	x := newExtractor(cfg, log)
	x.Stdout = stdout

	switch mode {
	case "serve":
		srv := server.New(server.Options{
			Extractor: x,
			Root:      cfg.Root,
			OutputDir: cfg.OutputDir,
			Skip:      cfg.Skip,
			Version:   Version,
			Log:       log,
		})
		err = srv.Run(ctx)
	case "":
		d := &batch.Driver{
			Root:      cfg.Root,
			OutputDir: cfg.OutputDir,
			Skip:      cfg.Skip,
			Workers:   cfg.Workers,
			Processor: x,
			Log:       log,
		}
		_, err = d.Run(ctx)
	default:
		_, err = x.Extract(ctx, mode, "")
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newExtractor(cfg *config.Config, log *logging.Logger) *extract.Extractor {
	var src annotation.Source = &annotation.FileSource{Root: cfg.Root}
	if cfg.Source == config.SourceTesseract {
		src = ocr.NewTesseractSource(cfg.Root, log)
	}

	var cropper imaging.Cropper = &imaging.GraphicsMagickCropper{Path: cfg.GMPath}
	if cfg.Cropper == config.CropperNative {
		cropper = imaging.NewNativeCropper(imaging.NewImageCache())
	}

	dict := lexicon.New(cfg.Dictionary, lexicon.DefaultExtras...)

	return &extract.Extractor{
		Source:    src,
		Engine:    reconstruct.New(cfg.Layout, dict, log),
		Cropper:   cropper,
		PhotoRoot: cfg.Root,
		OutputDir: cfg.OutputDir,
		Overlay:   cfg.Debug,
		Log:       log,
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "label-extract - reconstruct label text lines from OCR annotations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  label-extract              Extract every label under the content root")
	fmt.Fprintln(w, "  label-extract IDENTIFIER   Extract one label, transcript to stdout")
	fmt.Fprintln(w, "  label-extract serve        Run as an MCP server on stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (a .env file in the working directory is also read):")
	fmt.Fprintln(w, "  LABEL_EXTRACT_ROOT=./data        Content tree with <id>.txt and <id>.rot.png")
	fmt.Fprintln(w, "  LABEL_EXTRACT_OUTPUT_DIR=.       Where transcripts and crops are written")
	fmt.Fprintln(w, "  LABEL_EXTRACT_DICTIONARY=path    Word list (default /usr/share/dict/words)")
	fmt.Fprintln(w, "  LABEL_EXTRACT_SKIP=a,b           Identifiers excluded from batch runs")
	fmt.Fprintln(w, "  LABEL_EXTRACT_WORKERS=N          Concurrent extractions (default: CPU count)")
	fmt.Fprintln(w, "  LABEL_EXTRACT_CROPPER=gm|native  Crop with GraphicsMagick or in-process")
	fmt.Fprintln(w, "  LABEL_EXTRACT_GM_PATH=gm         GraphicsMagick binary")
	fmt.Fprintln(w, "  LABEL_EXTRACT_SOURCE=json|tesseract")
	fmt.Fprintln(w, "  LABEL_EXTRACT_LAYOUT=file.yaml   Layout overrides")
	fmt.Fprintln(w, "  LABEL_EXTRACT_LOG_LEVEL=debug    Enable debug logging (as does DEBUG)")
}
