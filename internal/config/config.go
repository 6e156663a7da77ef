// Package config loads process configuration from the environment, an
// optional .env file and an optional YAML layout file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/ironsheep/label-extract/internal/batch"
	"github.com/ironsheep/label-extract/internal/layout"
	"github.com/ironsheep/label-extract/internal/lexicon"
)

// Prefix is prepended to every environment variable name below.
const Prefix = "LABEL_EXTRACT_"

// Environment variable names, without Prefix.
const (
	EnvRoot       = "ROOT"
	EnvOutputDir  = "OUTPUT_DIR"
	EnvDictionary = "DICTIONARY"
	EnvSkip       = "SKIP"
	EnvWorkers    = "WORKERS"
	EnvCropper    = "CROPPER"
	EnvGMPath     = "GM_PATH"
	EnvSource     = "SOURCE"
	EnvLayout     = "LAYOUT"
	EnvLogLevel   = "LOG_LEVEL"

	// EnvDebug is read without Prefix; being set at all enables debug output.
	EnvDebug = "DEBUG"
)

// Cropper and source choices.
const (
	CropperGM     = "gm"
	CropperNative = "native"

	SourceJSON      = "json"
	SourceTesseract = "tesseract"
)

// Config is the resolved process configuration.
type Config struct {
	Root       string
	OutputDir  string
	Dictionary string
	Skip       []string
	Workers    int
	Cropper    string
	GMPath     string
	Source     string
	LayoutPath string
	Debug      bool

	Layout *layout.Layout
}

// Load reads the given .env files (".env" when none are named), then
// resolves the configuration from the process environment. Missing .env
// files are ignored; variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv resolves the configuration through lookup.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(name, def string) string {
		if v, ok := lookup(Prefix + name); ok && v != "" {
			return v
		}
		return def
	}

	_, debug := lookup(EnvDebug)
	if strings.EqualFold(get(EnvLogLevel, ""), "debug") {
		debug = true
	}

	c := &Config{
		Root:       get(EnvRoot, "./data"),
		OutputDir:  get(EnvOutputDir, "."),
		Dictionary: get(EnvDictionary, lexicon.DefaultPath),
		Skip:       batch.DefaultSkip,
		Cropper:    strings.ToLower(get(EnvCropper, CropperGM)),
		GMPath:     get(EnvGMPath, "gm"),
		Source:     strings.ToLower(get(EnvSource, SourceJSON)),
		LayoutPath: get(EnvLayout, ""),
		Debug:      debug,
	}

	if v, ok := lookup(Prefix + EnvSkip); ok {
		c.Skip = splitList(v)
	}

	if v := get(EnvWorkers, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid %s%s %q: want a positive integer", Prefix, EnvWorkers, v)
		}
		c.Workers = n
	} else {
		c.Workers = DefaultWorkers()
	}

	switch c.Cropper {
	case CropperGM, CropperNative:
	default:
		return nil, fmt.Errorf("invalid %s%s %q: want %s or %s", Prefix, EnvCropper, c.Cropper, CropperGM, CropperNative)
	}

	switch c.Source {
	case SourceJSON, SourceTesseract:
	default:
		return nil, fmt.Errorf("invalid %s%s %q: want %s or %s", Prefix, EnvSource, c.Source, SourceJSON, SourceTesseract)
	}

	if c.LayoutPath != "" {
		l, err := layout.Load(c.LayoutPath)
		if err != nil {
			return nil, err
		}
		c.Layout = l
	} else {
		c.Layout = layout.Standard()
	}

	return c, nil
}

// DefaultWorkers is the number of logical CPUs.
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
