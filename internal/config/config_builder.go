package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"dario.cat/mergo"
)

type configBuilder struct {
	baseDir string
	args    []string
	environ []string

	sources []Source
	err     error
}

func newConfigBuilder(baseDir string, args, environ []string) *configBuilder {
	return &configBuilder{
		baseDir: baseDir,
		args:    args,
		environ: environ,
		sources: make([]Source, 0, 4),
	}
}

func (b *configBuilder) build() (*Configuration, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	return mergeSources(b.sources)
}

func (b *configBuilder) withBaseFile() *configBuilder {
	b.sources = append(b.sources, newJSONFileSource(
		filepath.Join(b.baseDir, BaseFilePath), RankBaseFile, true,
	))
	return b
}

// withOverlay resolves the overlay path from a provisional configuration made
// of the environment and the command line only. The overlay itself is ranked
// below both of them, so they are applied again on top of it at build time.
func (b *configBuilder) withOverlay() *configBuilder {
	provisional, err := mergeSources([]Source{
		newEnvSource(b.environ),
		newCommandLineSource(b.args),
	})
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	flag := provisional.Value(OverlayFlagKey)
	dir := provisional.Value(OverlayDirectoryKey)
	if flag == "" || dir == "" {
		return b
	}

	b.sources = append(b.sources, newJSONFileSource(
		filepath.Join(b.baseDir, overlayFilePath(dir)), RankOverlayFile, true,
	))
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	b.sources = append(b.sources, newEnvSource(b.environ))
	return b
}

func (b *configBuilder) withCommandLine() *configBuilder {
	b.sources = append(b.sources, newCommandLineSource(b.args))
	return b
}

// mergeSources loads every source and merges the results in rank order.
// Sources of equal rank keep their registration order.
func mergeSources(sources []Source) (*Configuration, error) {
	ordered := append([]Source(nil), sources...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Info().Rank < ordered[j].Info().Rank
	})

	cfg := &Configuration{
		values:  make(map[string]string),
		names:   make(map[string]string),
		sources: ordered,
	}

	for _, source := range ordered {
		layer, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("error loading config source %q: %w", source.Info().Name, err)
		}

		// keys differing only by case collapse; the last in sorted order wins
		keys := make([]string, 0, len(layer))
		for key := range layer {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		normalized := make(map[string]string, len(layer))
		for _, key := range keys {
			value := layer[key]
			nk := normalizeKey(key)
			normalized[nk] = value
			if _, ok := cfg.names[nk]; !ok {
				cfg.names[nk] = key
			}
		}

		if err := mergo.Merge(&cfg.values, normalized, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return cfg, nil
}
