// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Source ranks. A source with a higher rank overrides keys defined by
// sources with a lower rank.
const (
	RankBaseFile = iota
	RankOverlayFile
	RankEnvironment
	RankCommandLine
)

// SourceInfo describes a configuration source.
type SourceInfo struct {
	// Name identifies the source in logs and errors (e.g. the file path).
	Name string

	// Rank is the precedence position of the source. Last applied wins.
	Rank int

	// Required sources fail the build when they are absent.
	Required bool

	// Reloadable sources may be re-read when their backing file changes.
	Reloadable bool

	// Path is the file path of file-backed sources, empty otherwise.
	Path string
}

// Source is an ordered, named provider of key/value pairs.
type Source interface {
	// Info returns the static description of the source.
	Info() SourceInfo

	// Load reads the source and returns its flat key/value mapping.
	Load() (map[string]string, error)
}
