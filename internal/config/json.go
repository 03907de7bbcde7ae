package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// jsonFileSource reads a structured JSON settings file and flattens it into
// `Section:Key` pairs.
type jsonFileSource struct {
	path     string
	rank     int
	required bool
}

func newJSONFileSource(path string, rank int, required bool) *jsonFileSource {
	return &jsonFileSource{
		path:     path,
		rank:     rank,
		required: required,
	}
}

func (s *jsonFileSource) Info() SourceInfo {
	return SourceInfo{
		Name:       s.path,
		Rank:       s.rank,
		Required:   s.required,
		Reloadable: true,
		Path:       s.path,
	}
}

func (s *jsonFileSource) Load() (map[string]string, error) {
	values, err := parseJSON(s.path)
	if errors.Is(err, fs.ErrNotExist) && !s.required {
		return map[string]string{}, nil
	}

	return values, err
}

func parseJSON(jsonFilePath string) (map[string]string, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading a json file: %w: %w", ErrRequiredFileMissing, err)
		}
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	decoder := json.NewDecoder(jsonFile)
	decoder.UseNumber()

	var root any
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w: %w", ErrInvalidConfigFile, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("error decoding json configs: %w: trailing data", ErrInvalidConfigFile)
	}

	object, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error decoding json configs: %w: root must be an object", ErrInvalidConfigFile)
	}

	values := make(map[string]string)
	flatten("", object, values)

	return values, nil
}

// flatten walks a decoded JSON value and writes its leaves into out.
// Object members and array indexes become key segments.
func flatten(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(joinKey(prefix, key), child, out)
		}
	case []any:
		for i, child := range v {
			flatten(joinKey(prefix, strconv.Itoa(i)), child, out)
		}
	case string:
		out[prefix] = v
	case json.Number:
		out[prefix] = v.String()
	case bool:
		out[prefix] = strconv.FormatBool(v)
	case nil:
		out[prefix] = ""
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + KeyDelimiter + key
}
