// Package data holds the catalog data bundled with the binary.
package data

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"brewhouse/api"
)

//go:embed temperatures.json
var temperaturesJSON []byte

// Temperatures returns the bundled temperature list. The first entry is the default selection.
func Temperatures() []api.Temperature {
	list, err := parseTemperatures(temperaturesJSON)
	if err != nil {
		panic(err)
	}
	return list
}

// LoadTemperatures reads a temperature list from path, falling back to the bundled list when path is empty.
func LoadTemperatures(path string) ([]api.Temperature, error) {
	if path == "" {
		return Temperatures(), nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read temperatures file %s", path)
	}
	return parseTemperatures(buf)
}

func parseTemperatures(buf []byte) ([]api.Temperature, error) {
	list := []api.Temperature{}
	if err := json.Unmarshal(buf, &list); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal temperatures")
	}
	if len(list) == 0 {
		return nil, errors.New("temperature list is empty")
	}
	seen := map[api.Temperature]bool{}
	for _, temp := range list {
		if temp == "" {
			return nil, errors.New("temperature list contains an empty entry")
		}
		if seen[temp] {
			return nil, errors.Errorf("duplicate temperature %q", temp)
		}
		seen[temp] = true
	}
	return list, nil
}
