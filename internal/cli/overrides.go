package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Railly/tinte-sub002/internal/models"
	"github.com/Railly/tinte-sub002/internal/tokens"
)

// overrideFile is the document form of an override file. A bare list of
// layers is accepted as well.
type overrideFile struct {
	Overrides []models.OverrideLayer `yaml:"overrides"`
}

// readOverrides loads and validates override layers from a YAML or JSON file.
func readOverrides(path string) ([]models.OverrideLayer, error) {
	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}
	layers, err := parseOverrides(data)
	if err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	return layers, nil
}

func parseOverrides(data []byte) ([]models.OverrideLayer, error) {
	var layers []models.OverrideLayer
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '-') {
		if err := yaml.Unmarshal(data, &layers); err != nil {
			return nil, err
		}
	} else {
		var doc overrideFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		layers = doc.Overrides
	}

	out := make([]models.OverrideLayer, 0, len(layers))
	for _, layer := range layers {
		normalized, err := tokens.NormalizeLayer(layer)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}
