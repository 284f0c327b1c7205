package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML section names.
const (
	keyAPI     = "api"
	keyUI      = "ui"
	keyOutput  = "output"
	keyLogging = "logging"
	keyMetrics = "metrics"
)

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. A section present in the overlay replaces the whole section in
// target; absent sections are left unchanged. Unknown keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = mergeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// mergeSection decodes node into a fresh zero value of the section so the
// overlay replaces rather than patches it.
func mergeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyAPI:
		return replaceSection(node, &target.API)
	case keyUI:
		return replaceSection(node, &target.UI)
	case keyOutput:
		return replaceSection(node, &target.Output)
	case keyLogging:
		return replaceSection(node, &target.Logging)
	case keyMetrics:
		return replaceSection(node, &target.Metrics)
	default:
		return nil
	}
}

func replaceSection[T any](node *yaml.Node, dst *T) error {
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*dst = v
	return nil
}
