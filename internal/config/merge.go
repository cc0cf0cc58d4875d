package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI      = "api"
	keyTable    = "table"
	keyOutput   = "output"
	keyLogging  = "logging"
	keyLanguage = "language"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyAPI:      true,
	keyTable:    true,
	keyOutput:   true,
	keyLogging:  true,
	keyLanguage: true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Fields set in an overlay section replace the target's
// values, lists are replaced as a whole. Sections absent in the overlay are
// left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes one overlay section onto the matching section of
// target.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyAPI:
		return decodeOnto(data, &target.API)
	case keyTable:
		return decodeOnto(data, &target.Table)
	case keyOutput:
		return decodeOnto(data, &target.Output)
	case keyLogging:
		return decodeOnto(data, &target.Logging)
	case keyLanguage:
		return decodeOnto(data, &target.Language)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// decodeOnto decodes data into a copy of *dst, so fields the overlay does not
// mention keep their current value rather than resetting to zero. *dst is
// only replaced when decoding succeeds.
func decodeOnto[T any](data []byte, dst *T) error {
	v := *dst
	if err := yaml.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = v
	return nil
}
