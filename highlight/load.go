package highlight

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type optionsFile struct {
	Options []Option `yaml:"options"`
}

// LoadOptions reads an option list from YAML of the form
//
//	options:
//	  - model: yellowMarker
//	    class: marker-yellow
//	    title: Yellow marker
//	    type: marker
//
// and validates it.
func LoadOptions(r io.Reader) ([]Option, error) {
	var file optionsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty options file", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("failed to parse highlight options: %w", err)
	}

	if _, err := NewRegistry(file.Options); err != nil {
		return nil, err
	}
	return file.Options, nil
}
