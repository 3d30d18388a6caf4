package jsonuri

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode copies the value at path into target, which must be a pointer.
// Struct fields are matched by their json tag. Scalars are converted
// weakly, so a decoded JSON float64 fills an int field.
//
// Example:
//
//	var server struct {
//	    Host string `json:"host"`
//	    Port int    `json:"port"`
//	}
//	err := jsonuri.Decode(data, "/server", &server)
func Decode(data any, path string, target any) error {
	v, ok := Get(data, path)
	if !ok {
		return &PathNotFoundError{Path: path}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return nil
}
