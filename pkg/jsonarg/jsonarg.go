// Package jsonarg decodes CLI arguments that carry JSON objects, such
// as --headers, --body and --params.
package jsonarg

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InvalidArgumentError is returned when an argument is not a JSON
// object. Err holds the underlying decode error when there is one.
type InvalidArgumentError struct {
	Name string
	Err  error
}

func (e *InvalidArgumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid JSON for %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("%s must be a JSON object (e.g. '{\"key\":\"value\"}')", e.Name)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// Parse decodes raw as a JSON object. A blank value and JSON null are
// treated as absent and return nil without an error. Arrays, scalars
// and malformed JSON return an *InvalidArgumentError naming the
// argument.
func Parse(name string, raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, &InvalidArgumentError{Name: name, Err: err}
	}

	if decoded == nil {
		return nil, nil
	}

	object, ok := decoded.(map[string]any)
	if !ok {
		return nil, &InvalidArgumentError{Name: name}
	}

	return object, nil
}
