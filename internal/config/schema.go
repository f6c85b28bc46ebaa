package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gopak/scoopx/internal/assets"
	"github.com/xeipuuv/gojsonschema"
)

var configSchema = gojsonschema.NewBytesLoader(assets.Schema)

// SchemaError lists every setting the merged configuration got wrong, keyed
// by its dotted path (for example "buckets.pull").
type SchemaError struct {
	Fields map[string][]string
}

func (e *SchemaError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, p+": "+strings.Join(e.Fields[p], ", "))
	}
	return "invalid scoopx config: " + strings.Join(parts, "; ")
}

// ValidateAgainstSchema checks the merged configuration against the embedded
// schema. Violations come back as a *SchemaError.
func ValidateAgainstSchema(cfg Config) error {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	res, err := gojsonschema.Validate(configSchema, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	se := &SchemaError{Fields: map[string][]string{}}
	for _, e := range res.Errors() {
		se.Fields[e.Field()] = append(se.Fields[e.Field()], e.Description())
	}
	return se
}
