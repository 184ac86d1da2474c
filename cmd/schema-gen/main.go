// Schema Generator
//
// Generates JSON Schema files from the pricing API types so that clients can
// validate import reports and export filters without reading Go sources.
//
// Usage:
//
//	go run ./cmd/schema-gen [-out schemas]
//
// Output:
//
//	schemas/import.json
//	schemas/export.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/handlers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

var groups = []SchemaGroup{
	{
		Name: "import",
		Types: []any{
			types.RawPriceRow{},
			types.RowErrorEntry{},
			types.BatchReport{},
			handlers.ListRunsResponse{},
			handlers.ErrorResponse{},
		},
		Output: "import.json",
	},
	{
		Name: "export",
		Types: []any{
			handlers.ExportPricesRequest{},
			handlers.ErrorResponse{},
		},
		Output: "export.json",
	},
}

func main() {
	outputDir := flag.String("out", "schemas", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, group := range groups {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(*outputDir, group.Output)

		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}
}

// generateGroupSchema merges the definitions of every type in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{}

	definitions := make(map[string]any)
	for _, t := range group.Types {
		schema := reflector.Reflect(t)
		for name, def := range schema.Definitions {
			definitions[name] = def
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("pricing/%s.json", group.Name),
		"title":       fmt.Sprintf("%s API Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s API types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
