package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/gosimple/slug"
	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Query evaluates a jq expression against the manifest.
// Ex: `.months.ai["2025-08"][].title`
func (m *Manifest) Query(expr string) ([]any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}

	// gojq only supports generic values (maps, slices, ...)
	data, err := toGeneric(m)
	if err != nil {
		return nil, err
	}

	iter := query.Run(data)
	var values []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func toGeneric(value any) (any, error) {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var result any
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FormatValues prints query results in the given format (json, yaml, text).
func FormatValues(values []any, format string) (string, error) {
	var sb strings.Builder
	switch format {
	case "json":
		for _, value := range values {
			jsonData, err := json.MarshalIndent(value, "", "  ")
			if err != nil {
				return "", err
			}
			sb.Write(jsonData)
			sb.WriteString("\n")
		}
	case "yaml":
		for i, value := range values {
			if i > 0 {
				sb.WriteString("---\n")
			}
			yamlData, err := yaml.Marshal(value)
			if err != nil {
				return "", err
			}
			sb.Write(yamlData)
		}
	case "text":
		for _, value := range values {
			if s, ok := value.(string); ok {
				sb.WriteString(s)
			} else {
				jsonData, err := json.Marshal(value)
				if err != nil {
					return "", err
				}
				sb.Write(jsonData)
			}
			sb.WriteString("\n")
		}
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
	return sb.String(), nil
}

// ParseTemplate parses an entry template, supporting additional custom functions.
func ParseTemplate(templateText string) (*template.Template, error) {
	// Add additional functions in complement to standard functions
	// See https://pkg.go.dev/text/template#hdr-Functions
	functions := template.FuncMap{
		"json": func(data any) (string, error) {
			jsonData, err := json.Marshal(data)
			if err != nil {
				return "", err
			}
			return string(jsonData), nil
		},
		"yaml": func(data any) (string, error) {
			yamlData, err := yaml.Marshal(data)
			if err != nil {
				return "", err
			}
			return strings.TrimSuffix(string(yamlData), "\n"), nil
		},
		"slug": func(data any) string {
			return slug.Make(fmt.Sprintf("%s", data))
		},
		// join is a templating version of strings.Join
		"join": func(sep string, data any) (string, error) {
			if v, ok := data.(string); ok {
				return v, nil
			}
			if v, ok := data.([]string); ok {
				return strings.Join(v, sep), nil
			}
			if rawValues, ok := data.([]any); ok {
				var v []string
				for _, rawValue := range rawValues {
					if typedValue, ok := rawValue.(string); ok {
						v = append(v, typedValue)
					}
				}
				return strings.Join(v, sep), nil
			}
			return "", errors.New("unsupported type for join")
		},
	}
	tmpl, err := template.New("").Funcs(functions).Parse(templateText)
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// EvaluateTemplate formats each hit using the template.
// Fields of the entry and the hit (Category, Month) are accessible.
func EvaluateTemplate(templateText string, hits []Hit) (string, error) {
	tmpl, err := ParseTemplate(templateText)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	for _, hit := range hits {
		data := struct {
			Entry
			Category string
			Month    string
		}{hit.Entry, hit.Category, hit.Month}
		if err := tmpl.Execute(&out, data); err != nil {
			return "", err
		}
		out.WriteString("\n")
	}
	return out.String(), nil
}
