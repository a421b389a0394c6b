package buildvars

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects a renderer.
type Format string

const (
	// FormatCMake renders set() commands for a CMake toolchain file.
	FormatCMake Format = "cmake"
	// FormatEnv renders NAME='value' lines.
	FormatEnv Format = "env"
	// FormatJSON renders a JSON object.
	FormatJSON Format = "json"
	// FormatYAML renders a YAML mapping.
	FormatYAML Format = "yaml"
	// FormatTOML renders a TOML table.
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for format names ParseFormat does not know.
var ErrUnknownFormat = errors.New("unknown output format")

//nolint:gochecknoglobals // Templates are parsed once and never modified.
var (
	cmakeTemplate = template.Must(template.New("cmake").Funcs(sprig.TxtFuncMap()).Parse(
		`# Generated by openglyph-recipe, do not edit.
{{- range . }}
set({{ .Name }} {{ .Value | quote }} CACHE STRING "{{ .Name | lower | replace "_" " " }}" FORCE)
{{- end }}
`))

	envTemplate = template.Must(template.New("env").Funcs(sprig.TxtFuncMap()).Parse(
		`{{- range . }}{{ .Name }}={{ .Value | squote }}
{{ end -}}`))
)

// Formats lists the supported format names.
func Formats() []Format {
	return []Format{FormatCMake, FormatEnv, FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat converts a format name to a Format.
// An empty name selects FormatCMake.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatCMake, nil
	case FormatCMake, FormatEnv, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "dotenv":
		return FormatEnv, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Render writes vars to w in format.
func Render(w io.Writer, format Format, vars []Variable) error {
	switch format {
	case FormatCMake:
		return cmakeTemplate.Execute(w, vars)
	case FormatEnv:
		return envTemplate.Execute(w, vars)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(toMap(vars))
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(toMap(vars)); err != nil {
			return err
		}

		return encoder.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(toMap(vars))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// toMap converts vars for the document encoders, which sort keys themselves.
func toMap(vars []Variable) map[string]string {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}

	return m
}
