package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"
	"unicode"

	"github.com/spf13/afero"

	"github.com/specialistvlad/glyphforge/internal/assettype"
	"github.com/specialistvlad/glyphforge/internal/registry"
)

// TemplateOption is the formatOptions key pointing at a custom template file.
const TemplateOption = "template"

// Funcs are available to every asset template.
var Funcs = map[string]any{
	"pascal":   Pascal,
	"constant": Constant,
	"quote":    func(s string) string { return fmt.Sprintf("%q", s) },
	"upper":    strings.ToUpper,
}

// source returns the custom template configured for t, or def.
func source(opts *registry.Options, t assettype.AssetType, def string) (string, error) {
	v, ok := opts.FormatOptions.Get(t, TemplateOption)
	if !ok || v == nil {
		return def, nil
	}
	path, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("formatOptions.%s.%s must be a file path, got %v", t, TemplateOption, v)
	}
	b, err := afero.ReadFile(opts.Fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s template: %w", t, err)
	}
	return string(b), nil
}

// Text renders a text/template for asset type t. A template configured in
// formatOptions replaces def.
func Text(opts *registry.Options, t assettype.AssetType, def string, data any) ([]byte, error) {
	src, err := source(opts, t, def)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(string(t)).Funcs(Funcs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", t, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s template: %w", t, err)
	}
	return buf.Bytes(), nil
}

// HTML is Text for html/template, which escapes its output contextually.
func HTML(opts *registry.Options, t assettype.AssetType, def string, data any) ([]byte, error) {
	src, err := source(opts, t, def)
	if err != nil {
		return nil, err
	}
	tmpl, err := htmltemplate.New(string(t)).Funcs(Funcs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", t, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s template: %w", t, err)
	}
	return buf.Bytes(), nil
}

// Pascal converts an icon id or font name such as "arrow-left" into
// "ArrowLeft". Characters that cannot start an identifier are prefixed
// with "I".
func Pascal(s string) string {
	var sb strings.Builder
	upperNext := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		sb.WriteRune(r)
	}
	out := sb.String()
	if out == "" || unicode.IsDigit(rune(out[0])) {
		out = "I" + out
	}
	return out
}

// Constant converts a name such as "my-icons" into "MY_ICONS".
func Constant(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToUpper(strings.Join(fields, "_"))
}
