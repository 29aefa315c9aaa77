package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"dzr/common"
	"dzr/config"
)

// Values holds variables we make available for template expansion.
type Values struct {
	Context    string
	Name       string
	ID         string
	Format     string
	SourceFile string
}

func expandTemplate(name config.TemplateFieldName, field, src, refID string, format common.DumpFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Name:       strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		ID:         refID,
		Format:     format.String(),
		SourceFile: src,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
