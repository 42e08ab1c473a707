package templaterender

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2 January 2006") },
}

// RenderHTML renders an html/template source with missing keys defaulting to zero values.
func RenderHTML(name, src string, data any) (string, error) {
	if src == "" {
		return "", nil
	}
	t, err := template.New(name).Option("missingkey=zero").Funcs(funcs).Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
