package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"

	"resume-builder/internal/domain"
)

//go:embed template.html
var resumeTemplate string

var tpl = template.Must(template.New("resume").Parse(resumeTemplate))

type resumeView struct {
	Name     string
	Title    string
	Email    string
	Phone    string
	Location string
	LinkedIn string
	Sections []sectionView
}

type sectionView struct {
	Heading string
	Text    string
	Items   []string
}

// resumeHTML lays out a stored resume as a printable page. Sections are
// free-form, so anything that is not a {heading, items} object is printed as
// text.
func resumeHTML(r *domain.Resume) (string, error) {
	v := resumeView{
		Name:     r.Name,
		Title:    deref(r.Title),
		Email:    deref(r.Email),
		Phone:    deref(r.Phone),
		Location: deref(r.Location),
		LinkedIn: deref(r.LinkedIn),
	}
	for _, s := range r.Sections {
		v.Sections = append(v.Sections, toSectionView(s))
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func toSectionView(s interface{}) sectionView {
	switch v := s.(type) {
	case string:
		return sectionView{Text: v}
	case map[string]interface{}:
		var out sectionView
		for _, key := range []string{"heading", "title", "name"} {
			if h, ok := v[key].(string); ok {
				out.Heading = h
				break
			}
		}
		if t, ok := v["text"].(string); ok {
			out.Text = t
		}
		if items, ok := v["items"].([]interface{}); ok {
			for _, it := range items {
				out.Items = append(out.Items, stringify(it))
			}
		}
		if out.Heading == "" && out.Text == "" && out.Items == nil {
			out.Text = stringify(v)
		}
		return out
	default:
		return sectionView{Text: stringify(v)}
	}
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
