package model

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"resume-builder/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/resume.schema.json
var resumeSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func resumeSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchemaJSON))
	})
	return schema, schemaErr
}

// ValidateResumeJSON validates a raw request body against the resume schema.
// Schema violations are reported as domain.ErrValidation.
func ValidateResumeJSON(body []byte) error {
	s, err := resumeSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// not parseable as JSON at all
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}
