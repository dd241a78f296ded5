package app

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"goodhouse/internal/domain"
)

//go:embed schemas/submission.json
var submissionSchemaJSON []byte

const submissionSchemaURL = "submission.json"

var submissionSchema = mustCompileSchema(submissionSchemaURL, submissionSchemaJSON)

func mustCompileSchema(url string, raw []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// ValidateSubmission checks a raw submission body against the submission
// schema. All failures wrap domain.ErrValidation.
func ValidateSubmission(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: body is not valid JSON: %v", domain.ErrValidation, err)
	}
	if err := submissionSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, schemaMessage(err))
	}
	return nil
}

// schemaMessage flattens a validation error to its leaf causes, which name
// the offending fields.
func schemaMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var msgs []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	out := msgs[0]
	for _, m := range msgs[1:] {
		out += "; " + m
	}
	return out
}
