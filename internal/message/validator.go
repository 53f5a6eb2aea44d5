// Package message defines the JSON frames a drawing client exchanges with
// the host, and validates inbound frames against typed schemas before they
// reach a board.
package message

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var ErrUnknownType = errors.New("unknown message type")

// Message is a decoded, validated inbound frame. Body is one of the schema
// pointers (*Open, *Pointer, *Property, *SelectTool, *Tools).
type Message struct {
	Type string
	Body interface{}
}

// Validator: decodes inbound frames and sanitises outbound strings
type Validator struct {
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
}

func NewValidator() *Validator {
	// removes all HTML/scripts
	policy := bluemonday.StrictPolicy()

	return &Validator{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		sanitizer: policy,
	}
}

// Decode: parses msg, picks the schema for its type and validates it
func (v *Validator) Decode(msg []byte) (Message, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return Message{}, fmt.Errorf("unmarshal base message: %w", err)
	}
	if envelope.Type == "" {
		return Message{}, fmt.Errorf("missing message type")
	}

	schema := schemaFor(envelope.Type)
	if schema == nil {
		return Message{}, fmt.Errorf("%w: %s", ErrUnknownType, v.Sanitize(envelope.Type))
	}

	if err := json.Unmarshal(msg, schema); err != nil {
		return Message{}, fmt.Errorf("failed to parse %s message: %w", envelope.Type, err)
	}

	if err := v.validate.Struct(schema); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return Message{}, formatValidationErrors(envelope.Type, validationErrors)
		}
		return Message{}, fmt.Errorf("validation failed: %w", err)
	}

	return Message{Type: envelope.Type, Body: schema}, nil
}

// Sanitize strips any markup from a string echoed back to a client.
func (v *Validator) Sanitize(s string) string {
	return v.sanitizer.Sanitize(s)
}

// SanitizeAll: Sanitize over a slice, returning a new slice
func (v *Validator) SanitizeAll(values []string) []string {
	out := make([]string, len(values))
	for i, s := range values {
		out[i] = v.Sanitize(s)
	}
	return out
}

// formatValidationErrors reports the first failing field only
func formatValidationErrors(msgType string, errs validator.ValidationErrors) error {
	if len(errs) == 0 {
		return fmt.Errorf("%s: validation failed", msgType)
	}
	return fmt.Errorf("%s: validation failed: %s", msgType, formatSingleError(errs[0]))
}

func formatSingleError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "min", "max":
		return fmt.Sprintf("'%s' value out of allowed range", field)
	case "alphanum":
		return fmt.Sprintf("'%s' must be alphanumeric", field)
	default:
		return fmt.Sprintf("'%s' is invalid", field)
	}
}
