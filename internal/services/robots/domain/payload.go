package domain

import (
	"maps"

	perr "robots/internal/platform/errors"
)

// Payload is a decoded JSON object as received from a client
type Payload map[string]any

// required is the exact key set accepted for create and update
var required = map[string]struct{}{"name": {}, "purpose": {}}

// ValidatedPayload is a Payload that passed Check
// the zero value holds no fields and only Check constructs a usable one
type ValidatedPayload struct{ fields Payload }

// Fields returns a copy of the validated fields
func (v ValidatedPayload) Fields() map[string]any { return maps.Clone(map[string]any(v.fields)) }

// Check enforces the required field contract
// a payload is rejected when it is empty, has fewer keys than the required set,
// or carries any key outside of it. Values are not inspected here
func Check(p Payload) (ValidatedPayload, error) {
	if len(p) == 0 {
		return ValidatedPayload{}, ErrInvalidParameters
	}
	if len(p) < len(required) {
		return ValidatedPayload{}, ErrInvalidParameters
	}
	for k := range p {
		if _, ok := required[k]; !ok {
			return ValidatedPayload{}, perr.WithField(ErrInvalidParameters, k)
		}
	}
	return ValidatedPayload{fields: p}, nil
}

// Build copies the whitelisted fields of v onto Changes
// columns are text so non string values are rejected
func Build(v ValidatedPayload) (Changes, error) {
	var c Changes
	for k, raw := range v.fields {
		s, ok := raw.(string)
		if !ok {
			return Changes{}, perr.WithField(ErrInvalidParameters, k)
		}
		switch k {
		case "name":
			c.Name = &s
		case "purpose":
			c.Purpose = &s
		}
	}
	return c, nil
}

// PurposeOf extracts the purpose for a purpose-only update
// other keys are ignored; a missing or non string purpose is invalid
func PurposeOf(p Payload) (string, error) {
	raw, ok := p["purpose"]
	if !ok {
		return "", perr.WithField(ErrInvalidParameters, "purpose")
	}
	s, ok := raw.(string)
	if !ok {
		return "", perr.WithField(ErrInvalidParameters, "purpose")
	}
	return s, nil
}
