package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"gateway/internal/domain/media"
)

const generationRequestSchema = `{
  "type": "object",
  "properties": {
    "avatarId": {"type": "string"},
    "voiceId": {"type": "string"},
    "text": {"type": "string"},
    "locale": {"type": "string"},
    "title": {"type": "string", "maxLength": 200},
    "background": {
      "type": "object",
      "properties": {
        "color": {"type": "string", "pattern": "^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$"},
        "imageUrl": {"type": "string", "pattern": "^https?://"},
        "videoUrl": {"type": "string", "pattern": "^https?://"}
      },
      "additionalProperties": false
    },
    "dimension": {
      "type": "object",
      "required": ["width", "height"],
      "properties": {
        "width": {"type": "integer", "minimum": 1, "maximum": 4096},
        "height": {"type": "integer", "minimum": 1, "maximum": 4096}
      }
    }
  }
}`

var generationSchema = jsonschema.MustCompileString("generation_request.json", generationRequestSchema)

// validateGenerationRequest checks the wire shape of a submission. Presence,
// exclusivity and locale rules stay with the domain type.
func validateGenerationRequest(raw []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return media.Validation("request body is not valid JSON")
	}
	if err := generationSchema.Validate(doc); err != nil {
		return media.Validation("%s", schemaMessage(err))
	}
	return nil
}

// schemaMessage reduces a schema failure to its most specific cause.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return "invalid request body"
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if loc == "" {
		return ve.Message
	}
	return strings.ReplaceAll(loc, "/", ".") + ": " + ve.Message
}
