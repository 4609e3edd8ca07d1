package export

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema validates the JSON interchange format on import, so a
// hand-edited or foreign file fails loudly instead of inserting junk rows.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "record_date"],
    "properties": {
      "id": {"type": "string"},
      "title": {"type": "string", "minLength": 1},
      "record_date": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}"},
      "doctor": {"type": "string"},
      "facility": {"type": "string"},
      "category_name": {"type": "string"},
      "diagnosis_codes": {"type": "array", "items": {"type": "string"}},
      "medications": {"type": "array", "items": {"type": "string"}},
      "follow_up_date": {"type": "string"},
      "recommendations": {"type": "array", "items": {"type": "string"}},
      "additional_metrics": {"type": "object", "additionalProperties": {"type": "string"}},
      "status": {"type": "string", "enum": ["PROCESSED", "ERROR"]}
    },
    "additionalProperties": true
  }
}`

var compiledRecordSchema = jsonschema.MustCompileString("records.schema.json", recordSchema)
