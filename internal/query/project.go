package query

import "encoding/json"

// Project reduces a document to the requested fields for the response body.
// With no fields requested the document is returned as-is. Projection is a
// JSON-level transform so it works for any entity type.
func Project(doc any, fields []string) (any, error) {
	if len(fields) == 0 {
		return doc, nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var full map[string]json.RawMessage
	if err := json.Unmarshal(raw, &full); err != nil {
		return nil, err
	}

	projected := make(map[string]json.RawMessage, len(fields))
	for _, f := range fields {
		if v, ok := full[f]; ok {
			projected[f] = v
		}
	}
	return projected, nil
}
