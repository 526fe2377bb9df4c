package stt

import (
	"bytes"
	"mime"
	"strings"

	"github.com/goccy/go-json"
)

// textFields are the object keys checked, in order, for the transcript
// when the endpoint answers with a JSON object.
var textFields = []string{"text", "transcript"}

// decodePayload turns a 2xx response body into display text.
//
// A body declared with a non-JSON content type is kept as is. A JSON body
// (declared, or undeclared but valid JSON) yields a string value verbatim,
// an object's "text" or "transcript" string field, or otherwise the
// original document re-indented.
func decodePayload(contentType string, body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", &PayloadError{Reason: "empty response body"}
	}

	switch {
	case declaresJSON(contentType):
		if !json.Valid(trimmed) {
			return "", &PayloadError{Reason: "body declared as JSON is not valid JSON"}
		}
	case strings.TrimSpace(contentType) != "" || !json.Valid(trimmed):
		return string(body), nil
	}

	switch trimmed[0] {
	case 'n':
		return "", &PayloadError{Reason: "null transcription"}
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", &PayloadError{Reason: "decode JSON string", Err: err}
		}
		return text, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return "", &PayloadError{Reason: "decode JSON object", Err: err}
		}
		for _, key := range textFields {
			raw := bytes.TrimSpace(fields[key])
			if len(raw) == 0 || raw[0] != '"' {
				continue
			}
			var text string
			if err := json.Unmarshal(raw, &text); err == nil {
				return text, nil
			}
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, trimmed, "", "  "); err != nil {
		return "", &PayloadError{Reason: "indent JSON body", Err: err}
	}
	return pretty.String(), nil
}

func declaresJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(contentType)
	}
	return strings.Contains(mediaType, "json")
}
