package stt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
		wantErr     bool
	}{
		{name: "json string", contentType: "application/json", body: `"hello world"`, want: "hello world"},
		{name: "json string with escapes", contentType: "application/json", body: `"Speaker 1: hi\nSpeaker 2: hello"`, want: "Speaker 1: hi\nSpeaker 2: hello"},
		{name: "object text field", contentType: "application/json", body: `{"text":"from text","language":"de"}`, want: "from text"},
		{name: "object transcript field", contentType: "application/json", body: `{"transcript":"from transcript"}`, want: "from transcript"},
		{name: "text preferred over transcript", body: `{"transcript":"b","text":"a"}`, want: "a"},
		{name: "object without text is re-encoded", contentType: "application/json", body: `{"segments":[{"speaker":"A"}]}`, want: "{\n  \"segments\": [\n    {\n      \"speaker\": \"A\"\n    }\n  ]\n}"},
		{name: "array is re-encoded", body: `["a","b"]`, want: "[\n  \"a\",\n  \"b\"\n]"},
		{name: "plain text verbatim", contentType: "text/plain; charset=utf-8", body: "  hello\nworld  ", want: "  hello\nworld  "},
		{name: "plain text without content type", body: "hello world", want: "hello world"},
		{name: "quoted plain text verbatim", contentType: "text/plain", body: `"quoted speech"`, want: `"quoted speech"`},
		{name: "json-looking plain text verbatim", contentType: "text/plain; charset=utf-8", body: `{"text":"not decoded"}`, want: `{"text":"not decoded"}`},
		{name: "re-encode keeps numbers and key order", contentType: "application/json", body: `{"id": 12345678901234567890, "b":1, "a":2}`, want: "{\n  \"id\": 12345678901234567890,\n  \"b\": 1,\n  \"a\": 2\n}"},
		{name: "non-string text field falls through", contentType: "application/json", body: `{"text":null,"transcript":"t"}`, want: "t"},
		{name: "vendor json type", contentType: "application/vnd.api+json", body: `{"text":"vendor"}`, want: "vendor"},
		{name: "empty body", contentType: "text/plain", body: "", wantErr: true},
		{name: "whitespace body", contentType: "text/plain", body: " \n ", wantErr: true},
		{name: "null", contentType: "application/json", body: "null", wantErr: true},
		{name: "invalid json declared as json", contentType: "application/json", body: "{not json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodePayload(tt.contentType, []byte(tt.body))
			if tt.wantErr {
				var payloadErr *PayloadError
				require.ErrorAs(t, err, &payloadErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
