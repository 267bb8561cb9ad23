package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONFromMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare json",
			in:   `{"service":"Plumber"}`,
			want: `{"service":"Plumber"}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"service\":\"Plumber\"}\n```",
			want: `{"service":"Plumber"}`,
		},
		{
			name: "plain fence",
			in:   "```\n{\"service\":\"Plumber\"}\n```",
			want: `{"service":"Plumber"}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n{\"service\":\"Plumber\"}\n ",
			want: `{"service":"Plumber"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONFromMarkdown(tt.in))
		})
	}
}
