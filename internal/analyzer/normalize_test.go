package analyzer

import (
	"testing"

	"github.com/sitegrade/sitegrade/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare domain gets https",
			input: "example.com",
			want:  "https://example.com",
		},
		{
			name:  "existing scheme preserved",
			input: "http://example.com/path",
			want:  "http://example.com/path",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  https://example.com/shop  ",
			want:  "https://example.com/shop",
		},
		{
			name:  "domain with path and query",
			input: "example.com/products?sort=price",
			want:  "https://example.com/products?sort=price",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "unparseable",
			input:   "ht tp://bad host",
			wantErr: true,
		},
		{
			name:    "scheme without host",
			input:   "https://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var validation *core.ValidationError
				assert.ErrorAs(t, err, &validation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	inputs := []string{"example.com", "https://example.com/a?b=c", "http://shop.example.com"}
	for _, input := range inputs {
		once, err := NormalizeURL(input)
		require.NoError(t, err)
		twice, err := NormalizeURL(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeURLBlockedHosts(t *testing.T) {
	inputs := []string{
		"localhost",
		"localhost:3000",
		"http://localhost/admin",
		"127.0.0.1",
		"https://127.0.0.1:8080/internal?debug=1",
		"0.0.0.0",
		"0.0.0.0/metrics",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeURL(input)
			require.Error(t, err)
			var validation *core.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, "host not allowed", validation.Reason)
		})
	}
}
