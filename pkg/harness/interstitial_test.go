package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsTLSWarning(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "chromium warning page",
			text: "Privacy error Your connection is not private Attackers might be trying to steal your information NET::ERR_CERT_AUTHORITY_INVALID Advanced",
			want: true,
		},
		{
			name: "apostrophe variant",
			text: "Warning: your connection isn't private.",
			want: true,
		},
		{
			name: "error code only",
			text: "net::ERR_CERT_DATE_INVALID",
			want: true,
		},
		{
			name: "mixed case",
			text: "YOUR CONNECTION IS NOT PRIVATE",
			want: true,
		},
		{
			name: "ordinary application page",
			text: "Dashboard Reports Settings Sign out",
			want: false,
		},
		{
			name: "page discussing certificates",
			text: "Upload your TLS certificate in the admin panel",
			want: false,
		},
		{
			name: "empty text",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsTLSWarning(tt.text))
		})
	}
}
