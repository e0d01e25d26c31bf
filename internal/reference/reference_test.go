package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{
			name: "github https",
			ref:  "https://github.com/acme/widgets",
			want: true,
		},
		{
			name: "gitlab https",
			ref:  "https://gitlab.com/acme/widgets",
			want: true,
		},
		{
			name: "bitbucket https",
			ref:  "https://bitbucket.org/acme/widgets",
			want: true,
		},
		{
			name: "codeberg https",
			ref:  "https://codeberg.org/acme/widgets",
			want: true,
		},
		{
			name: "www prefix",
			ref:  "https://www.github.com/acme/widgets",
			want: true,
		},
		{
			name: "host case insensitive",
			ref:  "https://GitHub.COM/acme/widgets",
			want: true,
		},
		{
			name: "deep path",
			ref:  "https://github.com/acme/widgets/tree/main",
			want: true,
		},
		{
			name: "trailing slash",
			ref:  "https://github.com/acme/widgets/",
			want: true,
		},
		{
			name: "plain http",
			ref:  "http://github.com/acme/widgets",
			want: true,
		},
		{
			name: "unsupported host",
			ref:  "https://example.com/acme/widgets",
			want: false,
		},
		{
			name: "single path segment",
			ref:  "https://github.com/acme",
			want: false,
		},
		{
			name: "empty path",
			ref:  "https://github.com",
			want: false,
		},
		{
			name: "empty string",
			ref:  "",
			want: false,
		},
		{
			name: "whitespace only",
			ref:  "   ",
			want: false,
		},
		{
			name: "scp style rejected",
			ref:  "git@github.com:acme/widgets.git",
			want: false,
		},
		{
			name: "ssh scheme rejected",
			ref:  "ssh://git@github.com/acme/widgets",
			want: false,
		},
		{
			name: "bare words rejected",
			ref:  "not a url",
			want: false,
		},
		{
			name: "empty segments do not count",
			ref:  "https://github.com//acme//",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.ref), "ref %q", tt.ref)
		})
	}
}
