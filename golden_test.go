package rill

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestGoldenTranscripts runs representative end-to-end transformations and
// compares the full output against testdata fixtures.
// Refresh with: go test -run TestGoldenTranscripts -update
func TestGoldenTranscripts(t *testing.T) {
	tests := []struct {
		name   string
		rules  []string
		input  string
		config *Config
	}{
		{
			name:  "filter_errors",
			rules: []string{"/ERROR (.*)/m[0]"},
			input: "2026-01-02 ERROR disk full\n" +
				"2026-01-02 INFO ok\n" +
				"2026-01-03 ERROR net down\n",
		},
		{
			name:  "sum_fields",
			rules: []string{"c += nf; nil"},
			input: "a b\nc\n",
			config: &Config{
				Begin: "c = 0",
				End:   "c",
			},
		},
		{
			name:  "passwd_fields",
			rules: []string{"f"},
			input: "root:x:0:0\ndaemon:y:1:1\n",
			config: &Config{
				FS:  ":",
				OFS: "-",
			},
		},
		{
			name:  "title_lines",
			rules: []string{"strings.title(l)"},
			input: "hello world\ngoodbye moon\n",
		},
		{
			name:  "tail_accumulate",
			rules: nil,
			input: "one\ntwo\nthree\n",
			config: &Config{
				End: `"-- " + str(n) + " lines --\n" + t`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Run(tt.rules, strings.NewReader(tt.input), tt.config)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}
