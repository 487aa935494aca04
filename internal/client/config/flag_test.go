package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://127.0.0.1:4000", "-t", "10", "-d", "/tmp/k.db", "-l", "debug"},
			expected: &Config{APIBase: "http://127.0.0.1:4000", RequestTimeout: 10 * time.Second, SessionDB: "/tmp/k.db", LogLevel: "debug"}},
		{name: "timeout untouched when absent", args: []string{"cmd", "-a", "http://x"},
			expected: &Config{APIBase: "http://x", RequestTimeout: 1500 * time.Millisecond}},
		{name: "unknown flags ignored", args: []string{"cmd", "-c", "conf.json", "-x", "y"},
			expected: &Config{RequestTimeout: 1500 * time.Millisecond}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })
			os.Args = tt.args

			config := &Config{RequestTimeout: 1500 * time.Millisecond}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
