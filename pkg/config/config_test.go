package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/labels"
)

func TestParse(t *testing.T) {
	cases := map[string]struct {
		data        string
		expected    *Config
		expectedErr bool
	}{
		"Empty": {
			data:     "",
			expected: &Config{LogLevel: "info"},
		},
		"Full": {
			data: "input: almanac.txt\nlogLevel: debug\ncoalesce: true\nuntil: humidity\n",
			expected: &Config{
				Input:    "almanac.txt",
				LogLevel: "debug",
				Coalesce: true,
				Until:    "humidity",
			},
		},
		"BadLevel": {
			data:        "logLevel: chatty\n",
			expectedErr: true,
		},
		"BadUntil": {
			data:        "until: \"not a label value!\"\n",
			expectedErr: true,
		},
		"BadYAML": {
			data:        "input: [\n",
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.data))
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, cfg); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rangemap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: in.txt\nlogLevel: WARN\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "in.txt", cfg.Input)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestUntilSelector(t *testing.T) {
	cfg := Default()
	selector, err := cfg.UntilSelector()
	require.NoError(t, err)
	assert.Nil(t, selector)

	cfg.Until = "soil"
	selector, err = cfg.UntilSelector()
	require.NoError(t, err)
	assert.True(t, selector.Matches(labels.Set{"from": "seed", "to": "soil"}))
	assert.False(t, selector.Matches(labels.Set{"from": "soil", "to": "fertilizer"}))
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "error"
	l, err := cfg.Logger()
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}
