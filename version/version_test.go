package version

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionIsSemver(t *testing.T) {
	// Part of the default output directory name
	_, err := semver.StrictNewVersion(Version)
	require.NoError(t, err)
}

func TestShort(t *testing.T) {
	tests := []struct {
		commit string
		want   string
	}{
		{"dev", "dev"},
		{"0123456789abcdef", "0123456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Info{CommitHash: tt.commit}.Short())
	}
}

func TestString(t *testing.T) {
	info := Info{Version: "1.2.3", CommitHash: "abcdef0123", BuildTime: "now", GoVersion: "go1.24", Platform: "linux/amd64"}
	assert.Equal(t, "rpctypegen 1.2.3 (commit abcdef0, built now, go1.24 linux/amd64)", info.String())
}
