package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientName(t *testing.T) {
	assert.Equal(t, "genesisc/v"+Version+"/"+runtime.GOARCH, ClientName("genesisc"))
}

func TestVCSInfo(t *testing.T) {
	tests := []struct {
		name     string
		settings []debug.BuildSetting
		want     string
	}{
		{"none", nil, ""},
		{"revision only", []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}, "01234567"},
		{"dirty with time", []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2024-07-29T12:00:00Z"},
		}, "01234567-dirty-2024-07-29T12:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vcsInfo(tt.settings))
		})
	}
}
