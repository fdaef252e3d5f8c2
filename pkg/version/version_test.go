package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
}

func TestString(t *testing.T) {
	s := Get().String()
	assert.True(t, strings.HasPrefix(s, "extbuild "))
	assert.Contains(t, s, "commit:")
}

func TestShort(t *testing.T) {
	assert.Equal(t, Version, Short())
}
