package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSlugValid(t *testing.T) {
	valid := []string{
		"glow",
		"glow-studio",
		"salon-123",
		"a1b",
	}
	for _, s := range valid {
		assert.True(t, IsSlugValid(s), s)
	}

	invalid := []string{
		"",
		"ab",                       // too short
		strings.Repeat("a", 61),    // too long
		"Glow-Studio",              // uppercase
		"glow_studio",              // underscore
		"-glow",                    // leading hyphen
		"glow-",                    // trailing hyphen
		"glow--studio",             // double hyphen
		"glow studio",              // space
		"salão",                    // non-ascii
	}
	for _, s := range invalid {
		assert.False(t, IsSlugValid(s), s)
	}
}
