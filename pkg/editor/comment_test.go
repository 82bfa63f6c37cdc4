package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentToken(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "//"},
		{"script.py", "#"},
		{"init.lua", "--"},
		{"config.yaml", "#"},
		{"notes.unknownext", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommentToken(tt.name, nil))
		})
	}
}

func TestAdaptComment(t *testing.T) {
	assert.Equal(t, "# ---- mark", AdaptComment("// ---- mark", "#"))
	assert.Equal(t, "// ---- mark", AdaptComment("// ---- mark", "//"))
	assert.Equal(t, "// ---- mark", AdaptComment("// ---- mark", ""))
	assert.Equal(t, "plain text", AdaptComment("plain text", "--"))
}
