package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	set := Default()

	assert.Equal(t, Bitmap{0x81, 0x42, 0x24, 0x18, 0x18, 0x24, 0x42, 0x81}, set.Cross)
	assert.True(t, set.Check.Lit(7, 1))
	assert.False(t, set.Check.Lit(0, 0))
	assert.NotEqual(t, set.Cross, set.Check)
}

func TestBitmapString(t *testing.T) {
	set := Default()
	assert.Equal(t, "X......X\n.X....X.\n..X..X..\n...XX...\n...XX...\n..X..X..\n.X....X.\nX......X\n", set.Cross.String())
}

func TestLitOutOfBounds(t *testing.T) {
	bm := Bitmap{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	assert.True(t, bm.Lit(0, 0))
	assert.False(t, bm.Lit(-1, 0))
	assert.False(t, bm.Lit(8, 0))
	assert.False(t, bm.Lit(0, 8))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "cross: [unterminated"},
		{"missing check", "cross: [X......X, X......X, X......X, X......X, X......X, X......X, X......X, X......X]"},
		{"short row", "cross: [X, X, X, X, X, X, X, X]\ncheck: [X, X, X, X, X, X, X, X]"},
		{"bad char", "cross: [X......o, X......X, X......X, X......X, X......X, X......X, X......X, X......X]\ncheck: [X......X, X......X, X......X, X......X, X......X, X......X, X......X, X......X]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_Custom(t *testing.T) {
	set, err := Parse([]byte(`
cross: ["XXXXXXXX", "........", "........", "........", "........", "........", "........", "........"]
check: ["........", "........", "........", "........", "........", "........", "........", "XXXXXXXX"]
`))
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), set.Cross[0])
	assert.Equal(t, byte(0xFF), set.Check[7])
}
