// Package icons holds the fixed 8x8 bitmaps shown on the matrix.
package icons

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const Size = 8

//go:embed icons.yaml
var asset []byte

// Bitmap is an 8x8 monochrome image, one byte per row, most significant bit
// on the left.
type Bitmap [Size]byte

func (b Bitmap) Lit(x, y int) bool {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return false
	}
	return b[y]&(0x80>>uint(x)) != 0
}

func (b Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.Lit(x, y) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Set holds the two icons: Cross for busy, Check for available.
type Set struct {
	Cross Bitmap
	Check Bitmap
}

type rawSet struct {
	Cross []string `yaml:"cross"`
	Check []string `yaml:"check"`
}

// Parse decodes an icon set from YAML.
func Parse(data []byte) (Set, error) {
	var raw rawSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Set{}, fmt.Errorf("failed to parse icons: %w", err)
	}

	cross, err := parseBitmap("cross", raw.Cross)
	if err != nil {
		return Set{}, err
	}
	check, err := parseBitmap("check", raw.Check)
	if err != nil {
		return Set{}, err
	}
	return Set{Cross: cross, Check: check}, nil
}

// Default returns the icons compiled into the binary.
func Default() Set {
	set, err := Parse(asset)
	if err != nil {
		panic(err)
	}
	return set
}

func parseBitmap(name string, rows []string) (Bitmap, error) {
	var bm Bitmap
	if len(rows) != Size {
		return bm, fmt.Errorf("icon %s: want %d rows, got %d", name, Size, len(rows))
	}
	for y, row := range rows {
		if len(row) != Size {
			return bm, fmt.Errorf("icon %s row %d: want %d columns, got %d", name, y, Size, len(row))
		}
		for x, c := range row {
			switch c {
			case 'X':
				bm[y] |= 0x80 >> uint(x)
			case '.':
			default:
				return bm, fmt.Errorf("icon %s row %d: unexpected %q", name, y, c)
			}
		}
	}
	return bm, nil
}
