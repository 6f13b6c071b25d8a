package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	for _, d := range Difficulties {
		got, err := ParseDifficulty(d.Label)
		assert.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDifficulty("nightmare")
	assert.Error(t, err)
}

func TestNewCustomDifficulty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		rows, cols, mine int
		wantErr          error
	}{
		{name: "valid", rows: 10, cols: 12, mine: 20},
		{name: "one free cell", rows: 2, cols: 2, mine: 3},
		{name: "overfull", rows: 3, cols: 3, mine: 9, wantErr: ErrTooManyMines},
		{name: "too many mines", rows: 2, cols: 2, mine: 10, wantErr: ErrTooManyMines},
		{name: "zero rows", rows: 0, cols: 5, mine: 1, wantErr: ErrBadGeometry},
		{name: "negative mines", rows: 5, cols: 5, mine: -1, wantErr: ErrBadGeometry},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			d, err := NewCustomDifficulty(test.rows, test.cols, test.mine)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "custom", d.Label)
			assert.Equal(t, test.mine, d.Mines)
		})
	}
}
