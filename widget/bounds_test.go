package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsContains(t *testing.T) {
	b := Rect(10, 20, 100, 50)

	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"right edge", 110, 40, false},
		{"bottom edge", 50, 70, false},
		{"left of", 9, 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.x, tt.y))
		})
	}
}

func TestBoundsGeometry(t *testing.T) {
	a := Rect(0, 0, 100, 100)
	b := Rect(50, 60, 100, 100)

	assert.Equal(t, Rect(50, 60, 50, 40), a.Intersect(b))
	assert.Equal(t, Bounds{}, a.Intersect(Rect(200, 200, 10, 10)))
	assert.Equal(t, Rect(0, 0, 150, 160), a.Union(b))
	assert.Equal(t, a, a.Union(Bounds{}))
	assert.Equal(t, float32(150), b.Right())
	assert.Equal(t, float32(160), b.Bottom())

	x, y := b.LocalPoint(60, 70)
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(10), y)

	assert.True(t, a.ApproxEqual(Rect(0.0001, 0, 100, 100), 0.001))
	assert.False(t, a.ApproxEqual(Rect(1, 0, 100, 100), 0.001))
	assert.Equal(t, "(50,60 100x100)", b.String())
}
