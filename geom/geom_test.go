package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorPoint(t *testing.T) {
	r := NewRect(100, 100, 50, 20)

	tests := []struct {
		name  string
		point Point
		want  Vec
	}{
		{name: "top left", point: TopLeft, want: Vec{X: 100, Y: 100}},
		{name: "top center", point: TopCenter, want: Vec{X: 125, Y: 100}},
		{name: "top right", point: TopRight, want: Vec{X: 150, Y: 100}},
		{name: "center", point: Center, want: Vec{X: 125, Y: 110}},
		{name: "center right", point: CenterRight, want: Vec{X: 150, Y: 110}},
		{name: "bottom left", point: BottomLeft, want: Vec{X: 100, Y: 120}},
		{name: "bottom center", point: BottomCenter, want: Vec{X: 125, Y: 120}},
		{name: "bottom right", point: BottomRight, want: Vec{X: 150, Y: 120}},
		{name: "unknown codes fall back to center", point: Point("zz"), want: Vec{X: 125, Y: 110}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnchorPoint(r, tt.point))
		})
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Point
		wantErr bool
	}{
		{in: "tl", want: TopLeft},
		{in: "BC", want: BottomCenter},
		{in: "bottom-center", want: BottomCenter},
		{in: "top", want: TopCenter},
		{in: "center", want: Center},
		{in: " right ", want: CenterRight},
		{in: "xl", wantErr: true},
		{in: "top-middle", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPointFlips(t *testing.T) {
	assert.Equal(t, BottomLeft, TopLeft.FlipVertical())
	assert.Equal(t, TopRight, TopLeft.FlipHorizontal())
	assert.Equal(t, CenterLeft, CenterRight.FlipHorizontal())
	assert.Equal(t, Center, Center.FlipVertical())
	assert.Equal(t, Center, Center.FlipHorizontal())
	assert.Equal(t, "bottom-center", BottomCenter.Name())
	assert.Equal(t, "center", Center.Name())
}

func TestOverflow(t *testing.T) {
	region := NewRect(0, 0, 100, 50)

	inside := Overflow(NewRect(10, 10, 20, 20), region)
	assert.False(t, inside.Any())
	assert.Equal(t, Edges{Left: -10, Top: -10, Right: -70, Bottom: -20}, inside)

	out := Overflow(NewRect(90, 40, 20, 20), region)
	assert.True(t, out.Horizontal())
	assert.True(t, out.Vertical())
	assert.Equal(t, 10.0, out.Right)
	assert.Equal(t, 10.0, out.Bottom)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(12, 0, 10))
	assert.Equal(t, 2.0, Clamp(7, 2, 1), "lower bound wins when bounds cross")
	assert.True(t, math.IsNaN(Clamp(math.NaN(), 0, 10)), "NaN propagates")
}

func TestDetectScale(t *testing.T) {
	s := DetectScale(Size{Width: 84, Height: 36}, Size{Width: 140, Height: 60})
	assert.Equal(t, Scale{X: 0.6, Y: 0.6}, s)

	unscaled := s.Unscale(NewRect(10, 10, 84, 36))
	assert.InDelta(t, 140, unscaled.Width, 1e-9)
	assert.InDelta(t, 60, unscaled.Height, 1e-9)
	assert.Equal(t, 10.0, unscaled.X)

	assert.True(t, DetectScale(Size{Width: 10, Height: 10}, Size{Width: 0, Height: 10}).IsZero())
	assert.Equal(t, Identity, DetectScale(Size{Width: 3, Height: 7}, Size{Width: 3, Height: 7}))
}

func TestRectOps(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	assert.Equal(t, 25.0, r.Right())
	assert.Equal(t, 25.0, r.Bottom())
	assert.Equal(t, Vec{X: 15, Y: 17.5}, r.Center())
	assert.True(t, r.Contains(Vec{X: 5, Y: 10}))
	assert.False(t, r.Contains(Vec{X: 25, Y: 10}))
	assert.Equal(t, NewRect(15, 10, 10, 15), r.Intersect(NewRect(15, 0, 100, 100)))
	assert.True(t, r.Intersect(NewRect(100, 100, 1, 1)).IsEmpty())
	assert.True(t, NewRect(0, 0, 100, 100).ContainsRect(r))
}

func TestVisibleAndRound(t *testing.T) {
	assert.Equal(t, 10.0, Visible(0, 10, -5, 50))
	assert.Equal(t, 5.0, Visible(45, 10, 0, 50))
	assert.Equal(t, 0.0, Visible(60, 10, 0, 50))

	assert.Equal(t, 1.0, Round(0.5))
	assert.Equal(t, 0.0, Round(-0.5))
	assert.Equal(t, -1.0, Round(-0.6))
}
