package placement

import (
	"anchor/geom"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	table := Builtins()
	explicit := Rule{PopupAnchor: geom.TopLeft, TargetAnchor: geom.TopRight}

	tests := []struct {
		name      string
		explicit  *Rule
		placement string
		want      Rule
	}{
		{
			name:      "explicit rule wins over a known placement",
			explicit:  &explicit,
			placement: "bottom",
			want:      explicit,
		},
		{
			name:      "known placement",
			placement: "bottom",
			want:      table["bottom"],
		},
		{
			name:      "unknown placement falls back silently",
			placement: "sideways",
			want:      Neutral(),
		},
		{
			name: "empty placement falls back",
			want: Neutral(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.explicit, tt.placement, table, Neutral())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltinsAreValid(t *testing.T) {
	table := Builtins()
	require.NoError(t, table.Validate())
	assert.Len(t, table, 12)

	for _, name := range table.Names() {
		r := table[name]
		assert.True(t, r.Overflow.AdjustX, name)
		assert.True(t, r.Overflow.AdjustY, name)
		assert.True(t, r.AutoArrow, name)
	}

	// Builtins returns a copy.
	table["top"] = Neutral()
	assert.NotEqual(t, Neutral(), Builtins()["top"])
}

func TestMatch(t *testing.T) {
	table := Builtins()

	name, ok := Match(table, "bottom", table["bottom"], false)
	require.True(t, ok)
	assert.Equal(t, "bottom", name)

	flipped := table["bottom-left"].FlipVertical()
	name, ok = Match(table, "bottom-left", flipped, false)
	require.True(t, ok)
	assert.Equal(t, "top-left", name)

	_, ok = Match(table, "", Rule{PopupAnchor: geom.Center, TargetAnchor: geom.Center}, false)
	assert.False(t, ok)

	// Pointer mode only compares the popup anchor.
	name, ok = Match(table, "", Rule{PopupAnchor: geom.TopLeft, TargetAnchor: geom.Center}, true)
	require.True(t, ok)
	assert.Equal(t, "bottom-left", name)
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "popup-placement-top", ClassName("popup", "top"))
	assert.Equal(t, "", ClassName("popup", ""))
}

func TestRuleJSON(t *testing.T) {
	input := `{
		"points": ["tl", "bottom-left"],
		"offset": [0, "50%"],
		"targetOffset": [2],
		"overflow": {"adjustX": true, "shiftY": 4},
		"region": "scroll"
	}`

	var r Rule
	require.NoError(t, json.Unmarshal([]byte(input), &r))

	assert.Equal(t, geom.TopLeft, r.PopupAnchor)
	assert.Equal(t, geom.BottomLeft, r.TargetAnchor)
	assert.Equal(t, Offset{X: Px(0), Y: Pct(50)}, r.Offset)
	assert.Equal(t, Offset{X: Px(2)}, r.TargetOffset)
	assert.True(t, r.Overflow.AdjustX)
	assert.False(t, r.Overflow.AdjustY)
	assert.Equal(t, Shift{Enabled: true, Margin: 4}, r.Overflow.ShiftY)
	assert.Equal(t, RegionScroll, r.Region)

	out, err := json.Marshal(r.Offset)
	require.NoError(t, err)
	assert.JSONEq(t, `[0, "50%"]`, string(out))
}

func TestRuleJSONErrors(t *testing.T) {
	bad := []string{
		`{"points": ["tl"]}`,
		`{"popupAnchor": "middle"}`,
		`{"offset": [1, 2, 3]}`,
		`{"offset": ["abc%"]}`,
		`{"overflow": {"shiftX": "yes"}}`,
	}
	for _, in := range bad {
		var r Rule
		assert.Error(t, json.Unmarshal([]byte(in), &r), in)
	}
}

func TestLengthResolve(t *testing.T) {
	assert.Equal(t, 4.0, Px(4).Resolve(80))
	assert.Equal(t, 40.0, Pct(50).Resolve(80))
	assert.Equal(t, "50%", Pct(50).String())
}

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("visibleFirst")
	require.NoError(t, err)
	assert.Equal(t, RegionVisibleFirst, r)

	_, err = ParseRegion("window")
	assert.Error(t, err)

	assert.Equal(t, RegionVisible, Region("nonsense").Normalize())
}
