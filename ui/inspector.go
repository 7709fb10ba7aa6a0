package ui

import (
	"anchor/align"
	"anchor/geom"
	"anchor/inspect"
	"anchor/ui/layout"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// InspectorData is what the inspector shows about the focused popup.
type InspectorData struct {
	// Placement is the requested placement name.
	Placement string
	Result    align.Result
	State     string
	Phase     string
	Region    string
	Pointer   bool
	Motion    bool
	Nested    bool
	Scroll    geom.Vec
	Err       string
}

// Inspector displays the latest alignment result next to the stage.
type Inspector struct {
	width, height int
	degradation   layout.Degradation
	data          InspectorData
}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

func (i *Inspector) SetDegradation(d layout.Degradation) {
	i.degradation = d
}

func (i *Inspector) SetData(d InspectorData) {
	i.data = d
}

var labelStyle = lipgloss.NewStyle().Foreground(TextSecondary)

func field(label, value string) string {
	return labelStyle.Render(label+": ") + TextStyles.Primary.Render(value)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (i *Inspector) badge() string {
	d := i.data
	switch {
	case d.Err != "":
		return StatusStyles.Error.Render(IconError + " error")
	case strings.HasPrefix(d.State, "pending"):
		return StatusStyles.Pending.Render(IconPending + " " + d.State)
	case d.Result.Ready && (d.Result.FlippedX || d.Result.FlippedY):
		return StatusStyles.Flipped.Render(IconFlipped + " flipped")
	case d.Result.Ready:
		return StatusStyles.Open.Render(IconOpen + " " + d.State)
	default:
		return StatusStyles.Closed.Render(IconClosed + " " + d.State)
	}
}

func (i *Inspector) lines() []string {
	d := i.data
	res := d.Result
	lines := []string{TextStyles.Title.Render("Alignment"), i.badge(), ""}

	placement := d.Placement
	if res.Placement != "" && res.Placement != d.Placement {
		placement += " → " + res.Placement
	}
	lines = append(lines, field("placement", placement))

	if res.Ready {
		lines = append(lines, field("offset", num(res.OffsetX)+", "+num(res.OffsetY)))
		if i.degradation.ShouldShowEdgeOffsets() {
			lines = append(lines, field("right/bottom", num(res.OffsetRight)+", "+num(res.OffsetBottom)))
		}
		if res.Arrow != align.SideNone {
			lines = append(lines, field("arrow", fmt.Sprintf("%s @ %s,%s", res.Arrow, num(res.ArrowX), num(res.ArrowY))))
		}
		if res.ScaleX != 1 || res.ScaleY != 1 {
			lines = append(lines, field("scale", num(res.ScaleX)+", "+num(res.ScaleY)))
		}
	}

	if i.degradation.ShouldShowRule() && res.Ready {
		r := res.Rule
		lines = append(lines, "",
			field("points", fmt.Sprintf("%s → %s", r.PopupAnchor, r.TargetAnchor)),
			field("rule offset", r.Offset.X.String()+","+r.Offset.Y.String()),
			field("adjust", fmt.Sprintf("x=%t y=%t", r.Overflow.AdjustX, r.Overflow.AdjustY)),
		)
	}
	lines = append(lines, field("region", d.Region))

	if i.degradation.ShouldShowFlips() {
		var flips []string
		if res.Flips.BottomToTop {
			flips = append(flips, "bottomToTop")
		}
		if res.Flips.TopToBottom {
			flips = append(flips, "topToBottom")
		}
		if res.Flips.RightToLeft {
			flips = append(flips, "rightToLeft")
		}
		if res.Flips.LeftToRight {
			flips = append(flips, "leftToRight")
		}
		if len(flips) == 0 {
			flips = []string{"none"}
		}
		lines = append(lines, field("flips", strings.Join(flips, " ")))
	}

	var modes []string
	if d.Pointer {
		modes = append(modes, "pointer")
	}
	if d.Motion {
		modes = append(modes, "motion:"+d.Phase)
	}
	if d.Nested {
		modes = append(modes, "nested")
	}
	if len(modes) > 0 {
		lines = append(lines, field("mode", strings.Join(modes, " ")))
	}
	if !i.degradation.HideScrollIndicators {
		lines = append(lines, field("scroll", num(d.Scroll.X)+", "+num(d.Scroll.Y)))
	}
	if d.Err != "" {
		lines = append(lines, "", StatusStyles.Error.Render(d.Err))
	}
	return lines
}

func (i *Inspector) String() string {
	if i.width <= 2 || i.height <= 2 {
		return ""
	}
	lines := i.lines()
	if len(lines) > i.height-2 {
		lines = lines[:i.height-2]
	}
	return PanelStyle().
		Width(i.width - 2).
		Height(i.height - 2).
		MaxHeight(i.height).
		Render(strings.Join(lines, "\n"))
}

// InspectNode implements inspect.Introspectable.
func (i *Inspector) InspectNode() *inspect.Node {
	d := i.data
	return inspect.NewNode("Inspector").
		WithBounds(0, 0, i.width, i.height).
		WithState("placement", d.Placement).
		WithState("effective_placement", d.Result.Placement).
		WithState("state", d.State).
		WithState("phase", d.Phase).
		WithState("ready", d.Result.Ready).
		WithState("error", d.Err)
}
