package domain

// Breakpoint is the viewport width below which the activity widget falls back
// to a text summary.
const Breakpoint = 992

// Viewport is the client's current window size in logical pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Box is the measured size of a render target's container.
type Box struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the box has no drawable area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsSmallScreen reports whether width falls below breakpoint. A zero width
// means the width is unknown and is treated as a large screen.
func IsSmallScreen(width, breakpoint int) bool {
	return width > 0 && width < breakpoint
}

// RenderBranch names which of the widget's two render paths is active.
type RenderBranch string

const (
	BranchNone    RenderBranch = "none"
	BranchChart   RenderBranch = "chart"
	BranchSummary RenderBranch = "summary"
)

// BranchFor picks the render branch for a viewport width.
func BranchFor(width, breakpoint int) RenderBranch {
	if IsSmallScreen(width, breakpoint) {
		return BranchSummary
	}
	return BranchChart
}
