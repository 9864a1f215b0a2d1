package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderBudgetBar renders spend against a budget limit. Unlike task
// progress, high usage is the bad direction: green under 66%, yellow to
// 100%, red when spend exceeds the limit.
func RenderBudgetBar(spend, limit float64, width int) string {
	if limit <= 0 {
		return Dim("no budget limit")
	}
	pct := spend / limit
	if width < 2 {
		width = 2
	}

	clamped := pct
	if clamped > 1 {
		clamped = 1
	}
	filled := int(clamped * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct > 1 {
		style = StyleRed
	} else if pct > 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %s / %s", style.Render(bar), Money(spend), Money(limit))
}
