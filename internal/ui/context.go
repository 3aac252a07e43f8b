package ui

import (
	"sync"

	"github.com/botenders/govsimplify/internal/logger"
)

// ViewContext holds centralized layout calculations and provides debug logging.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	NewsWidth     int // 0 while the news panel is hidden
	ChatWidth     int

	newsHidden bool

	mu sync.Mutex
}

// Global view context instance
var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
// It is called from the main event loop when the terminal is resized.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Validate dimensions to prevent negative layout values
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight
	v.layoutColumns()

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"newsWidth", v.NewsWidth,
		"chatWidth", v.ChatWidth,
	)
}

// SetNewsHidden collapses or restores the news column.
func (v *ViewContext) SetNewsHidden(hidden bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.newsHidden = hidden
	v.layoutColumns()
}

// NewsHidden reports whether the news column is collapsed.
func (v *ViewContext) NewsHidden() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.newsHidden
}

// layoutColumns splits the conversation view between chat and news.
// Callers hold mu.
func (v *ViewContext) layoutColumns() {
	if v.newsHidden || v.TerminalWidth == 0 {
		v.NewsWidth = 0
		v.ChatWidth = v.TerminalWidth
		return
	}
	v.NewsWidth = max(v.TerminalWidth/NewsWidthRatio, MinNewsWidth)
	v.ChatWidth = v.TerminalWidth - v.NewsWidth
}

// CatalogColumns returns how many agency cards fit side by side.
func (v *ViewContext) CatalogColumns() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return max(1, v.TerminalWidth/CatalogCardWidth)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
