// Package ui provides the user interface components for the GovSimplify TUI.
//
// # Overview
//
// The ui package implements the visual components of GovSimplify using the
// Bubble Tea framework and Lipgloss styling library. Components own their
// rendering and local key handling; the app package decides what the keys mean
// for the conversation as a whole.
//
// # Layout System
//
// Agency selection fills the space between header and footer with the catalog:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Search                                              │
//	│ ┌──────────┐ ┌──────────┐ ┌──────────┐              │
//	│ │ Agency   │ │ Agency   │ │ Agency   │   ...        │
//	│ └──────────┘ └──────────┘ └──────────┘              │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// A conversation splits the content area between chat and news:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├───────────────────────────────────┬─────────────────┤
//	│                                   │                 │
//	│         Chat Panel                │   News Panel    │
//	│         (2/3 width)               │   (1/3 width)   │
//	│                                   │                 │
//	├───────────────────────────────────┴─────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// The news column can be collapsed, in which case chat takes the full width.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Application title, the logo link and the active agency name.
//
// Footer: Context-aware keyboard shortcuts, flash messages and the copyright.
//
// Catalog: Search box over a grid of agency cards. Owns the highlight cursor,
// the current selection and its screen-reader style announcement.
//
// Chat: Transcript viewport and message input. Renders replies as markdown
// and user text literally.
//
// NewsView: Article cards for the active agency with loading and empty states.
//
// Modal: Centered popup hosting a modals.ModalState (help, settings,
// attachment picker and preview).
//
// # Styles
//
// Styles live in styles.go and are regenerated from the active Theme by
// SetTheme. The modals package receives its copy through RefreshModalStyles.
package ui
