// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/botenders/govsimplify/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes the clipboard. It is safe to call multiple times; the
// result of the first call is remembered.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.WithComponent("clipboard").Warn("clipboard unavailable", "error", err)
			initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			return
		}
		logger.WithComponent("clipboard").Debug("clipboard initialized")
	})
	return initErr
}

// WriteText places text on the system clipboard. Headless systems without a
// clipboard return an error; callers also emit OSC 52 so remote terminals
// still receive the text.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
