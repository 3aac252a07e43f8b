// Package browser opens links in the user's web browser.
package browser

import (
	"fmt"
	"io"
	"net/url"

	pkgbrowser "github.com/pkg/browser"

	gserrors "github.com/botenders/govsimplify/internal/errors"
	"github.com/botenders/govsimplify/internal/logger"
)

func init() {
	// The opener's own output would corrupt the terminal UI.
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
}

// openURL is swapped out in tests.
var openURL = pkgbrowser.OpenURL

// Open launches the browser on rawURL. Only absolute http and https URLs are
// accepted.
func Open(rawURL string) error {
	const op = gserrors.Op("browser.Open")
	u, err := url.Parse(rawURL)
	if err != nil {
		return gserrors.E(op, gserrors.KindInvalid, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return gserrors.E(op, gserrors.KindInvalid, fmt.Sprintf("refusing to open %q", rawURL))
	}

	logger.WithComponent("browser").Info("opening link", "url", u.String())
	if err := openURL(u.String()); err != nil {
		return gserrors.E(op, gserrors.KindIO, err)
	}
	return nil
}

// SetOpener replaces the function used to launch the browser and returns a
// func restoring the previous one. Used by tests of packages that open links.
func SetOpener(fn func(string) error) (restore func()) {
	prev := openURL
	openURL = fn
	return func() { openURL = prev }
}
