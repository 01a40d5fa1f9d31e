package infrastructure

import (
	"errors"
	"os/exec"
)

// chromeNames are the binaries chromedp would try, in order.
var chromeNames = []string{
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"google-chrome-beta",
	"google-chrome-unstable",
}

var ErrChromeNotFound = errors.New("no chrome binary found")

// LocateChrome resolves the browser a renderer with execPath would start. An
// explicit path must exist and be executable; otherwise PATH is searched.
func LocateChrome(execPath string) (string, error) {
	if execPath != "" {
		p, err := exec.LookPath(execPath)
		if err != nil {
			return "", errors.Join(ErrChromeNotFound, err)
		}
		return p, nil
	}
	for _, name := range chromeNames {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrChromeNotFound
}
