// Package browser provides shared chromedp configuration with anti-bot-detection measures.
package browser

import (
	"github.com/chromedp/chromedp"

	"github.com/thibautnext/x-growth-extension/internal/config"
)

// DefaultUserAgent is a realistic Chrome user agent
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options returns chromedp allocator options for the annotation session.
// The session lives alongside the user's normal browsing, so it keeps a
// dedicated profile dir and the usual anti-automation flags — X checks
// navigator.webdriver.
func Options(headless bool) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),

		// Prevent navigator.webdriver = true detection
		chromedp.Flag("disable-blink-features", "AutomationControlled"),

		chromedp.UserAgent(DefaultUserAgent),
		chromedp.WindowSize(1400, 1000),

		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	// Reuse one profile so the session keeps its login between runs.
	if dir, err := config.CacheDir(); err == nil {
		opts = append(opts, chromedp.UserDataDir(dir+"/chrome-profile"))
	}

	if headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}

	return opts
}
