package tray

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/getlantern/systray"
	"github.com/pkg/browser"

	"github.com/thibautnext/x-growth-extension/internal/app"
	"github.com/thibautnext/x-growth-extension/internal/config"
)

//go:embed icon.png
var iconBytes []byte

// OnReady returns a systray onReady callback that sets up the menu.
func OnReady(a *app.App) func() {
	return func() {
		// Set icon (template icon for macOS menu bar styling)
		systray.SetTemplateIcon(iconBytes, iconBytes)
		systray.SetTitle("")
		systray.SetTooltip("x-growth - feed annotations for X")

		// Status (disabled, just for display)
		mStatus := systray.AddMenuItem("● Annotating", "Annotation status")
		mStatus.Disable()

		mPause := systray.AddMenuItem("Pause", "Pause or resume annotation")

		systray.AddSeparator()

		// Force a full pass: clears processed marks, re-annotates everything
		mReprocess := systray.AddMenuItem("Reprocess Feed", "Re-annotate all visible posts")

		mReplies := systray.AddMenuItem("Replies today: -", "Today's tracked reply count")
		mReplies.Disable()

		systray.AddSeparator()

		mEditConfig := systray.AddMenuItem("Edit Config", "Open config file in editor")
		mReloadConfig := systray.AddMenuItem("Reload Config", "Reload configuration from disk")

		systray.AddSeparator()

		mQuit := systray.AddMenuItem("Quit", "Exit x-growth")

		refreshStatus := func() {
			if a.Paused() {
				mStatus.SetTitle("○ Paused")
				mPause.SetTitle("Resume")
			} else {
				mStatus.SetTitle(fmt.Sprintf("● Annotating (%d posts)", a.AnnotatedCount()))
				mPause.SetTitle("Pause")
			}
			if n, err := a.TodayReplies(); err == nil {
				mReplies.SetTitle(fmt.Sprintf("Replies today: %d", n))
			}
		}
		refreshStatus()

		// Handle menu clicks
		go func() {
			for {
				select {
				case <-mPause.ClickedCh:
					if a.Paused() {
						a.Resume()
					} else {
						a.Pause()
					}
					refreshStatus()

				case <-mReprocess.ClickedCh:
					go func() {
						if err := a.Reprocess(); err != nil {
							log.Printf("Reprocess error: %v", err)
						}
					}()
					refreshStatus()

				case <-mEditConfig.ClickedCh:
					path, err := config.ConfigPath()
					if err != nil {
						log.Printf("Failed to get config path: %v", err)
						continue
					}
					if err := browser.OpenFile(path); err != nil {
						log.Printf("Failed to open config file: %v", err)
					}

				case <-mReloadConfig.ClickedCh:
					if err := a.ReloadConfig(); err != nil {
						log.Printf("Failed to reload config: %v", err)
					}
					refreshStatus()

				case <-mQuit.ClickedCh:
					systray.Quit()
				}
			}
		}()
	}
}

// OnExit returns the systray onExit callback.
func OnExit(a *app.App) func() {
	return func() {
		log.Println("x-growth shutting down...")
		a.Stop()
	}
}
