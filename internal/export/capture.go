// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Interactive controls hidden before the capture; the exported guide
// shows only the brand content.
const hideControlsJS = `(() => {
	const style = document.createElement('style');
	style.textContent = '#export-btn-container, #generate-variations-btn, .reshape-btn { display: none !important; }';
	document.head.appendChild(style);
	return true;
})()`

const captureWidth = 1240

// CaptureDashboard renders the dashboard page in a headless browser and
// returns a full-height PNG screenshot with the interactive controls
// hidden.
func CaptureDashboard(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.NoSandbox,
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, 30*time.Second)
	defer timeoutCancel()

	var ok bool
	var buf []byte
	err := chromedp.Run(taskCtx,
		chromedp.EmulateViewport(captureWidth, 800),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(hideControlsJS, &ok),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("export: capture dashboard: %w", err)
	}
	return buf, nil
}
