package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// chromeBrowser drives a Chrome/Chromium process through the DevTools
// protocol. Each action runs under a context deadline equal to the page wait
// budget, which doubles as the implicit wait for elements to render.
type chromeBrowser struct {
	ctx    context.Context
	cancel context.CancelFunc
	wait   time.Duration
}

func newChromeBrowser(headless bool, wait time.Duration) (*chromeBrowser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.WindowSize(1600, 1200),
	)
	actx, acancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ccancel := chromedp.NewContext(actx)
	cancel := func() {
		ccancel()
		acancel()
	}
	// Start the browser process eagerly so launch failures surface here
	// rather than on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	return &chromeBrowser{ctx: ctx, cancel: cancel, wait: wait}, nil
}

// run executes actions with the configured wait budget as deadline.
func (b *chromeBrowser) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(b.ctx, b.wait)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (b *chromeBrowser) navigate(url string) error {
	return b.run(chromedp.Navigate(url))
}

func (b *chromeBrowser) reload() error {
	return b.run(chromedp.Reload())
}

func (b *chromeBrowser) click(sel string) error {
	return b.run(
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
	)
}

func (b *chromeBrowser) clickIfPresent(sel string) bool {
	// Short grace period: these controls either render promptly or not at all.
	ctx, cancel := context.WithTimeout(b.ctx, 2*time.Second)
	defer cancel()
	err := chromedp.Run(ctx,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
	)
	return err == nil
}

func (b *chromeBrowser) sendKeys(sel, text string) error {
	return b.run(
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, text, chromedp.ByQuery),
	)
}

func (b *chromeBrowser) selectByLabel(sel, label string) error {
	var ok bool
	err := b.run(
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Evaluate(selectByLabelJS(sel, label), &ok),
	)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no option labeled %q in %s", label, sel)
	}
	return nil
}

func (b *chromeBrowser) selectedValue(sel string) (string, error) {
	var v string
	err := b.run(
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Value(sel, &v, chromedp.ByQuery),
	)
	return v, err
}

func (b *chromeBrowser) close() error {
	b.cancel()
	return nil
}

// selectByLabelJS returns a script that selects the option whose visible
// label matches exactly and fires a change event so the page's cascading
// handlers run.
func selectByLabelJS(sel, label string) string {
	return fmt.Sprintf(`(function() {
  var s = document.querySelector(%q);
  if (!s) { return false; }
  for (var i = 0; i < s.options.length; i++) {
    var o = s.options[i];
    if (o.label.trim() === %q || o.textContent.trim() === %q) {
      s.value = o.value;
      s.dispatchEvent(new Event('change', {bubbles: true}));
      return true;
    }
  }
  return false;
})()`, sel, label, label)
}
