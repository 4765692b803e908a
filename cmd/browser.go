package cmd

// browser is a minimal capability interface over a scripted browser instance.
// The portal flow depends only on this surface, so the chromedp-backed
// implementation can be swapped for a fake when exercising the navigation
// sequence in tests. Every method that waits for an element observes one
// fixed wait budget; none of them retries.
type browser interface {
	navigate(url string) error
	reload() error
	// click waits for sel to become visible and clicks it.
	click(sel string) error
	// clickIfPresent clicks sel if it shows up within a short grace period
	// and reports whether it did. Used for controls that only sometimes
	// appear (consent banners, license prompts).
	clickIfPresent(sel string) bool
	sendKeys(sel, text string) error
	// selectByLabel picks the option whose visible label matches exactly.
	selectByLabel(sel, label string) error
	// selectedValue reads back the underlying value of the currently
	// selected option.
	selectedValue(sel string) (string, error)
	close() error
}
