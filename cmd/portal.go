package cmd

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

const (
	portalEntryURL     = "https://account.f5.com/myf5/"
	portalDownloadsURL = "https://my.f5.com/manage/s/downloads"

	defaultRegion = "IRELAND"
	productFamily = "BIG-IP"

	selConsentAccept   = "#onetrust-accept-btn-handler"
	selLoginIdentifier = `input[name="identifier"]`
	selLoginNext       = `input[type="submit"]`
	selLoginPassword   = `input[name="credentials.passcode"]`
	selLoginVerify     = `input[type="submit"]`
	// TODO: confirm this selector against the live portal. The attribute
	// syntax is malformed (hyphen where '=' belongs) but matches the
	// recorded flow; correct it via --otp-selector or the profile once
	// verified.
	selOTPInput  = "input[@type-'tel']"
	selOTPSubmit = `input[type="submit"]`

	selEULACheckbox = `input[type="checkbox"][name="eula"]`
	selEULAConfirm  = `button[name="eula-accept"]`

	selFamilySelect  = `select[name="product_family"]`
	selLineSelect    = `select[name="product_line"]`
	selVersionSelect = `select[name="product_version"]`
	selRegionSelect  = `select[name="download_location"]`

	// Category filter controls carry generated suffixes; only the name
	// prefix is stable across portal deployments.
	selGeoCategoryButton = `[name^="F5_GeoLocationUpdates"]`
	selGeoProductButton  = `[name^="ip-geolocation"]`
)

// portalCredentials carries the portal account and a one-time-code generator
// seeded once from the shared secret.
type portalCredentials struct {
	User     string
	Password string
	OTP      func() (string, error)
}

// portalSession scripts the browser through the portal's login, license, and
// download-selection pages. Every step is a precondition for the next; a
// missing element within the wait budget fails the run.
type portalSession struct {
	b      browser
	log    *zap.SugaredLogger
	otpSel string
}

// portalDownloadURL launches a browser, logs into the portal, and resolves
// the region-specific download URL for the given appliance version. The
// browser is always closed before returning.
func portalDownloadURL(log *zap.SugaredLogger, creds portalCredentials, version, region string) (string, error) {
	b, err := newBrowserFunc(cfgHeadless, cfgPageTimeout)
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	defer func() { _ = b.close() }()

	ps := &portalSession{b: b, log: log, otpSel: cfgOTPSelector}
	return ps.downloadURL(creds, version, region)
}

func (p *portalSession) downloadURL(creds portalCredentials, version, region string) (string, error) {
	line, err := productLine(version)
	if err != nil {
		return "", err
	}

	if err := p.b.navigate(portalEntryURL); err != nil {
		return "", fmt.Errorf("open portal: %w", err)
	}
	p.dismissConsent()

	if err := p.login(creds); err != nil {
		return "", err
	}

	if err := p.b.navigate(portalDownloadsURL); err != nil {
		return "", fmt.Errorf("open downloads page: %w", err)
	}
	// The consent banner reappears on every navigation.
	p.dismissConsent()
	p.acceptLicense()

	// The cascading selects and the deep link carry the same parameters;
	// the recorded flow performs both, so both are kept.
	if err := p.b.selectByLabel(selFamilySelect, productFamily); err != nil {
		return "", fmt.Errorf("select product family: %w", err)
	}
	if err := p.b.selectByLabel(selLineSelect, line); err != nil {
		return "", fmt.Errorf("select product line: %w", err)
	}
	if err := p.b.selectByLabel(selVersionSelect, version); err != nil {
		return "", fmt.Errorf("select version: %w", err)
	}
	if err := p.b.navigate(listingURL(productFamily, line, version)); err != nil {
		return "", fmt.Errorf("open listing: %w", err)
	}

	if err := p.b.click(selGeoCategoryButton); err != nil {
		return "", fmt.Errorf("select geolocation category: %w", err)
	}
	if err := p.b.click(selGeoProductButton); err != nil {
		return "", fmt.Errorf("select geolocation product: %w", err)
	}

	if err := p.b.selectByLabel(selRegionSelect, region); err != nil {
		return "", fmt.Errorf("select region %q: %w", region, err)
	}
	u, err := p.b.selectedValue(selRegionSelect)
	if err != nil {
		return "", fmt.Errorf("read download URL: %w", err)
	}
	return u, nil
}

// login walks the discovery form, the password form, and the one-time-code
// challenge in order.
func (p *portalSession) login(creds portalCredentials) error {
	if err := p.b.sendKeys(selLoginIdentifier, creds.User); err != nil {
		return fmt.Errorf("username form: %w", err)
	}
	if err := p.b.click(selLoginNext); err != nil {
		return fmt.Errorf("submit username: %w", err)
	}
	if err := p.b.sendKeys(selLoginPassword, creds.Password); err != nil {
		return fmt.Errorf("password form: %w", err)
	}
	if err := p.b.click(selLoginVerify); err != nil {
		return fmt.Errorf("submit password: %w", err)
	}
	code, err := creds.OTP()
	if err != nil {
		return fmt.Errorf("one-time code: %w", err)
	}
	if err := p.b.sendKeys(p.otpSelector(), code); err != nil {
		return fmt.Errorf("one-time code form: %w", err)
	}
	if err := p.b.click(selOTPSubmit); err != nil {
		return fmt.Errorf("submit one-time code: %w", err)
	}
	return nil
}

func (p *portalSession) otpSelector() string {
	if p.otpSel != "" {
		return p.otpSel
	}
	return selOTPInput
}

func (p *portalSession) dismissConsent() {
	if p.b.clickIfPresent(selConsentAccept) {
		p.log.Debug("dismissed consent banner")
	}
}

// acceptLicense ticks and confirms the license agreement when presented, then
// reloads so the listing reflects the acceptance.
func (p *portalSession) acceptLicense() {
	if !p.b.clickIfPresent(selEULACheckbox) {
		return
	}
	if p.b.clickIfPresent(selEULAConfirm) {
		p.log.Debug("accepted license agreement")
	}
	if err := p.b.reload(); err != nil {
		p.log.Warnw("reload after license acceptance", "error", err)
	}
}

// listingURL builds the deep-linked downloads listing equivalent to the UI
// selection.
func listingURL(family, line, version string) string {
	q := url.Values{}
	q.Set("family", family)
	q.Set("line", line)
	q.Set("version", version)
	return portalDownloadsURL + "?" + q.Encode()
}
