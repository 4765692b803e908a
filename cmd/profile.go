package cmd

// profile models the optional YAML run profile. It captures the appliance
// connection defaults, the portal account, and selector overrides for when
// the portal markup shifts. CLI flags take precedence over these defaults
// when set.
type profile struct {
	Host               string            `yaml:"host"`
	ApplianceUser      string            `yaml:"appliance_user"`
	TargetVersion      string            `yaml:"target_version"`
	PortalUser         string            `yaml:"portal_user"`
	PortalPasswordFile string            `yaml:"portal_password_file"`
	TOTPSeedFile       string            `yaml:"totp_seed_file"`
	Region             string            `yaml:"region"`
	Selectors          selectorOverrides `yaml:"selectors,omitempty"`
}

// selectorOverrides lets an operator correct individual portal selectors
// without a rebuild.
type selectorOverrides struct {
	OTPInput string `yaml:"otp_input,omitempty"`
}
