package plugin

// OptionsForm is the plain-data equivalent of the settings page: four
// values loaded from and saved to the per-plugin configuration store. Any
// settings surface (GUI form, CLI command, config file editor) can be
// built on top of it.
type OptionsForm struct {
	Enabled        bool
	UseRegex       bool
	FirstMatchOnly bool
	PairsText      string
}

// LoadOptions populates a form from the plugin's configuration store.
func (p *Plugin) LoadOptions() OptionsForm {
	cfg := p.host.PluginConfig()
	return OptionsForm{
		Enabled:        cfg.Bool(OptEnabled),
		UseRegex:       cfg.Bool(OptUseRegex),
		FirstMatchOnly: cfg.Bool(OptFirstMatchOnly),
		PairsText:      cfg.String(OptPairs),
	}
}

// SaveOptions persists the form and refreshes the pair list so the new
// pairs take effect before SaveOptions returns.
func (p *Plugin) SaveOptions(form OptionsForm) {
	cfg := p.host.PluginConfig()
	cfg.SetString(OptPairs, form.PairsText)
	cfg.SetBool(OptFirstMatchOnly, form.FirstMatchOnly)
	cfg.SetBool(OptEnabled, form.Enabled)
	cfg.SetBool(OptUseRegex, form.UseRegex)

	p.Refresh()
}

// PairsEditable reports whether the pairs text should be editable in a
// settings surface; it follows the enable flag.
func (f OptionsForm) PairsEditable() bool {
	return f.Enabled
}
