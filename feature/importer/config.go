package importer

// Config holds the importer behavior settings.
type Config struct {
	// ImportVlans controls VLAN synchronization: "no" disables all VLAN
	// fields, "cli" resolves VLANs discovered from device configs, and
	// "config" resolves VLANs from the desired-state inventory. Both
	// enabled variants resolve VLANs identically at apply time.
	ImportVlans string `mapstructure:"import_vlans" default:"config"`
}

const (
	ImportVlansNo     = "no"
	ImportVlansCLI    = "cli"
	ImportVlansConfig = "config"
)

// VlansEnabled reports whether VLAN fields are translated at all.
func (c Config) VlansEnabled() bool {
	return c.ImportVlans != ImportVlansNo
}
