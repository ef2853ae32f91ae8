package types

// Config is the static process configuration loaded from config.yaml. All
// runtime-mutable settings (channels, roles, images, the ticket counter) live
// in the persisted Document instead.
type Config struct {
	// DataFile is the path of the persisted document.
	DataFile string `yaml:"data_file"`

	// Redis is a redis URL used for ticket-creation cooldowns. Optional,
	// cooldowns are skipped when unset.
	Redis string `yaml:"redis"`

	// MonitoringAddr is the listen address for /healthz and /metrics.
	MonitoringAddr string `yaml:"monitoring_addr"`

	// ProxyHost routes Discord API calls through a local ratelimit proxy
	// when set, e.g. "localhost:3219".
	ProxyHost string `yaml:"proxy_host"`
}

func (c *Config) SetDefaults() {
	if c.DataFile == "" {
		c.DataFile = "data.json"
	}

	if c.MonitoringAddr == "" {
		c.MonitoringAddr = ":8080"
	}
}
