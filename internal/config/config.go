// Package config loads the single immutable Configuration value each of
// the five WaveAlert360 processes is built from: layered with koanf
// (struct defaults, then an optional YAML file, then environment
// variables, highest priority wins) and then validated. Every
// constructor in this module takes its configuration (the whole Config
// or one sub-config) explicitly; nothing reads a config package global
// after Load returns.
package config

import "time"

// Config holds every setting used by any of the five processes. Each
// process loads the whole thing but only reads the sections it needs.
type Config struct {
	Device     DeviceConfig     `koanf:"device"`
	Cloud      CloudConfig      `koanf:"cloud"`
	Weather    WeatherConfig    `koanf:"weather"`
	Updater    UpdaterConfig    `koanf:"updater"`
	Resolver   ResolverConfig   `koanf:"resolver"`
	LED        LEDConfig        `koanf:"led"`
	Dashboard  DashboardConfig  `koanf:"dashboard"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Logging    LoggingConfig    `koanf:"logging"`
	Paths      PathsConfig      `koanf:"paths"`
}

// DeviceConfig controls how the device resolves its own identity.
type DeviceConfig struct {
	// NetworkInterface, if set, pins which interface's hardware address
	// becomes the DeviceIdentity. Empty means "first interface with a
	// non-empty, non-loopback hardware address".
	NetworkInterface string `koanf:"network_interface"`
	Latitude         float64 `koanf:"latitude"`
	Longitude        float64 `koanf:"longitude"`
}

// CloudConfig is the primary alert endpoint.
type CloudConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// WeatherConfig is the upstream fallback used when the cloud is
// unreachable.
type WeatherConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// UpdaterConfig controls the self-update loop.
type UpdaterConfig struct {
	RepoOwner     string        `koanf:"repo_owner"`
	RepoName      string        `koanf:"repo_name"`
	Branch        string        `koanf:"branch"`
	GitHubToken   string        `koanf:"github_token"`
	GitHubAPIBase string        `koanf:"github_api_base"`
	CheckInterval time.Duration `koanf:"check_interval"`
	WorkingTree   string        `koanf:"working_tree"`
	BackupDir     string        `koanf:"backup_dir"`
}

// ResolverConfig controls the alert poll loop.
type ResolverConfig struct {
	PollInterval       time.Duration `koanf:"poll_interval"`
	HTTPTimeout        time.Duration `koanf:"http_timeout"`
	LKGMaxAge          time.Duration `koanf:"lkg_max_age"`
	AudioCacheDir      string        `koanf:"audio_cache_dir"`
	AudioTimeout       time.Duration `koanf:"audio_timeout"`
	AudioPlayerCommand string        `koanf:"audio_player_command"`
	AudioSimulate      bool          `koanf:"audio_simulate"`
	DemoPauseDefault   time.Duration `koanf:"demo_pause_default"`
}

// LEDConfig controls the LED service's hardware and monitor loop.
type LEDConfig struct {
	StripPixelCount int           `koanf:"strip_pixel_count"`
	MonitorInterval time.Duration `koanf:"monitor_interval"`
	BlinkIterations int           `koanf:"blink_iterations"`
	BlinkStepDelay  time.Duration `koanf:"blink_step_delay"`
	Simulate        bool          `koanf:"simulate"`
}

// DashboardConfig controls the read-only status HTTP server.
type DashboardConfig struct {
	Host      string            `koanf:"host"`
	Port      int               `koanf:"port"`
	Operators map[string]string `koanf:"operators"` // username -> bcrypt hash
	MetricsAllowCIDRs []string  `koanf:"metrics_allow_cidrs"`
}

// SupervisorConfig controls the process tree.
type SupervisorConfig struct {
	MonitorInterval  time.Duration `koanf:"monitor_interval"`
	RestartWindow    time.Duration `koanf:"restart_window"`
	MaxRestarts      int           `koanf:"max_restarts"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
	LEDStatusMaxAge  time.Duration `koanf:"led_status_max_age"`
	SupervisorBinary string        `koanf:"supervisor_binary"`
	UpdaterBinary    string        `koanf:"updater_binary"`
	ResolverBinary   string        `koanf:"resolver_binary"`
	LEDBinary        string        `koanf:"led_binary"`
	DashboardBinary  string        `koanf:"dashboard_binary"`
}

// LoggingConfig controls the shared zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// PathsConfig is the well-known filesystem layout every process agrees on.
type PathsConfig struct {
	ControlToken       string `koanf:"control_token"`
	LEDStatus          string `koanf:"led_status"`
	LKGCache           string `koanf:"lkg_cache"`
	UpdateState        string `koanf:"update_state"`
	RestartState       string `koanf:"restart_state"`
	LockDir            string `koanf:"lock_dir"`
	EmergencyStopMarker string `koanf:"emergency_stop_marker"`
	ManualModeMarker   string `koanf:"manual_mode_marker"`
}
