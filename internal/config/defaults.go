package config

import "time"

func defaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			NetworkInterface: "",
		},
		Cloud: CloudConfig{
			BaseURL: "https://cloud.wavealert360.example",
			Timeout: 10 * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.weather.gov",
			Timeout: 10 * time.Second,
		},
		Updater: UpdaterConfig{
			RepoOwner:     "wavealert360",
			RepoName:      "device",
			Branch:        "main",
			GitHubAPIBase: "https://api.github.com/repos",
			CheckInterval: 120 * time.Second,
			WorkingTree:   "/opt/wavealert360",
			BackupDir:     "/var/lib/wavealert360/backups",
		},
		Resolver: ResolverConfig{
			PollInterval:       30 * time.Second,
			HTTPTimeout:        10 * time.Second,
			LKGMaxAge:          15 * time.Minute,
			AudioCacheDir:      "/var/lib/wavealert360/audio-cache",
			AudioTimeout:       20 * time.Second,
			AudioPlayerCommand: "mpg123",
			AudioSimulate:      false,
			DemoPauseDefault:   3 * time.Second,
		},
		LED: LEDConfig{
			StripPixelCount: 48,
			MonitorInterval: 2 * time.Second,
			BlinkIterations: 6,
			BlinkStepDelay:  250 * time.Millisecond,
			Simulate:        false,
		},
		Dashboard: DashboardConfig{
			Host:              "0.0.0.0",
			Port:              8088,
			Operators:         map[string]string{},
			MetricsAllowCIDRs: []string{"127.0.0.1/32", "::1/128"},
		},
		Supervisor: SupervisorConfig{
			MonitorInterval:  60 * time.Second,
			RestartWindow:    10 * time.Minute,
			MaxRestarts:      5,
			ShutdownTimeout:  10 * time.Second,
			LEDStatusMaxAge:  10 * time.Second,
			SupervisorBinary: "wavealert360-supervisor",
			UpdaterBinary:    "wavealert360-updater",
			ResolverBinary:   "wavealert360-resolver",
			LEDBinary:        "wavealert360-ledservice",
			DashboardBinary:  "wavealert360-dashboard",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Paths: PathsConfig{
			ControlToken:        "/run/wavealert360/led_control_signal",
			LEDStatus:           "/run/wavealert360/led_service_status.json",
			LKGCache:            "/var/lib/wavealert360/lkg_cache.json",
			UpdateState:         "/var/lib/wavealert360/update_state.json",
			RestartState:        "/var/lib/wavealert360/restart_state.json",
			LockDir:             "/run/wavealert360/locks",
			EmergencyStopMarker: "/var/lib/wavealert360/EMERGENCY_STOP",
			ManualModeMarker:    "/var/lib/wavealert360/MANUAL_MODE",
		},
	}
}
