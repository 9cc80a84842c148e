package config

import "fmt"

// Validate checks that the loaded configuration is internally consistent.
// Load calls this once before returning the Config to any process.
func (c *Config) Validate() error {
	if err := c.validateCloud(); err != nil {
		return err
	}
	if err := c.validateUpdater(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	if err := c.validateLED(); err != nil {
		return err
	}
	if err := c.validateSupervisor(); err != nil {
		return err
	}
	return c.validatePaths()
}

func (c *Config) validateCloud() error {
	if c.Cloud.BaseURL == "" {
		return fmt.Errorf("cloud.base_url is required")
	}
	if c.Cloud.Timeout <= 0 {
		return fmt.Errorf("cloud.timeout must be positive")
	}
	return nil
}

func (c *Config) validateUpdater() error {
	if c.Updater.RepoOwner == "" || c.Updater.RepoName == "" {
		return fmt.Errorf("updater.repo_owner and updater.repo_name are required")
	}
	if c.Updater.CheckInterval <= 0 {
		return fmt.Errorf("updater.check_interval must be positive")
	}
	if c.Updater.WorkingTree == "" {
		return fmt.Errorf("updater.working_tree is required")
	}
	return nil
}

func (c *Config) validateResolver() error {
	if c.Resolver.PollInterval <= 0 {
		return fmt.Errorf("resolver.poll_interval must be positive")
	}
	if c.Resolver.HTTPTimeout <= 0 {
		return fmt.Errorf("resolver.http_timeout must be positive")
	}
	return nil
}

func (c *Config) validateLED() error {
	if c.LED.StripPixelCount <= 0 {
		return fmt.Errorf("led.strip_pixel_count must be positive")
	}
	if c.LED.MonitorInterval <= 0 {
		return fmt.Errorf("led.monitor_interval must be positive")
	}
	return nil
}

func (c *Config) validateSupervisor() error {
	if c.Supervisor.MaxRestarts <= 0 {
		return fmt.Errorf("supervisor.max_restarts must be positive")
	}
	if c.Supervisor.RestartWindow <= 0 {
		return fmt.Errorf("supervisor.restart_window must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	required := map[string]string{
		"paths.control_token": c.Paths.ControlToken,
		"paths.led_status":    c.Paths.LEDStatus,
		"paths.lkg_cache":     c.Paths.LKGCache,
		"paths.update_state":  c.Paths.UpdateState,
		"paths.lock_dir":      c.Paths.LockDir,
	}
	for name, val := range required {
		if val == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}
