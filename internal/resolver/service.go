package resolver

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/metrics"
	"github.com/tomtom215/wavealert360/internal/models"
)

// Service runs the resolver's poll loop: cloud first, weather fallback
// second, last-known-good cache third, failsafe SAFE last resort. It is
// a single ticking loop rather than a suture tree, since the resolver
// process has no sub-services of its own to supervise.
type Service struct {
	identity models.DeviceIdentity
	cfg      config.ResolverConfig
	device   config.DeviceConfig

	cloud      *CloudClient
	weather    *WeatherClient
	lkg        *LKGStore
	dispatcher *Dispatcher
	demo       *DemoCycler
}

// New wires a Service from configuration.
func New(identity models.DeviceIdentity, cfg *config.Config) *Service {
	audio := NewAudioCache(cfg.Resolver.AudioCacheDir, cfg.Resolver.AudioTimeout)

	var sink AudioSink = NewSimulatedSink()
	if !cfg.Resolver.AudioSimulate && cfg.Resolver.AudioPlayerCommand != "" {
		sink = NewPlayerSink(cfg.Resolver.AudioPlayerCommand, cfg.Resolver.AudioTimeout)
	}

	return &Service{
		identity:   identity,
		cfg:        cfg.Resolver,
		device:     cfg.Device,
		cloud:      NewCloudClient(cfg.Cloud.BaseURL, cfg.Cloud.Timeout),
		weather:    NewWeatherClient(cfg.Weather.BaseURL, cfg.Weather.Timeout),
		lkg:        NewLKGStore(cfg.Paths.LKGCache),
		dispatcher: NewDispatcher(cfg.Paths.ControlToken, audio, sink),
		demo:       NewDemoCycler(cfg.Resolver.DemoPauseDefault),
	}
}

// Run ticks the resolve-dispatch cycle on cfg.Resolver.PollInterval
// until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	s.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.pollOnce(ctx)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	start := time.Now()
	decision, source := s.resolve(ctx)
	metrics.ObserveDuration(metrics.ResolverPollDuration, string(source), start)
	metrics.ResolverPollsTotal.WithLabelValues(string(source)).Inc()
	metrics.ResolverDispatchedLevel.WithLabelValues(string(decision.Level)).Inc()

	if _, err := s.dispatcher.Dispatch(ctx, decision); err != nil {
		logging.Err(err).Str("source", string(source)).Msg("dispatch failed")
	}

	if source == models.SourceLive || source == models.SourceTest || source == models.SourceDemo {
		if err := s.lkg.Save(decision); err != nil {
			logging.Err(err).Msg("failed to persist last-known-good decision")
		}
	}
}

// resolve implements the fallback chain: cloud, then weather+keyword
// detection, then the on-disk LKG cache, then a hardcoded failsafe.
func (s *Service) resolve(ctx context.Context) (models.ResolverDecision, models.ResolverSource) {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.HTTPTimeout)
	defer cancel()

	resp, err := s.cloud.Fetch(reqCtx, s.identity)
	if err == nil {
		decision := resp.Decision(time.Now())
		if decision.DeviceMode == "DEMO" {
			decision.Level = s.demo.Step(time.Now(), decision.DemoPause)
		} else {
			s.demo.Reset()
		}
		return decision, decision.Source
	}
	logging.Warn().Err(err).Msg("cloud fetch failed, falling back to weather api")

	weatherCtx, weatherCancel := context.WithTimeout(ctx, s.cfg.HTTPTimeout)
	decision, werr := s.weather.Fetch(weatherCtx, s.device.Latitude, s.device.Longitude, time.Now())
	weatherCancel()
	if werr == nil {
		return decision, models.SourceWeather
	}
	logging.Warn().Err(werr).Msg("weather fallback failed, falling back to last-known-good cache")

	cached, lerr := s.lkg.Load()
	if lerr == nil {
		// A demo snapshot never goes stale the way a live hazard reading
		// does: the mode flag itself is what LKGMaxAge has no opinion on,
		// so it resumes cycling instead of being aged out.
		if cached.DeviceMode == "DEMO" {
			cached.Level = s.demo.Step(time.Now(), cached.DemoPause)
			cached.Source = models.SourceDemo
			cached.ObtainedAt = time.Now()
			return cached, models.SourceDemo
		}
		if !cached.IsStale(s.cfg.LKGMaxAge, time.Now()) {
			return cached, models.SourceCache
		}
	}
	if lerr != nil && !errors.Is(lerr, os.ErrNotExist) {
		logging.Err(lerr).Msg("last-known-good cache unreadable")
	}

	logging.Warn().Msg("no authoritative or cached decision available, dispatching failsafe SAFE")
	return models.FailsafeDecision(time.Now()), models.SourceFailsafe
}
