package updater

import (
	"context"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/tomtom215/wavealert360/internal/config"
	"github.com/tomtom215/wavealert360/internal/logging"
	"github.com/tomtom215/wavealert360/internal/metrics"
	"github.com/tomtom215/wavealert360/internal/models"
)

// Service runs the self-update poll loop: check the remote branch on an
// interval, and on a new commit, archive a backup, fast-forward, persist
// the new state, and signal the dashboard to restart.
type Service struct {
	cfg    config.UpdaterConfig
	paths  config.PathsConfig
	github *GitHubClient
	git    *GitRepo
	state  *StateStore
}

// New wires a Service from configuration.
func New(cfg *config.Config) *Service {
	return &Service{
		cfg:   cfg.Updater,
		paths: cfg.Paths,
		github: NewGitHubClient(
			cfg.Updater.GitHubAPIBase, cfg.Updater.RepoOwner, cfg.Updater.RepoName,
			cfg.Updater.Branch, cfg.Updater.GitHubToken, 10*time.Second,
		),
		git:   NewGitRepo(cfg.Updater.WorkingTree, cfg.Updater.Branch, cfg.Updater.RepoOwner, cfg.Updater.RepoName, cfg.Updater.GitHubToken),
		state: NewStateStore(cfg.Paths.UpdateState),
	}
}

// Run ticks check-and-apply on cfg.Updater.CheckInterval until ctx is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.CheckInterval)
	defer ticker.Stop()

	s.checkAndApply(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkAndApply(ctx)
		}
	}
}

func (s *Service) checkAndApply(ctx context.Context) {
	metrics.UpdateChecksTotal.Inc()

	if EmergencyStopActive(s.paths.EmergencyStopMarker) {
		logging.Info().Msg("emergency stop marker present, skipping update check")
		return
	}

	current, err := s.state.Load()
	if err != nil {
		logging.Err(err).Msg("failed to load update state")
		metrics.UpdateFailuresTotal.WithLabelValues("load_state").Inc()
		return
	}

	latest, err := s.github.LatestCommit(ctx)
	if err != nil {
		logging.Err(err).Msg("failed to check remote commit")
		metrics.UpdateFailuresTotal.WithLabelValues("check_remote").Inc()
		return
	}

	if latest.SHA == current.CommitHash {
		logging.Debug().Str("commit", latest.SHA).Msg("no update available")
		return
	}

	logging.Info().
		Str("current", current.CommitHash).
		Str("latest", latest.SHA).
		Str("message", latest.Message).
		Msg("new commit available")

	if ManualModeActive(s.paths.ManualModeMarker) {
		logging.Info().Msg("manual mode marker present, update available but not applying")
		return
	}

	s.applyUpdate(ctx, current, latest)
}

func (s *Service) applyUpdate(ctx context.Context, current models.UpdateState, latest CommitInfo) {
	archivePath, err := ArchiveBackup(s.cfg.WorkingTree, s.cfg.BackupDir, time.Now())
	if err != nil {
		logging.Err(err).Msg("pre-update backup failed, aborting update")
		metrics.UpdateFailuresTotal.WithLabelValues("backup").Inc()
		return
	}
	if info, statErr := os.Stat(archivePath); statErr == nil {
		metrics.BackupArchiveBytes.Observe(float64(info.Size()))
	}

	retry := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	err = backoff.Retry(func() error {
		if cerr := s.git.ConfigureRemote(ctx); cerr != nil {
			return cerr
		}
		return s.git.FastForward(ctx)
	}, backoff.WithContext(retry, ctx))

	if err != nil {
		logging.Err(err).Msg("fast-forward failed after retries, keeping old state")
		metrics.UpdateFailuresTotal.WithLabelValues("fast_forward").Inc()
		return
	}

	head, err := s.git.HeadCommit(ctx)
	if err != nil {
		logging.Err(err).Msg("failed to read new head commit")
		metrics.UpdateFailuresTotal.WithLabelValues("head_commit").Inc()
		return
	}

	if err := s.state.Save(head, current, time.Now()); err != nil {
		logging.Err(err).Msg("failed to persist update state")
		metrics.UpdateFailuresTotal.WithLabelValues("save_state").Inc()
		return
	}

	metrics.UpdatesAppliedTotal.Inc()
	logging.Info().Str("commit", head).Msg("update applied")

	if err := SignalRole(s.paths.LockDir, "dashboard"); err != nil {
		logging.Warn().Err(err).Msg("failed to signal dashboard restart, supervisor will detect staleness independently")
	}
}
