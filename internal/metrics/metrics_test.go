package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		RoleRestarts,
		RoleCooldowns,
		RoleUp,
		ResolverPollDuration,
		ResolverPollsTotal,
		ResolverDispatchedLevel,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
		UpdateChecksTotal,
		UpdatesAppliedTotal,
		UpdateFailuresTotal,
		BackupArchiveBytes,
	}

	for _, c := range collectors {
		ch := make(chan *prometheus.Desc, 1)
		c.Describe(ch)
		close(ch)
		if _, ok := <-ch; !ok {
			t.Errorf("collector %T has no descriptors", c)
		}
	}
}

func TestMetricLabelsDoNotPanic(t *testing.T) {
	RoleRestarts.WithLabelValues("resolver").Inc()
	RoleCooldowns.WithLabelValues("resolver").Inc()
	RoleUp.WithLabelValues("resolver").Set(1)
	ResolverPollsTotal.WithLabelValues("LIVE").Inc()
	ResolverDispatchedLevel.WithLabelValues("DANGER").Inc()
	CircuitBreakerState.WithLabelValues("cloud").Set(0)
	CircuitBreakerRequests.WithLabelValues("cloud", "success").Inc()
	CircuitBreakerTransitions.WithLabelValues("cloud", "closed", "open").Inc()
	UpdateFailuresTotal.WithLabelValues("fetch").Inc()
}

func TestObserveDurationRecordsAgainstStartTime(t *testing.T) {
	before := testutil.CollectAndCount(ResolverPollDuration)
	ObserveDuration(ResolverPollDuration, "LIVE", time.Now().Add(-50*time.Millisecond))
	after := testutil.CollectAndCount(ResolverPollDuration)
	if after <= before {
		t.Errorf("observation count did not increase: before=%d after=%d", before, after)
	}
}

func TestMetricsLint(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Logf("metric lint: %s", p.Text)
	}
}
