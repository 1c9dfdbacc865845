package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewCollector(reg)
	require.NoError(t, err)

	stake := new(uint256.Int).Mul(uint256.NewInt(3_000_000_000), uint256.NewInt(1_000_000_000))
	m.CompileSucceeded(2, stake, 5*time.Millisecond)
	m.CompileFailed("validation", time.Millisecond)
	m.CompileFailed("validation", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.compileCounter.WithLabelValues(outcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.compileCounter.WithLabelValues(outcomeFailure)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.errorCounter.WithLabelValues("validation")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.validatorGauge))
	assert.Equal(t, 3e9, testutil.ToFloat64(m.totalStakeGauge))
	assert.Equal(t, 1, testutil.CollectAndCount(m.compileDuration))
}

func TestObservePublish(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewCollector(reg)
	require.NoError(t, err)

	m.ObservePublish("file", nil)
	m.ObservePublish("blob", errors.New("denied"))

	expected := `
# HELP genesis_publish_total A counter for published genesis artifacts by target and outcome.
# TYPE genesis_publish_total counter
genesis_publish_total{outcome="failure",target="blob"} 1
genesis_publish_total{outcome="success",target="file"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "genesis_publish_total"))
}

func TestNewCollectorReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.CompileFailed("overflow", 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.errorCounter.WithLabelValues("overflow")))
}

func TestRegisterCollectorWrongType(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "genesis_validators",
		Help: "Number of validators in the last compiled genesis.",
	})))

	_, err := registerCollector(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "genesis_validators",
		Help: "Number of validators in the last compiled genesis.",
	}))
	assert.ErrorIs(t, err, ErrWrongMetricType)
}
