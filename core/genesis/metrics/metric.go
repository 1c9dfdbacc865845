package metrics

import (
	"errors"
	"math/big"
	"time"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelOutcome = "outcome"
	labelKind    = "kind"
	labelTarget  = "target"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var gweiPerWei = new(big.Float).SetInt64(1_000_000_000)

type (
	Metrics struct {
		compileCounter  *prometheus.CounterVec
		errorCounter    *prometheus.CounterVec
		compileDuration prometheus.Histogram
		validatorGauge  prometheus.Gauge
		totalStakeGauge prometheus.Gauge
		publishCounter  *prometheus.CounterVec
	}
)

func NewCollector(prom prometheus.Registerer) (*Metrics, error) {
	compileCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genesis_compile_total",
			Help: "A counter for genesis compiles by outcome.",
		},
		[]string{labelOutcome},
	)
	errorCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genesis_compile_errors_total",
			Help: "A counter for failed genesis compiles by error kind.",
		},
		[]string{labelKind},
	)
	compileDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genesis_compile_duration_seconds",
			Help:    "Time spent compiling a genesis document.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)
	validatorGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "genesis_validators",
			Help: "Number of validators in the last compiled genesis.",
		},
	)
	totalStakeGauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "genesis_total_stake_gwei",
			Help: "Aggregate stake of the last compiled genesis, in gwei.",
		},
	)
	publishCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genesis_publish_total",
			Help: "A counter for published genesis artifacts by target and outcome.",
		},
		[]string{labelTarget, labelOutcome},
	)

	var err error
	if compileCounter, err = registerCollector(prom, compileCounter); err != nil {
		return nil, err
	}
	if errorCounter, err = registerCollector(prom, errorCounter); err != nil {
		return nil, err
	}
	if compileDuration, err = registerCollector(prom, compileDuration); err != nil {
		return nil, err
	}
	if validatorGauge, err = registerCollector(prom, validatorGauge); err != nil {
		return nil, err
	}
	if totalStakeGauge, err = registerCollector(prom, totalStakeGauge); err != nil {
		return nil, err
	}
	if publishCounter, err = registerCollector(prom, publishCounter); err != nil {
		return nil, err
	}

	return &Metrics{
		compileCounter:  compileCounter,
		errorCounter:    errorCounter,
		compileDuration: compileDuration,
		validatorGauge:  validatorGauge,
		totalStakeGauge: totalStakeGauge,
		publishCounter:  publishCounter,
	}, nil
}

func (c *Metrics) CompileSucceeded(validators int, totalStake *uint256.Int, elapsed time.Duration) {
	c.compileCounter.With(prometheus.Labels{labelOutcome: outcomeSuccess}).Inc()
	c.compileDuration.Observe(elapsed.Seconds())
	c.validatorGauge.Set(float64(validators))

	gwei, _ := new(big.Float).Quo(new(big.Float).SetInt(totalStake.ToBig()), gweiPerWei).Float64()
	c.totalStakeGauge.Set(gwei)
}

func (c *Metrics) CompileFailed(kind string, elapsed time.Duration) {
	c.compileCounter.With(prometheus.Labels{labelOutcome: outcomeFailure}).Inc()
	c.errorCounter.With(prometheus.Labels{labelKind: kind}).Inc()
	c.compileDuration.Observe(elapsed.Seconds())
}

func (c *Metrics) ObservePublish(target string, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	c.publishCounter.With(prometheus.Labels{labelTarget: target, labelOutcome: outcome}).Inc()
}

var ErrWrongMetricType = errors.New("collector already registered with different type")

// registerCollector registers a Prometheus collector and returns the registered collector or an error
func registerCollector[T prometheus.Collector](prom prometheus.Registerer, c T) (T, error) {
	err := prom.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return c, err
	}

	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, ErrWrongMetricType
	}

	return existing, nil
}
