package genarena

import (
	"github.com/hupe1980/genarena/resource"
)

// MemoryAcquirer provisions the bytes backing an arena's slot storage.
//
// AcquireMemory must not block; returning an error makes the growing
// operation fail with ErrAllocationFailed. *resource.Controller implements
// this interface and may be shared by several arenas.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

// GenerationPolicy decides what happens when a slot's generation counter
// would wrap around on Destroy.
type GenerationPolicy uint8

const (
	// GenerationWrap lets the counter wrap to zero and keeps reusing the
	// slot. After 2^bits(G) reuses of one slot a very old handle can match
	// a new element again. This is the default.
	GenerationWrap GenerationPolicy = iota

	// GenerationRetire takes a slot out of circulation instead of wrapping.
	// The slot is never reused, so a stale handle can never resolve, at the
	// cost of one permanently dead slot per exhausted index.
	GenerationRetire
)

func (p GenerationPolicy) String() string {
	switch p {
	case GenerationWrap:
		return "wrap"
	case GenerationRetire:
		return "retire"
	default:
		return "unknown"
	}
}

type options struct {
	acquirer          MemoryAcquirer
	memoryLimit       int64
	growthBytesPerSec int64
	pageSize          int
	capacity          int
	logger            *Logger
	metricsCollector  MetricsCollector
	generationPolicy  GenerationPolicy
}

// Option configures an Arena.
type Option func(*options)

// WithMemoryAcquirer sets the memory provisioning strategy. It takes
// precedence over WithMemoryLimit and WithGrowthRate.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(o *options) {
		o.acquirer = acquirer
	}
}

// WithMemoryLimit caps the bytes of slot storage the arena may reserve.
// If set to 0, memory is unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithGrowthRate caps how fast slot storage may grow, in bytes per second.
// The burst equals one second of growth, so the per-page byte size must not
// exceed bytesPerSec or growth always fails.
// If set to 0, growth is unthrottled.
func WithGrowthRate(bytesPerSec int64) Option {
	return func(o *options) {
		o.growthBytesPerSec = bytesPerSec
	}
}

// WithPageSize sets the number of slots allocated per storage page.
// It is rounded up to a power of two. Default: 1024.
func WithPageSize(slots int) Option {
	return func(o *options) {
		o.pageSize = slots
	}
}

// WithCapacity reserves storage for n elements up front.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithGenerationPolicy sets the generation wraparound policy.
func WithGenerationPolicy(p GenerationPolicy) Option {
	return func(o *options) {
		o.generationPolicy = p
	}
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		generationPolicy: GenerationWrap,
	}
}

func (o *options) resolveAcquirer() MemoryAcquirer {
	if o.acquirer != nil {
		return o.acquirer
	}
	if o.memoryLimit <= 0 && o.growthBytesPerSec <= 0 {
		return nil
	}
	return resource.NewController(resource.Config{
		MemoryLimitBytes:  o.memoryLimit,
		GrowthBytesPerSec: o.growthBytesPerSec,
	})
}
