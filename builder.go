package nexuslogger

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger handle with the built configuration.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cfg)
}

// Name sets the logger name.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Path sets the output file path. An empty path targets the console.
func (b *Builder) Path(path string) *Builder {
	b.cfg.Path = path
	return b
}

// Level sets the minimum severity.
func (b *Builder) Level(level Level) *Builder {
	b.cfg.Level = int64(level)
	return b
}

// LevelString sets the minimum severity from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := ParseLevel(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = int64(levelVal)
	return b
}

// UnixTimestamp selects the epoch-seconds time field format.
func (b *Builder) UnixTimestamp(enable bool) *Builder {
	b.cfg.UnixTimestamp = enable
	return b
}

// ConsoleTarget selects "stdout" or "stderr" for console output.
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// ChannelCapacity sets the transport channel capacity.
func (b *Builder) ChannelCapacity(capacity int64) *Builder {
	b.cfg.ChannelCapacity = capacity
	return b
}

// BatchSize sets the per-handle batch size.
func (b *Builder) BatchSize(size int64) *Builder {
	b.cfg.BatchSize = size
	return b
}

// FlushIntervalMs sets the worker flush interval in milliseconds.
func (b *Builder) FlushIntervalMs(interval int64) *Builder {
	b.cfg.FlushIntervalMs = interval
	return b
}

// Example usage:
// logger, err := nexuslogger.NewBuilder().
//
//	Name("api").
//	Path("/var/log/app/app.log").
//	LevelString("debug").
//	Build()
//
// if err == nil {
//
//	 defer logger.Close()
//	 logger.Info("logger initialized")
//
// }
