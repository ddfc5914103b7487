package bloomsday

import "log/slog"

// Config holds optional filter construction settings. The zero value is
// valid: seed 0, xxHash64 keys, slog.Default for diagnostics.
type Config struct {
	Seed          uint64       // Mixed into every key hash
	HashAlgorithm int          // 1=xxHash64, 2=xxHash3, 3=Murmur3, 4=FNV1a, 5=Blake2b
	Logger        *slog.Logger // Construction diagnostics (debug level)
}

// withDefaults fills unset fields. Unknown algorithms fall back to the
// default rather than failing construction.
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.HashAlgorithm == 0 {
		c.HashAlgorithm = AlgXXHash64
	} else if !validAlgorithm(c.HashAlgorithm) {
		c.Logger.Debug("bloomsday: unknown hash algorithm, using default",
			"algorithm", c.HashAlgorithm, "default", AlgXXHash64)
		c.HashAlgorithm = AlgXXHash64
	}
	return c
}
