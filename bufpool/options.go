package bufpool

// Options configures a Pool's tier ceilings, per-tier cap, and no-pool
// floor. A zero-valued field falls back to the package's built-in default
// for that setting, so the zero Options is a usable default configuration.
type Options struct {
	TinyCeiling   int
	SmallCeiling  int
	MediumCeiling int
	LargeCeiling  int
	MaxPoolSize   int
	NoPoolFloor   int
}

// coalesce returns def when v is the zero value, otherwise v. Kept local to
// this package rather than shared from the root package: bufpool is a leaf
// the root package composes into Pipeline, so the dependency can't run the
// other way without creating an import cycle.
func coalesce(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func (o Options) resolve() tierConfig {
	return tierConfig{
		ceilings: [4]int{
			coalesce(o.TinyCeiling, tinyCeiling),
			coalesce(o.SmallCeiling, smallCeiling),
			coalesce(o.MediumCeiling, mediumCeiling),
			coalesce(o.LargeCeiling, largeCeiling),
		},
		maxPoolSize: coalesce(o.MaxPoolSize, MaxPoolSize),
		noPoolFloor: coalesce(o.NoPoolFloor, noPoolFloor),
	}
}
