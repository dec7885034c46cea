package config

// WithLookupEnv overrides the environment lookup function.
func WithLookupEnv(f func(string) string) Options {
	return func(o *options) {
		o.lookupEnv = f
	}
}
