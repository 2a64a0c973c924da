package gcconfig

// Load runs the defaults -> environment -> validate pipeline and returns the
// resulting Tunables. CLI flag overrides (RegisterFlags) are applied by the
// caller before a final Validate call, since flag parsing needs a FlagSet
// the caller owns (cobra, in cmd/zdirectorctl).
func Load() (Tunables, error) {
	t := Defaults()
	t = ApplyEnvironment(t)
	if err := Validate(t); err != nil {
		return Tunables{}, err
	}
	return t, nil
}
