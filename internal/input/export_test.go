package input

// SetInjector replaces the native injector behind Post until the returned restore
// function runs.
func SetInjector(inj Injector) (restore func()) {
	prev := platformInjector
	platformInjector = inj
	return func() { platformInjector = prev }
}
