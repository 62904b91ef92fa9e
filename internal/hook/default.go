package hook

var defaultEngine = NewEngine(platformBackend{})

// Default returns the process-wide engine bound to the native capture backend.
func Default() *Engine {
	return defaultEngine
}

// Start runs the process-wide engine. See Engine.Start.
func Start(dispatch Dispatch) error {
	return defaultEngine.Start(dispatch)
}

// Stop stops the process-wide engine. See Engine.Stop.
func Stop() error {
	return defaultEngine.Stop()
}

// CurrentState returns the state of the process-wide engine.
func CurrentState() State {
	return defaultEngine.State()
}
