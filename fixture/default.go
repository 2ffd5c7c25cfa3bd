package fixture

// Default is the process-wide orchestrator used by the package-level
// functions. Libraries embedding their own lifecycle should create a private
// Orchestrator instead.
var Default = NewOrchestrator()

// RegisterSetup registers a per-body setup on the default orchestrator.
func RegisterSetup(scope string, cb Callback) { Default.RegisterSetup(scope, cb) }

// RegisterTeardown registers a per-body teardown on the default orchestrator.
func RegisterTeardown(scope string, cb Callback) { Default.RegisterTeardown(scope, cb) }

// RegisterBeforeAll registers a once-per-scope setup on the default
// orchestrator.
func RegisterBeforeAll(scope string, cb Callback) { Default.RegisterBeforeAll(scope, cb) }

// RegisterAfterAll registers a session-end callback on the default
// orchestrator.
func RegisterAfterAll(scope string, cb Callback) { Default.RegisterAfterAll(scope, cb) }

// RunWithFixtures runs body inside the scope's lifecycle on the default
// orchestrator.
func RunWithFixtures(scope string, body func()) { Default.RunWithFixtures(scope, body) }

// RunAfterAllFixtures flushes after-all callbacks on the default
// orchestrator.
func RunAfterAllFixtures() { Default.RunAfterAllFixtures() }
