package app

import (
	"os"
	"sync"
)

// TestModeEnv set to "1" makes the entrypoints return before connecting to
// Postgres or Redis.
const TestModeEnv = "SOFTM_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	return os.Getenv(TestModeEnv) == "1"
})

// InTestMode reports whether the application should skip runtime side effects.
func InTestMode() bool {
	return testMode()
}
