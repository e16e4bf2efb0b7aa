package main

import (
	"testing"

	"github.com/velora-beauty/velora/internal/app"
)

// Calling main under test mode exercises the startup guard and keeps the
// full wiring compiled against the exported names of every internal package.
func TestMainSkipsStartupInTestMode(t *testing.T) {
	t.Setenv("VELORA_TEST_MODE", "1")
	t.Setenv("SESSION_SECRET", "test-secret")
	app.RefreshTestMode()

	main()
}
