package main

import (
	"testing"

	"github.com/velora-beauty/velora/internal/app"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	t.Setenv("VELORA_TEST_MODE", "1")
	t.Setenv("SESSION_SECRET", "test-secret")
	app.RefreshTestMode()

	main()
}
