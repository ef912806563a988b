// Package apptest runs a whole App over assets written to a temporary
// directory. It lives apart from testutil because it imports app, which
// imports the packages testutil helps test.
package apptest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/tilesmith/internal/app"
	"github.com/vk/tilesmith/internal/registry"
	"github.com/vk/tilesmith/internal/testutil"
)

// HarnessResult holds the outcomes of an application test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunApp writes files into a temporary assets directory, builds an App over
// it and runs it. cfg.AssetsPath is overwritten; logging is forced to debug
// text and colors are off. A startup panic is returned as Err.
func RunApp(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg.AssetsPath = dir
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	cfg.NoColor = true
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &testutil.SafeBuffer{}
	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, appConfig, nil, modules...)
	}()

	result := &HarnessResult{App: testApp}
	if panicErr != nil {
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
	} else {
		result.Err = testApp.Run(context.Background())
	}
	result.Output = out.String()

	if os.Getenv("TILESMITH_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), result.Output)
	}
	return result
}
