package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"recipectl/internal/testsupport"
)

type cliTestEnv struct {
	server     *testsupport.RecipeServer
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	t.Setenv("RECIPECTL_CSRF_TOKEN", "")

	server := testsupport.NewRecipeServer(t)

	cfg := testsupport.NewConfig(t,
		testsupport.WithBaseURL(server.URL()),
		testsupport.WithCSRFToken("cli-test-token"))
	cfg.Logging.Level = "error"

	contents, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, contents, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{server: server, configPath: configPath}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
