package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/fcea/internal/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, config.TransportHTTP, cfg.Transport.Mode)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Scenario.Query)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  host: 127.0.0.1
  port: 9000
transport:
  mode: stdio
log:
  level: debug
scenario:
  query: founderName=Ada
`)
	t.Setenv("FCEA_CONFIG_PATH", path)
	t.Setenv("FCEA_SERVER_PORT", "9100")
	t.Setenv("FCEA_SCENARIO_QUERY", "contributorName=Grace")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, config.TransportStdio, cfg.Transport.Mode)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "contributorName=Grace", cfg.Scenario.Query)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("FCEA_SERVER_PORT", "eighty")
	_, err := config.Load()
	require.ErrorContains(t, err, "FCEA_SERVER_PORT")
}

func TestLoad_InvalidTransport(t *testing.T) {
	t.Setenv("FCEA_TRANSPORT", "carrier-pigeon")
	_, err := config.Load()
	require.ErrorContains(t, err, "invalid transport mode")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("FCEA_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := config.Load()
	require.ErrorContains(t, err, "read config file")
}

func TestSeeder_ScenarioFileWithQueryOverride(t *testing.T) {
	path := writeFile(t, "scenario.yaml", `
founder:
  name: Ada Lovelace
  company_name: Engines Ltd
contributor:
  name: Grace Hopper
  total_equity_granted: 10
  cliff_days: 90
  vesting_exponent: 1.5
`)
	cfg := config.Config{Scenario: config.ScenarioConfig{Path: path, Query: "?contributorName=Grace"}}

	seeder, err := cfg.Seeder()
	require.NoError(t, err)
	seed := seeder.Seed()
	require.Equal(t, "Ada Lovelace", seed.Founder.Name)
	require.Equal(t, "Engines Ltd", seed.Founder.CompanyName)
	require.Equal(t, "Grace", seed.Contributor.Name)
	require.Equal(t, 10.0, seed.Contributor.TotalEquityGranted)
	require.Equal(t, 90, seed.Contributor.CliffDays)
	require.Equal(t, 1.5, seed.Contributor.VestingExponent)
	require.Equal(t, 2.0, seed.Contributor.VestingPeriod)
}

func TestSeeder_EmptyScenarioIsDefault(t *testing.T) {
	seeder, err := config.Config{}.Seeder()
	require.NoError(t, err)
	require.Empty(t, seeder.Query)
}

func TestSeeder_BadScenarioFile(t *testing.T) {
	path := writeFile(t, "scenario.yaml", "founder: [not, a, map]\n")
	_, err := config.Config{Scenario: config.ScenarioConfig{Path: path}}.Seeder()
	require.ErrorContains(t, err, "parse scenario file")
}
