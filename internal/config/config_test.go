package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_EMAILS", "a@x.com, b@x.com,")
	t.Setenv("ALERT_DAYS", "7,3,0")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "s3cret", cfg.JWT.Secret)
	require.Equal(t, 168, cfg.JWT.RefreshExpirationHours)
	require.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.Alerts.AdminEmails)
	require.Equal(t, []int{7, 3, 0}, cfg.Alerts.LeadDays)
	require.Equal(t, 6543, cfg.Database.Port)
	require.Equal(t, 8080, cfg.Server.Port)

	h, m, err := cfg.AlertRunAt()
	require.NoError(t, err)
	require.Equal(t, 8, h)
	require.Equal(t, 0, m)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "jwt:\n  secret: from-file\nalerts:\n  lead_days: [2]\n  run_at: \"06:30\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ALERT_DAYS", "")
	t.Setenv("ADMIN_EMAILS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.JWT.Secret)
	require.Equal(t, []int{2}, cfg.Alerts.LeadDays)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.JWT.Secret = "x"
		c.Alerts.RunAt = "08:00"
		c.Alerts.LeadDays = []int{5, 1}
		return c
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.JWT.Secret = ""
	require.Error(t, c.Validate())

	c = valid()
	c.Alerts.LeadDays = []int{5, -1}
	require.Error(t, c.Validate())

	c = valid()
	c.Alerts.RunAt = "8am"
	require.Error(t, c.Validate())

	c = valid()
	c.Timezone = "Mars/Olympus"
	require.Error(t, c.Validate())
}

func TestParseLeadDays(t *testing.T) {
	days, err := ParseLeadDays([]string{"5", " 1"})
	require.NoError(t, err)
	require.Equal(t, []int{5, 1}, days)

	_, err = ParseLeadDays([]string{"five"})
	require.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt: [unclosed\n  secret: x"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "s3cret")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "config read")
}
