package funding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavidKiarie/CircleFund/app/models"
)

type stubSettings struct {
	values map[string]string
}

func (s *stubSettings) GetValue(key string) (string, error) {
	return s.values[key], nil
}

func (s *stubSettings) SetValue(key, value string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(&stubSettings{})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseAmount, cfg.BaseAmount)
	assert.True(t, cfg.RankBonusEnabled)
	assert.Equal(t, DefaultRankBonusPool, cfg.RankBonusPool)
	assert.True(t, cfg.PerformanceBonusEnabled)
	assert.Equal(t, DefaultPerformanceBonusPool, cfg.PerformanceBonusPool)
}

func TestLoadConfigOverrides(t *testing.T) {
	settings := &stubSettings{values: map[string]string{
		models.SettingFundingBaseAmount:    "7500",
		models.SettingRankBonusEnabled:     "false",
		models.SettingPerformanceBonusPool: "20000",
	}}

	cfg, err := LoadConfig(settings)
	require.NoError(t, err)

	assert.Equal(t, int64(7500), cfg.BaseAmount)
	assert.False(t, cfg.RankBonusEnabled)
	assert.Equal(t, int64(20000), cfg.PerformanceBonusPool)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultRankBonusPool, cfg.RankBonusPool)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for _, bad := range []string{"abc", "-1", "12.5"} {
		settings := &stubSettings{values: map[string]string{
			models.SettingFundingBaseAmount: bad,
		}}
		if _, err := LoadConfig(settings); err == nil {
			t.Fatalf("expected error for base amount %q", bad)
		}
	}
}

func TestConfigComponentTotal(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, int64(3*5000+100000+50000), cfg.ComponentTotal(3))

	cfg.RankBonusEnabled = false
	assert.Equal(t, int64(3*5000+50000), cfg.ComponentTotal(3))

	cfg.PerformanceBonusEnabled = false
	assert.Equal(t, int64(15000), cfg.ComponentTotal(3))
}
