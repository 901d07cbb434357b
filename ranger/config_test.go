package ranger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/logger"
	"github.com/xy-planning-network/signpost/ranger"
)

func TestNewConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Act
		cfg, err := ranger.NewConfig()

		// Assert
		require.Nil(t, err)
		require.Equal(t, signpost.Development, cfg.Env)
		require.Equal(t, ":3000", cfg.Addr())
		require.Equal(t, logger.LogLevelInfo, cfg.LogLevel)
		require.Equal(t, 12*time.Hour, cfg.SendFileMaxAge)
		require.Equal(t, "signpost", cfg.SessionName)
		require.False(t, cfg.UseXSendfile)

		u, err := cfg.URL()
		require.Nil(t, err)
		require.Equal(t, "http://localhost:3000", u.String())
	})

	t.Run("Set", func(t *testing.T) {
		// Arrange
		t.Setenv("ENVIRONMENT", "staging")
		t.Setenv("BASE_URL", "https://example.com")
		t.Setenv("PORT", "8080")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("USE_X_SENDFILE", "true")
		t.Setenv("SEND_FILE_MAX_AGE", "1m")
		t.Setenv("RATE_LIMIT", "0")

		// Act
		cfg, err := ranger.NewConfig()

		// Assert
		require.Nil(t, err)
		require.Equal(t, signpost.Staging, cfg.Env)
		require.Equal(t, ":8080", cfg.Addr())
		require.Equal(t, logger.LogLevelDebug, cfg.LogLevel)
		require.True(t, cfg.UseXSendfile)
		require.Equal(t, time.Minute, cfg.SendFileMaxAge)
		require.Zero(t, cfg.RateLimit)

		u, err := cfg.URL()
		require.Nil(t, err)
		require.Equal(t, "https://example.com", u.String())
	})

	t.Run("Bad-Env", func(t *testing.T) {
		// Arrange
		t.Setenv("ENVIRONMENT", "nope")

		// Act
		_, err := ranger.NewConfig()

		// Assert
		require.ErrorIs(t, err, signpost.ErrBadConfig)
	})
}
