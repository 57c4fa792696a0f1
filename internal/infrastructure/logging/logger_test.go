package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"prdashboard/internal/infrastructure/logging"
)

func TestNewLogger(t *testing.T) {
	log, err := logging.NewLogger("INFO")
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.InfoLevel))
	require.False(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = logging.NewLogger("debug")
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = logging.NewLogger("loud")
	require.Error(t, err)
}
