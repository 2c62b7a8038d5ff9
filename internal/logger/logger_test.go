package logger_test

import (
	"testing"

	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := logger.New(logger.Options{Service: "cart", Env: "prod", Level: "WARN"})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = logger.New(logger.Options{Service: "cart", Env: "dev", Level: "loud"})
	require.Error(t, err)
}
