// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/resume-screener/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       types.LogConfig
		wantLevel zapcore.Level
		wantErr   string
	}{
		{name: "default is development", cfg: types.LogConfig{}, wantLevel: zapcore.DebugLevel},
		{name: "prod", cfg: types.LogConfig{Env: "prod"}, wantLevel: zapcore.InfoLevel},
		{name: "level override", cfg: types.LogConfig{Env: "dev", Level: "warn"}, wantLevel: zapcore.WarnLevel},
		{name: "unknown env", cfg: types.LogConfig{Env: "staging"}, wantErr: "unknown environment"},
		{name: "bad level", cfg: types.LogConfig{Env: "prod", Level: "loud"}, wantErr: "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.wantLevel))
			assert.False(t, l.Core().Enabled(tt.wantLevel-1))
		})
	}
}

func TestContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
