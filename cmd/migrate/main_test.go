package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Setenv(dsnEnv, "")

	tests := []struct {
		name    string
		args    []string
		env     string
		want    options
		wantErr string
	}{
		{
			name: "defaults with env dsn",
			env:  "postgres://env",
			want: options{direction: "up", dsn: "postgres://env"},
		},
		{
			name: "flag dsn wins",
			args: []string{"-direction", "DOWN", "-steps", "2", "-dsn", "postgres://flag"},
			env:  "postgres://env",
			want: options{direction: "down", steps: 2, dsn: "postgres://flag"},
		},
		{name: "missing dsn", args: []string{"-direction", "status"}, wantErr: "is required"},
		{name: "bad direction", args: []string{"-direction", "sideways", "-dsn", "x"}, wantErr: "unsupported direction"},
		{name: "unknown flag", args: []string{"-force"}, wantErr: "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(dsnEnv, tt.env)

			got, err := parseArgs(tt.args)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_Postgres(t *testing.T) {
	dsn := os.Getenv("RMS_POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("RMS_POSTGRES_TEST_DSN is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"-direction", "up", "-dsn", dsn}, &out))
	assert.Contains(t, out.String(), "version=3")

	out.Reset()
	require.NoError(t, run(ctx, []string{"-direction", "down", "-steps", "3", "-dsn", dsn}, &out))
	assert.Contains(t, out.String(), "version=0")

	out.Reset()
	require.NoError(t, run(ctx, []string{"-direction", "status", "-dsn", dsn}, &out))
	assert.Contains(t, out.String(), "pending=3")
}
