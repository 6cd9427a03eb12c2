package logger_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nyoungstudios/notion.go/pkg/logger"
)

type testMethod struct {
	fn    func(msg string, args ...any)
	level string
}

func TestZerolog(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.NewZerolog().FromBuffer(buff).Make()
	require.NoError(t, err)
	require.NotNil(t, templogger)
	require.Equal(t, buff.Len(), 0)

	testMethods := []testMethod{
		{fn: templogger.Error, level: "error"},
		{fn: templogger.Warn, level: "warn"},
		{fn: templogger.Info, level: "info"},
		{fn: templogger.Debug, level: "debug"},
	}

	for _, v := range testMethods {
		t.Run(fmt.Sprintf("testing %s", v.level), func(t *testing.T) {
			buff.Reset()
			v.fn("request", "method", "GET", "status", 200)

			var line map[string]any
			require.NoError(t, json.Unmarshal(buff.Bytes(), &line))
			require.Equal(t, v.level, line["level"])
			require.Equal(t, "request", line["message"])
			require.Equal(t, "GET", line["method"])
			require.EqualValues(t, 200, line["status"])
		})
	}
}

func TestZerolog_level(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.NewZerolog().FromBuffer(buff).Level(zerolog.WarnLevel).Make()
	require.NoError(t, err)

	templogger.Debug("hidden")
	templogger.Info("hidden")
	require.Equal(t, 0, buff.Len())

	templogger.Warn("shown")
	require.Contains(t, buff.String(), "shown")
}

func TestZerolog_fromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	templogger, err := logger.NewZerolog().FromPath(path).Make()
	require.NoError(t, err)

	templogger.Info("written to file")
	require.NoError(t, templogger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "written to file")
}

func TestSlog(t *testing.T) {
	buffer := bytes.NewBuffer([]byte{})
	handler := slog.NewJSONHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := logger.New(handler)

	testMethods := []testMethod{
		{fn: l.Error, level: slog.LevelError.String()},
		{fn: l.Warn, level: slog.LevelWarn.String()},
		{fn: l.Info, level: slog.LevelInfo.String()},
		{fn: l.Debug, level: slog.LevelDebug.String()},
	}

	for _, v := range testMethods {
		t.Run(fmt.Sprintf("testing %s", v.level), func(t *testing.T) {
			buffer.Reset()
			v.fn("Test Log Value", "Somekey", "SomeVal")

			var line map[string]any
			require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
			require.Equal(t, v.level, line["level"])
			require.Equal(t, "Test Log Value", line["msg"])
			require.Equal(t, "SomeVal", line["Somekey"])
		})
	}
}

func TestNop(t *testing.T) {
	require.NotPanics(t, func() {
		l := logger.OrNop(nil)
		l.Error("x")
		l.Warn("x")
		l.Info("x")
		l.Debug("x", "k", "v")
	})
}
