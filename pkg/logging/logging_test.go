// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.input))
		})
	}
}

func TestLevelForVerbosity(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	assert.Equal(t, "warn", LevelForVerbosity(false, ""))
	assert.Equal(t, "info", LevelForVerbosity(true, ""))
	assert.Equal(t, "debug", LevelForVerbosity(false, "debug"))

	t.Setenv(EnvLogLevel, "error")
	assert.Equal(t, "error", LevelForVerbosity(true, ""))
}

func TestStructuredLogger_QuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newStructuredLogger(&buf, "investigator", "v1.0.0", "warn")

	l.Info("mounting device", "device", "sdc1")
	assert.Empty(t, buf.String())

	l.Error("upload failed", "object", "messages-gzip-20240101")
	require.NotEmpty(t, buf.String())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "investigator", rec["module"])
	assert.Equal(t, "v1.0.0", rec["version"])
	assert.Equal(t, "upload failed", rec["msg"])
}
