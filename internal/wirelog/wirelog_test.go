package wirelog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticefTagsRecord(t *testing.T) {
	var buf bytes.Buffer

	lg := New(slog.New(slog.NewJSONHandler(&buf, nil)))
	lg.Noticef("peer %d disconnected", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "peer 7 disconnected", rec["msg"])
	assert.Equal(t, true, rec["notice"])
}

func TestWithAttachesFields(t *testing.T) {
	var buf bytes.Buffer

	lg := New(slog.New(slog.NewJSONHandler(&buf, nil))).With("remote", "1.2.3.4:8333")
	lg.Errorf("boom")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "1.2.3.4:8333", rec["remote"])
}
