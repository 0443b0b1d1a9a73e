package postgres

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchPayloadLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	fields := map[string]any{"name": "Umbrella"}

	raw, err := patchPayload(fields, now)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "Umbrella", payload["name"])
	assert.Equal(t, now.Format(time.RFC3339), payload["updatedAt"])

	// The caller's map stays as passed; patch maps are often shared.
	assert.Equal(t, map[string]any{"name": "Umbrella"}, fields)
}

func TestPatchPayloadNilFields(t *testing.T) {
	t.Parallel()

	raw, err := patchPayload(nil, time.Now().UTC())
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Len(t, payload, 1)
	assert.Contains(t, payload, "updatedAt")
}
