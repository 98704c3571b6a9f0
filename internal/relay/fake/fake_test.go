package fake_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prx-network/relayleaf/internal/model"
	"github.com/prx-network/relayleaf/internal/relay"
	"github.com/prx-network/relayleaf/internal/relay/fake"
)

func newEngine(t *testing.T) *fake.Engine {
	t.Helper()

	eng, err := fake.NewEngine(fake.EngineConfig{})
	require.NoError(t, err)

	return eng
}

func TestEngineCreateAssignsDeviceID(t *testing.T) {
	eng := newEngine(t)

	h, code := eng.Create(false)
	require.Equal(t, model.CodeOK, code)

	assert.NotEmpty(t, eng.DeviceID(h))

	// Distinct handles get distinct device IDs.
	h2, code := eng.Create(false)
	require.Equal(t, model.CodeOK, code)
	assert.NotEqual(t, eng.DeviceID(h), eng.DeviceID(h2))
}

func TestEngineCodeSemantics(t *testing.T) {
	tests := map[string]struct {
		op      func(eng *fake.Engine, h relay.Handle) model.Code
		expCode model.Code
	}{
		"Operations on a dead handle should return invalid handle.": {
			op: func(eng *fake.Engine, h relay.Handle) model.Code {
				return eng.Start(relay.Handle(12345))
			},
			expCode: model.CodeInvalidHandle,
		},
		"An empty discovery URL should return null param.": {
			op: func(eng *fake.Engine, h relay.Handle) model.Code {
				return eng.SetDiscoveryURL(h, "")
			},
			expCode: model.CodeNullParam,
		},
		"A proxy URL without scheme should return invalid proxy.": {
			op: func(eng *fake.Engine, h relay.Handle) model.Code {
				return eng.AddProxy(h, "not-a-url")
			},
			expCode: model.CodeInvalidProxy,
		},
		"Starting twice should return already started.": {
			op: func(eng *fake.Engine, h relay.Handle) model.Code {
				eng.Start(h)
				return eng.Start(h)
			},
			expCode: model.CodeAlreadyStarted,
		},
		"Stopping a never started client should return not started.": {
			op: func(eng *fake.Engine, h relay.Handle) model.Code {
				return eng.Stop(h)
			},
			expCode: model.CodeNotStarted,
		},
		"Configuring after start should return already started.": {
			op: func(eng *fake.Engine, h relay.Handle) model.Code {
				eng.Start(h)
				return eng.SetPartnerID(h, "late")
			},
			expCode: model.CodeAlreadyStarted,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			eng := newEngine(t)
			h, code := eng.Create(false)
			require.Equal(t, model.CodeOK, code)

			assert.Equal(t, test.expCode, test.op(eng, h))
		})
	}
}

func TestEngineDestroyInvalidatesHandle(t *testing.T) {
	eng := newEngine(t)

	h, code := eng.Create(false)
	require.Equal(t, model.CodeOK, code)

	require.Equal(t, model.CodeOK, eng.Destroy(h))
	assert.Equal(t, model.CodeInvalidHandle, eng.Destroy(h))
	assert.Empty(t, eng.DeviceID(h))

	_, code = eng.Stats(h)
	assert.Equal(t, model.CodeInvalidHandle, code)
}

func TestEngineStatsSession(t *testing.T) {
	eng := newEngine(t)

	h, code := eng.Create(false)
	require.Equal(t, model.CodeOK, code)

	// Not started: disconnected but readable.
	raw, code := eng.Stats(h)
	require.Equal(t, model.CodeOK, code)
	assert.False(t, raw.Connected)

	require.Equal(t, model.CodeOK, eng.Start(h))

	raw, code = eng.Stats(h)
	require.Equal(t, model.CodeOK, code)
	assert.True(t, raw.Connected)
	assert.NotEmpty(t, raw.ExitPointsJSON)
	assert.NotEmpty(t, raw.NodeAddressesJSON)

	// The sub-documents are valid JSON that the snapshot decoder accepts.
	stats := model.NewStats(raw)
	assert.Empty(t, stats.DecodeWarnings)

	// Counters reset across a stop/start cycle.
	require.Equal(t, model.CodeOK, eng.Stop(h))
	require.Equal(t, model.CodeOK, eng.Start(h))

	raw, code = eng.Stats(h)
	require.Equal(t, model.CodeOK, code)
	assert.Less(t, raw.UptimeSeconds, int64(2))
	assert.Less(t, time.Duration(raw.UptimeSeconds)*time.Second, time.Minute)
}

func TestEngineStatsOverride(t *testing.T) {
	eng := newEngine(t)

	h, code := eng.Create(false)
	require.Equal(t, model.CodeOK, code)

	eng.SetStatsResponse(model.RawStats{Connected: true, ConnectedNodes: 9})

	raw, code := eng.Stats(h)
	require.Equal(t, model.CodeOK, code)
	assert.True(t, raw.Connected)
	assert.Equal(t, 9, raw.ConnectedNodes)
}

func TestEngineErrorText(t *testing.T) {
	eng := newEngine(t)

	assert.Equal(t, "invalid proxy URL", eng.ErrorText(model.CodeInvalidProxy))
	assert.Equal(t, "ok", eng.ErrorText(model.CodeOK))
	assert.NotEmpty(t, eng.Version())
}
