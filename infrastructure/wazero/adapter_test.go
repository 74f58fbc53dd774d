package wazero

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidchisnall/microvium/domain/entities"
	mverrors "github.com/davidchisnall/microvium/domain/errors"
	"github.com/davidchisnall/microvium/domain/ports"
)

// emptyWasm is a valid module with no imports, exports, or memory. It
// stands in for an engine build where instantiation alone is under test.
var emptyWasm = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func TestDefaultAdapterConfig(t *testing.T) {
	cfg := defaultAdapterConfig()
	assert.Equal(t, "mvm_host", cfg.hostModuleName)
}

func TestWithHostModuleName(t *testing.T) {
	cfg := defaultAdapterConfig()
	WithHostModuleName("engine_env")(&cfg)
	assert.Equal(t, "engine_env", cfg.hostModuleName)
}

func TestUnpackStatus(t *testing.T) {
	tests := []struct {
		packed  uint64
		status  entities.Status
		payload uint32
	}{
		{0, entities.StatusSuccess, 0},
		{42, entities.StatusSuccess, 42},
		{uint64(entities.StatusMalformedBytecode) << 32, entities.StatusMalformedBytecode, 0},
		{uint64(entities.StatusUnresolvedImport)<<32 | 7, entities.StatusUnresolvedImport, 7},
	}
	for _, tt := range tests {
		status, payload := unpackStatus(tt.packed)
		assert.Equal(t, tt.status, status)
		assert.Equal(t, tt.payload, payload)
	}
}

func TestNewEngineRejectsInvalidBinary(t *testing.T) {
	_, err := NewEngine(context.Background(), []byte("not wasm"))
	require.Error(t, err)
}

func TestNewEngineInstantiatesModule(t *testing.T) {
	ctx := context.Background()
	e, err := NewEngine(ctx, emptyWasm)
	require.NoError(t, err)
	require.NoError(t, e.Close(ctx))
}

func TestRestoreRejectsOversizedImage(t *testing.T) {
	ctx := context.Background()
	e, err := NewEngine(ctx, emptyWasm)
	require.NoError(t, err)
	defer e.Close(ctx)

	image := bytes.Repeat([]byte{0x00}, maxImageSize+1)
	_, err = e.Restore(ctx, image, nil, func(ports.HostFunctionID) (ports.HostFunction, bool) {
		return nil, false
	})
	require.Error(t, err)
	assert.Equal(t, entities.StatusInvalidArguments, mverrors.StatusOf(err))
}

func TestResolveImportCallback(t *testing.T) {
	nop := func(ports.Instance, ports.HostFunctionID, *ports.Value, []ports.Value) entities.Status {
		return entities.StatusSuccess
	}
	e := &Engine{instances: make(map[uint32]*Instance)}

	// No restore in flight: every import is unresolved.
	stack := []uint64{1}
	e.resolveImport(context.Background(), nil, stack)
	assert.Equal(t, uint64(0), stack[0])

	state := &restoreState{
		resolve: func(id ports.HostFunctionID) (ports.HostFunction, bool) {
			if id == 1 {
				return nop, true
			}
			return nil, false
		},
		resolved: make(map[ports.HostFunctionID]ports.HostFunction),
	}
	e.pending = state

	stack = []uint64{1}
	e.resolveImport(context.Background(), nil, stack)
	assert.Equal(t, uint64(1), stack[0])
	assert.Contains(t, state.resolved, ports.HostFunctionID(1))
	assert.False(t, state.missing)

	// An unresolvable ID answers 0 and latches the failure, so the
	// restore is refused even if the engine build ignores the answer.
	stack = []uint64{9}
	e.resolveImport(context.Background(), nil, stack)
	assert.Equal(t, uint64(0), stack[0])
	assert.True(t, state.missing)
}

func TestRestoreRequiresEngineExports(t *testing.T) {
	ctx := context.Background()
	e, err := NewEngine(ctx, emptyWasm)
	require.NoError(t, err)
	defer e.Close(ctx)

	_, err = e.Restore(ctx, []byte{0x0c, 0x00}, nil, func(ports.HostFunctionID) (ports.HostFunction, bool) {
		return nil, false
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocate")
}
