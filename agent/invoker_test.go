package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/crawl-agent/agent"
)

type fetchArgs struct {
	Site string `json:"site" jsonschema:"required,description=The url to crawl."`
}

func TestInvoker_Invoke_Success(t *testing.T) {
	capability := agent.NewCapability("fetch", "desc", func(ctx context.Context, args fetchArgs) (interface{}, error) {
		return map[string]int{"pages": 3}, nil
	})
	registry, err := agent.NewRegistry(capability)
	require.NoError(t, err)

	invoker := agent.NewInvoker(registry)
	result, err := invoker.Invoke(context.Background(), agent.InvocationRequest{
		ID:        "call_1",
		Name:      "fetch",
		Arguments: json.RawMessage(`{"site":"example.com"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "call_1", result.ID)
	assert.False(t, result.Failed)
	assert.JSONEq(t, `{"pages":3}`, result.Content)
}

func TestInvoker_Invoke_MissingRequiredParameter(t *testing.T) {
	calls := 0
	capability := agent.NewCapability("fetch", "desc", func(ctx context.Context, args fetchArgs) (interface{}, error) {
		calls++
		return nil, nil
	})
	registry, err := agent.NewRegistry(capability)
	require.NoError(t, err)

	invoker := agent.NewInvoker(registry)
	result, err := invoker.Invoke(context.Background(), agent.InvocationRequest{
		ID:        "call_2",
		Name:      "fetch",
		Arguments: json.RawMessage(`{}`),
	})

	// A shape failure is an outcome, not an error, and the implementation
	// is never contacted.
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, 0, calls)
	if !strings.Contains(result.Content, agent.CodeInvalidArguments) {
		t.Errorf("Expected failure content to carry code '%s', got: %s", agent.CodeInvalidArguments, result.Content)
	}
	if !strings.Contains(result.Content, "site") {
		t.Errorf("Expected failure content to name the missing parameter, got: %s", result.Content)
	}
}

func TestInvoker_Invoke_ImplementationFailure(t *testing.T) {
	capability := agent.NewCapability("fetch", "desc", func(ctx context.Context, args fetchArgs) (interface{}, error) {
		return nil, errors.New("connection refused")
	})
	registry, err := agent.NewRegistry(capability)
	require.NoError(t, err)

	invoker := agent.NewInvoker(registry)
	result, err := invoker.Invoke(context.Background(), agent.InvocationRequest{
		ID:        "call_3",
		Name:      "fetch",
		Arguments: json.RawMessage(`{"site":"example.com"}`),
	})

	// External failures are absorbed into the result, never propagated.
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, "call_3", result.ID)
	assert.Contains(t, result.Content, "connection refused")
	assert.Contains(t, result.Content, agent.CodeInvocationFailed)
}

func TestInvoker_Invoke_UnknownCapability(t *testing.T) {
	registry, err := agent.NewRegistry()
	require.NoError(t, err)

	invoker := agent.NewInvoker(registry)
	_, err = invoker.Invoke(context.Background(), agent.InvocationRequest{
		ID:        "call_4",
		Name:      "ghost",
		Arguments: json.RawMessage(`{}`),
	})
	if agent.ErrorCode(err) != agent.CodeUnknownCapability {
		t.Fatalf("Expected error code '%s', got %v", agent.CodeUnknownCapability, err)
	}
}
