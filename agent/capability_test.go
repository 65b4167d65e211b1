package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hamzaessahbaoui/crawl-agent/agent"
)

// --- Test Structs ---

type SimpleArgs struct {
	Input string `json:"input" jsonschema:"required"`
}

type SimpleResponse struct {
	Output string `json:"output"`
}

// --- TestNewCapability ---

func TestNewCapability_Metadata(t *testing.T) {
	name := "test_capability"
	desc := "A test capability description"
	handler := func(ctx context.Context, args SimpleArgs) (interface{}, error) {
		return SimpleResponse{Output: "success:" + args.Input}, nil
	}

	capability := agent.NewCapability(name, desc, handler)

	if capability.GetName() != name {
		t.Errorf("Expected name '%s', got '%s'", name, capability.GetName())
	}
	if capability.GetDescription() != desc {
		t.Errorf("Expected description '%s', got '%s'", desc, capability.GetDescription())
	}

	schema := capability.GetInputSchema()
	assert.NotNil(t, schema)
	assert.Contains(t, schema.Required, "input")
}

func TestNewCapability_Execute_Success(t *testing.T) {
	handler := func(ctx context.Context, args SimpleArgs) (interface{}, error) {
		return SimpleResponse{Output: "success:" + args.Input}, nil
	}
	capability := agent.NewCapability("test_capability_success", "desc", handler)

	result, err := capability.Execute(context.Background(), json.RawMessage(`{"input":"test_input"}`))
	if err != nil {
		t.Fatalf("Execute failed unexpectedly: %v", err)
	}

	resp, ok := result.(SimpleResponse)
	if !ok {
		t.Fatalf("Expected result type SimpleResponse, got %T", result)
	}
	if resp.Output != "success:test_input" {
		t.Errorf("Expected output 'success:test_input', got '%s'", resp.Output)
	}
}

func TestNewCapability_Execute_HandlerError(t *testing.T) {
	expectedError := errors.New("handler failed")
	handler := func(ctx context.Context, args SimpleArgs) (interface{}, error) {
		return nil, expectedError
	}
	capability := agent.NewCapability("test_capability_handler_err", "desc", handler)

	_, err := capability.Execute(context.Background(), json.RawMessage(`{"input":"test"}`))
	if !errors.Is(err, expectedError) {
		t.Fatalf("Expected handler error to pass through, got %v", err)
	}
}

func TestNewCapability_Execute_RepairsAlmostJSON(t *testing.T) {
	// Models occasionally emit single-quoted or unquoted payloads; the
	// builder repairs them instead of rejecting the invocation.
	handler := func(ctx context.Context, args SimpleArgs) (interface{}, error) {
		return SimpleResponse{Output: args.Input}, nil
	}
	capability := agent.NewCapability("test_capability_repair", "desc", handler)

	result, err := capability.Execute(context.Background(), json.RawMessage(`{input: 'fixed'}`))
	if err != nil {
		t.Fatalf("Execute failed on repairable JSON: %v", err)
	}
	assert.Equal(t, SimpleResponse{Output: "fixed"}, result)
}

func TestNewCapability_Execute_UnmarshalError(t *testing.T) {
	handler := func(ctx context.Context, args SimpleArgs) (interface{}, error) {
		t.Fatal("Handler called unexpectedly on unmarshal error")
		return nil, nil
	}
	capability := agent.NewCapability("test_capability_unmarshal_err", "desc", handler)

	_, err := capability.Execute(context.Background(), json.RawMessage(`[1,2,3]`))
	if err == nil {
		t.Fatal("Expected an error from Execute, got nil")
	}
	if agent.ErrorCode(err) != agent.CodeInvalidArguments {
		t.Errorf("Expected error code '%s', got '%s'", agent.CodeInvalidArguments, agent.ErrorCode(err))
	}
}
