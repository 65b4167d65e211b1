// Package agent implements the tool-call dispatch and conversation-state loop
// that lets a language model delegate bounded capabilities (web crawling, page
// fetching) to external implementations and fold their results back into the
// conversation context.
// This file defines the data structures used for messages, invocations,
// model decisions, and errors within the agent framework.
package agent

import (
	"encoding/json"
	"fmt"
)

// --- Transcript Messages ---

// Role identifies the author of a transcript message.
type Role string

// The four message roles replayed to the language model on every turn.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry in the conversation transcript. Every message carries
// textual content; tool messages additionally carry the invocation identity
// they answer (ToolCallID), and assistant decision messages record the
// invocations they requested (Requests) so the transcript can be replayed
// verbatim to the model on later turns.
type Message struct {
	Role       Role                `json:"role"`
	Content    string              `json:"content"`
	ToolCallID string              `json:"tool_call_id,omitempty"`
	Requests   []InvocationRequest `json:"requests,omitempty"`
}

// --- Invocations ---

// InvocationRequest is one concrete request by the model to run a capability
// with specific arguments. The ID is the model-assigned identity used to
// correlate the eventual result back to this request. It exists only within
// a single dispatch cycle.
type InvocationRequest struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// InvocationResult is the outcome of executing one InvocationRequest.
// Content is the textual serialization of either the success payload or a
// failure description (a marshaled AgentError). Failed distinguishes the two.
type InvocationResult struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Failed  bool   `json:"failed,omitempty"`
}

// --- Model Decisions ---

// ModelDecision is the outcome of one model submission: either terminal text
// or a non-empty batch of invocation requests, never both. The two cases are
// deliberately separate types so that the mutually-exclusive protocol states
// cannot be conflated.
type ModelDecision interface {
	isModelDecision()
}

// Answer is the terminal-text case of a ModelDecision.
type Answer struct {
	Text string
}

// Invocations is the tool-call case of a ModelDecision. Requests preserves
// the order in which the model emitted them.
type Invocations struct {
	Requests []InvocationRequest
}

func (Answer) isModelDecision()      {}
func (Invocations) isModelDecision() {}

// --- Error Handling ---

// Error codes used across the agent framework.
const (
	CodeMissingConfiguration = "missing_configuration"
	CodeDuplicateCapability  = "duplicate_capability"
	CodeUnknownCapability    = "unknown_capability"
	CodeInvalidArguments     = "invalid_arguments"
	CodeInvocationFailed     = "invocation_failed"
	CodeModelService         = "model_service_error"
)

// AgentError provides a standardized structure for errors occurring within
// the agent framework. It encapsulates both a machine-readable error code for
// programmatic handling and a human-readable message for debugging and user
// feedback.
type AgentError struct {
	Code    string `json:"Code"`    // A machine-readable error code (e.g., "unknown_capability")
	Message string `json:"Message"` // A human-readable description of the error
}

// Error implements the standard error interface for AgentError.
func (e AgentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new AgentError with the specified code and message.
// This is the preferred way to create and return errors from framework
// components to ensure consistent error handling.
func NewError(code, message string) error {
	return AgentError{
		Code:    code,
		Message: message,
	}
}

// ErrorCode extracts the machine-readable code from err, or "" if err is not
// an AgentError.
func ErrorCode(err error) string {
	if agentErr, ok := err.(AgentError); ok {
		return agentErr.Code
	}
	return ""
}
