// This file defines the Capability interface that all invocable
// implementations must satisfy, the generic builder that derives a JSON
// schema from a typed handler function, and the argument-parsing helpers
// shared with the invoker.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

// Capability represents one named, schema-described operation the language
// model may request be executed on its behalf. A Capability value carries
// both the advertised descriptor (name, description, input schema) and the
// bound implementation, so a registered name can never lack an
// implementation or vice versa.
type Capability interface {
	// GetName returns the unique name of the capability. This name is used
	// for lookup in the registry and must be unique within it.
	GetName() string

	// GetDescription provides a human-readable description of what the
	// capability does. The model uses it for relevance decisions.
	GetDescription() string

	// GetInputSchema returns the JSON schema for the arguments this
	// capability expects, including which parameters are required.
	GetInputSchema() *jsonschema.Schema

	// Execute runs the core logic of the capability with the provided raw
	// JSON arguments. Implementations should use the provided context for
	// cancellation support.
	Execute(ctx context.Context, args json.RawMessage) (interface{}, error)
}

// --- Capability Builder ---

// funcCapability adapts a strongly-typed handler function to the Capability
// interface. The input schema is derived from the handler's argument type A.
type funcCapability[A any] struct {
	name        string
	description string
	schema      *jsonschema.Schema
	handler     func(ctx context.Context, args A) (interface{}, error)
}

// NewCapability constructs a Capability from a name, a description, and a
// typed handler function. The JSON schema for the argument type A is derived
// automatically via reflection, respecting `jsonschema` struct tags.
//
// Example:
//
//	type EchoArgs struct {
//	    Text string `json:"text" jsonschema:"required,description=The text to echo."`
//	}
//	cap := agent.NewCapability("echo", "Echoes the given text.",
//	    func(ctx context.Context, args EchoArgs) (interface{}, error) {
//	        return args.Text, nil
//	    })
func NewCapability[A any](name, description string, handler func(ctx context.Context, args A) (interface{}, error)) Capability {
	return &funcCapability[A]{
		name:        name,
		description: description,
		schema:      GenerateSchema[A](),
		handler:     handler,
	}
}

func (c *funcCapability[A]) GetName() string {
	return c.name
}

func (c *funcCapability[A]) GetDescription() string {
	return c.description
}

func (c *funcCapability[A]) GetInputSchema() *jsonschema.Schema {
	return c.schema
}

// Execute unmarshals the raw arguments into the handler's typed argument
// struct and runs the handler. Malformed argument JSON yields an
// invalid_arguments error without invoking the handler.
func (c *funcCapability[A]) Execute(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var typedArgs A
	if err := unmarshalArguments(args, &typedArgs); err != nil {
		return nil, NewError(CodeInvalidArguments, fmt.Sprintf("capability %s: %v", c.name, err))
	}
	return c.handler(ctx, typedArgs)
}

// --- Argument Parsing ---

// unmarshalArguments decodes a model-supplied argument payload into v.
// Language models occasionally emit almost-JSON (single quotes, trailing
// commas, unquoted keys); when strict decoding fails the payload is repaired
// and decoded once more before giving up.
func unmarshalArguments(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	firstErr := json.Unmarshal(args, v)
	if firstErr == nil {
		return nil
	}
	repaired, err := jsonrepair.JSONRepair(string(args))
	if err != nil {
		return fmt.Errorf("error unmarshaling arguments: %w", firstErr)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("error unmarshaling repaired arguments: %w", err)
	}
	return nil
}

// --- Schema Generation Helper ---

// GenerateSchema creates a JSON schema representation for the provided
// generic type T. It uses reflection through the
// github.com/invopop/jsonschema library to generate a self-contained schema
// that can be provided to LLMs for tool use.
//
// The schema generation respects jsonschema tags on struct fields, including:
// - required: Whether the field is required
// - description: Field descriptions for documentation
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true, // Allow additional properties in the generated schema
		DoNotReference:             true, // Keep schema self-contained, no $refs
		RequiredFromJSONSchemaTags: true, // Respect `jsonschema:"required"` tags
	}
	var v T
	return reflector.Reflect(&v)
}
