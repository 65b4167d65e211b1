// This file defines the capability invoker: shape-checks an argument payload
// against the resolved capability's schema, executes the implementation, and
// converts every implementation failure into a failure outcome instead of
// letting it abort the session.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Invoker executes one capability by name with a parsed argument set.
type Invoker struct {
	registry *Registry
}

// NewInvoker creates an invoker resolving names through the given registry.
func NewInvoker(registry *Registry) *Invoker {
	return &Invoker{registry: registry}
}

// Invoke resolves and executes the capability named in the request.
//
// An unknown capability name is returned as an error: the model is only ever
// offered registered names, so this is a protocol violation that ends the
// turn. Every other failure — a missing required parameter, or any error
// raised by the implementation — is absorbed into the returned
// InvocationResult as a failure outcome and never propagates out of Invoke.
func (iv *Invoker) Invoke(ctx context.Context, request InvocationRequest) (InvocationResult, error) {
	capability, err := iv.registry.Resolve(request.Name)
	if err != nil {
		return InvocationResult{}, err
	}

	// Shape check: every parameter the schema marks required must be present
	// in the payload before the implementation is contacted.
	if err := checkRequiredArguments(capability, request.Arguments); err != nil {
		log.Printf("Invoke %s: rejected arguments: %v", request.Name, err)
		return failureResult(request.ID, err), nil
	}

	output, err := capability.Execute(ctx, request.Arguments)
	if err != nil {
		log.Printf("Invoke %s: execution failed: %v", request.Name, err)
		if ErrorCode(err) == "" {
			err = NewError(CodeInvocationFailed, err.Error())
		}
		return failureResult(request.ID, err), nil
	}

	content, err := json.Marshal(output)
	if err != nil {
		log.Printf("Invoke %s: failed to marshal output: %v", request.Name, err)
		return failureResult(request.ID, NewError(CodeInvocationFailed, err.Error())), nil
	}

	return InvocationResult{ID: request.ID, Content: string(content)}, nil
}

// checkRequiredArguments verifies that the payload is a JSON object carrying
// every parameter listed as required by the capability's input schema.
func checkRequiredArguments(capability Capability, args json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := unmarshalArguments(args, &fields); err != nil {
		return NewError(CodeInvalidArguments, err.Error())
	}

	schema := capability.GetInputSchema()
	if schema == nil {
		return nil
	}
	for _, name := range schema.Required {
		if _, present := fields[name]; !present {
			return NewError(CodeInvalidArguments, fmt.Sprintf("missing required parameter '%s'", name))
		}
	}
	return nil
}

// failureResult serializes err as the textual outcome of a failed invocation.
func failureResult(id string, err error) InvocationResult {
	content, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		content = []byte(fmt.Sprintf(`{"Code":%q,"Message":%q}`, CodeInvocationFailed, err.Error()))
	}
	return InvocationResult{ID: id, Content: string(content), Failed: true}
}
