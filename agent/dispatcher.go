// This file defines the tool-call dispatcher: executes a batch of
// invocation requests sequentially and records each outcome as a tool
// message in the transcript.
package agent

import (
	"context"
	"log"
)

// Dispatcher executes the invocation batches emitted by the model and merges
// their outcomes back into the conversation transcript.
type Dispatcher struct {
	invoker *Invoker
}

// NewDispatcher creates a dispatcher executing through the given invoker.
func NewDispatcher(invoker *Invoker) *Dispatcher {
	return &Dispatcher{invoker: invoker}
}

// Dispatch invokes each request in the order received and appends one tool
// message per invocation to the transcript, carrying the textual outcome and
// the originating invocation identity so the model can correlate results to
// requests.
//
// Processing is strictly sequential and order-preserving: result messages
// are appended in request order. A failed invocation does not abort the
// remaining requests in the batch — each request independently yields either
// a success or a failure tool message. The one exception is an unregistered
// capability name, which is a protocol violation and aborts the turn.
func (d *Dispatcher) Dispatch(ctx context.Context, requests []InvocationRequest, transcript *Transcript) error {
	for _, request := range requests {
		result, err := d.invoker.Invoke(ctx, request)
		if err != nil {
			return err
		}
		log.Printf("Dispatch: %s (%s) -> failed=%v", request.Name, request.ID, result.Failed)
		transcript.Append(Message{
			Role:       RoleTool,
			Content:    result.Content,
			ToolCallID: result.ID,
		})
	}
	return nil
}
