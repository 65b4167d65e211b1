// This file defines the session loop: the top-level control flow that reads
// user goals, drives model turns, triggers dispatch when the model requests
// capabilities, and surfaces the final answer.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
)

// ModelClient is the request/response interface to the language-model
// service. Complete submits the ordered transcript together with an optional
// capability catalog and returns the model's decision: terminal text, or a
// non-empty batch of invocation requests — never both. A nil catalog offers
// no capabilities, so the model can only answer directly.
type ModelClient interface {
	Complete(ctx context.Context, messages []Message, catalog []Capability) (ModelDecision, error)
}

// The synthetic user instruction appended after a dispatch round so the
// model answers from the newly appended tool results.
const answerInstruction = "Answer my previous query based on the search results."

// SessionLoop drives one long-running conversational session. The loop owns
// the transcript and registry exclusively for the session's duration; both
// grow or stay read-only across turns, and no state crosses session
// boundaries.
type SessionLoop struct {
	model      ModelClient
	registry   *Registry
	dispatcher *Dispatcher
	transcript *Transcript
}

// NewSessionLoop creates a session loop with an empty transcript seeded with
// the given system prompt.
func NewSessionLoop(model ModelClient, registry *Registry, systemPrompt string) *SessionLoop {
	return &SessionLoop{
		model:      model,
		registry:   registry,
		dispatcher: NewDispatcher(NewInvoker(registry)),
		transcript: NewTranscript(Message{Role: RoleSystem, Content: systemPrompt}),
	}
}

// Transcript exposes the session's transcript, primarily for inspection.
func (s *SessionLoop) Transcript() *Transcript {
	return s.transcript
}

// RunTurn executes one full cycle from user input to a terminal answer,
// possibly including one dispatch round:
//
//  1. Append a user message combining the question and the candidate
//     resource reference.
//  2. Submit the transcript plus the capability catalog. A direct answer
//     ends the turn.
//  3. Otherwise append the assistant's decision message, dispatch the
//     requested invocations, append the synthetic answer instruction, and
//     resubmit the transcript without the catalog to obtain terminal text.
//
// Errors during model submission or dispatch end the current turn only; the
// transcript accumulated so far is preserved as-is, and the session loop
// resumes with the next input.
func (s *SessionLoop) RunTurn(ctx context.Context, site, question string) (string, error) {
	s.transcript.Append(Message{
		Role:    RoleUser,
		Content: question + " this site might be a helpful resource: " + site,
	})

	decision, err := s.model.Complete(ctx, s.transcript.Messages(), s.registry.Catalog())
	if err != nil {
		return "", err
	}

	switch d := decision.(type) {
	case Answer:
		s.transcript.Append(Message{Role: RoleAssistant, Content: d.Text})
		return d.Text, nil

	case Invocations:
		// Record the assistant's own decision before dispatching so every
		// tool message has a preceding assistant message requesting its
		// invocation identity.
		s.transcript.Append(Message{Role: RoleAssistant, Requests: d.Requests})
		if err := s.dispatcher.Dispatch(ctx, d.Requests, s.transcript); err != nil {
			return "", err
		}
		s.transcript.Append(Message{Role: RoleUser, Content: answerInstruction})

		// Catalog omitted: no further invocation should occur mid-answer.
		final, err := s.model.Complete(ctx, s.transcript.Messages(), nil)
		if err != nil {
			return "", err
		}
		answer, ok := final.(Answer)
		if !ok {
			return "", NewError(CodeModelService, "model requested invocations without being offered a capability catalog")
		}
		s.transcript.Append(Message{Role: RoleAssistant, Content: answer.Text})
		return answer.Text, nil

	default:
		return "", NewError(CodeModelService, fmt.Sprintf("unexpected model decision type %T", decision))
	}
}

// Run drives the interactive surface: two free-text prompts per turn (a
// candidate resource reference and a natural-language question) and one
// printed answer. Any error during a turn is printed and the loop continues
// with the next input; the loop ends cleanly when the input is exhausted.
func (s *SessionLoop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, "Enter a site to crawl: ")
		site, ok := readLine(scanner)
		if !ok {
			break
		}
		fmt.Fprint(out, "Enter a question: ")
		question, ok := readLine(scanner)
		if !ok {
			break
		}

		answer, err := s.RunTurn(ctx, site, question)
		if err != nil {
			log.Printf("Session turn failed: %v", err)
			fmt.Fprintf(out, "An error occurred: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "\n%s\n\n", answer)
	}
	return scanner.Err()
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}
