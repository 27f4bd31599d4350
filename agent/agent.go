// Package agent runs a Gemini powered assistant discussing a capital growth
// analysis.
//
// A facilitator chats with the user and delegates questions to experts, each
// expert being a separate chat that may call local functions.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes a markdown answer, defaults to writing it as is.
	Print func(w io.Writer, markdown string)
}

// New creates a new Agent talking on w and listening on r.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
		Print:       func(w io.Writer, md string) { fmt.Fprintln(w, md) },
	}
}

// Start creates all the chats.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the interactive session. prompts are sent first, as if the user
// typed them.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to cgr assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		input, err := a.next(&prompts)
		if err == io.EOF {
			return nil // Ctrl+D
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, genai.NewPartFromText(input))
		if err != nil {
			return err
		}
		a.Print(a.w, text(content))
	}
}

// next returns the next pending prompt, or reads one from the user.
func (a *Agent) next(prompts *[]string) (string, error) {
	if len(*prompts) > 0 {
		input := strings.TrimSpace((*prompts)[0])
		*prompts = (*prompts)[1:]
		if input != "" {
			fmt.Fprintln(a.w, input)
		}
		return input, nil
	}
	input, err := a.r.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// text concatenates the text parts of c.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
