package flow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrDenied is returned when the user declines or fails verification.
var ErrDenied = errors.New("user verification denied")

// ErrUnavailable is returned when no verification method is available.
var ErrUnavailable = errors.New("user verification not available")

// TerminalFlow asks the user to confirm on a terminal, standing in for a
// device biometric prompt in command line use.
type TerminalFlow struct {
	In  io.Reader
	Out io.Writer
}

func (s *TerminalFlow) Available(ctx context.Context) bool {
	return s.In != nil && s.Out != nil
}

func (s *TerminalFlow) Authenticate(ctx context.Context, prompt string) error {
	if !s.Available(ctx) {
		return ErrUnavailable
	}
	if _, err := fmt.Fprintf(s.Out, "%v [y/N]: ", prompt); err != nil {
		return err
	}
	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(s.In).ReadString('\n')
		answer <- strings.ToLower(strings.TrimSpace(line))
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case value := <-answer:
		if value == "y" || value == "yes" {
			return nil
		}
		return ErrDenied
	}
}

func NewTerminalFlow(in io.Reader, out io.Writer) *TerminalFlow {
	return &TerminalFlow{In: in, Out: out}
}
