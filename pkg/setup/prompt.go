package setup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInputClosed is returned when input ends before a question is answered.
var ErrInputClosed = errors.New("input closed before all questions were answered")

// Prompter asks the operator questions. Both methods block until a line is
// entered or ctx is done.
type Prompter interface {
	Ask(ctx context.Context, prompt string) (string, error)
	// AskSecret is like Ask but does not echo the answer when possible.
	AskSecret(ctx context.Context, prompt string) (string, error)
}

// LinePrompter reads newline-terminated answers. When in is a terminal,
// secrets are read with echo disabled.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// NewLinePrompter returns a prompter reading answers from in and writing
// questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	p := &LinePrompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Ask prints prompt and returns the trimmed answer.
func (p *LinePrompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.await(ctx, p.readLine)
}

// AskSecret prints prompt and reads the answer without echo on a terminal.
func (p *LinePrompter) AskSecret(ctx context.Context, prompt string) (string, error) {
	if !p.tty {
		return p.Ask(ctx, prompt)
	}

	state, err := term.GetState(p.fd)
	if err != nil {
		return "", fmt.Errorf("failed to read terminal state: %w", err)
	}

	fmt.Fprint(p.out, prompt)
	answer, err := p.await(ctx, func() (string, error) {
		b, err := term.ReadPassword(p.fd)
		return strings.TrimSpace(string(b)), err
	})
	fmt.Fprintln(p.out)

	if ctx.Err() != nil {
		// ReadPassword is still blocked and will not restore echo itself
		_ = term.Restore(p.fd, state)
	}
	return answer, err
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// await runs read in the background so a cancelled context unblocks the
// caller even while the read is still waiting on the terminal.
func (p *LinePrompter) await(ctx context.Context, read func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		answer string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		answer, err := read()
		done <- result{answer, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.answer, r.err
	}
}

// confirmed reports whether answer accepts a yes/no question.
func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
