package credentials

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

const (
	userIDPrompt   = "Enter your Habitica user ID: "
	apiTokenPrompt = "Enter your Habitica API token: "
)

// PromptSource asks for the user ID and then the API token, one line each.
// The token is read without echo when input is a terminal.
type PromptSource struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal file descriptor, -1 if input is not a terminal
}

// NewPromptSource reads answers from in and writes prompts to out.
func NewPromptSource(in io.Reader, out io.Writer) *PromptSource {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = io.Discard
	}
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &PromptSource{in: bufio.NewReader(in), out: out, fd: fd}
}

// Reader returns the buffered input the prompts read from, so later reads
// from the same input see anything typed ahead.
func (p *PromptSource) Reader() *bufio.Reader {
	return p.in
}

// Credentials prompts twice. An empty answer is a *MissingError.
func (p *PromptSource) Credentials(ctx context.Context) (Credentials, error) {
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}
	fmt.Fprint(p.out, userIDPrompt)
	userID, err := p.readLine()
	if err != nil {
		return Credentials{}, err
	}

	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}
	fmt.Fprint(p.out, apiTokenPrompt)
	token, err := p.readSecret()
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{UserID: userID, APIToken: token}
	if err := creds.check(Prompt, ""); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (p *PromptSource) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads the token without echo. Input already buffered, such as a
// pasted pair of lines, is read from the buffer instead of the terminal.
func (p *PromptSource) readSecret() (string, error) {
	if p.fd < 0 || p.in.Buffered() > 0 {
		return p.readLine()
	}
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
