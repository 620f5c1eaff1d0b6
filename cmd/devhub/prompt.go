package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"devhub/internal/signup"

	"golang.org/x/term"
)

type prompter struct {
	r *bufio.Reader
	w io.Writer
	// secret reads a line without echo. Nil unless r is a terminal.
	secret func() (string, error)
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	p := &prompter{r: bufio.NewReader(r), w: w}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.secret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(p.w)
			return string(b), err
		}
	}
	return p
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", label)
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askSecret is ask without echo. Piped input falls back to the line reader.
func (p *prompter) askSecret(label string) (string, error) {
	if p.secret == nil {
		return p.ask(label)
	}
	fmt.Fprintf(p.w, "%s: ", label)
	v, err := p.secret()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

// fields prompts for every field of a step. Blank answers are left out.
func (p *prompter) fields(fields []signup.Field) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		label := f.Label
		if len(f.Options) > 0 {
			label += " [" + strings.Join(f.Options, "/") + "]"
		}
		if f.Required {
			label += " *"
		}

		read := p.ask
		if f.Kind == signup.KindPassword {
			read = p.askSecret
		}
		v, err := read(label)
		if err != nil {
			return nil, err
		}
		if v != "" {
			values[f.Key] = v
		}
	}
	return values, nil
}
