// Package snake prompts for command input on the terminal.
package snake

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} : ",
	Valid:   "{{ . | green }} : ",
	Invalid: "{{ . | red }} : ",
	Success: "{{ . | bold }} : ",
}

// Prompter asks questions on In and echoes to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// String asks for a line of text. def is used when the answer is empty.
func (p *Prompter) String(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(p.In),
		Stdout:    nopCloser{p.Out},
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// Confirm asks a yes/no question; anything but yes is no.
func (p *Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     io.NopCloser(p.In),
		Stdout:    nopCloser{p.Out},
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, err
	}
}

// NotBlank rejects empty answers.
func NotBlank(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("empty")
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
