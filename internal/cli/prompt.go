package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrNoTerminal is returned when a prompt is needed but stdin is not a terminal.
var ErrNoTerminal = errors.New("input required but stdin is not a terminal")

// Prompter asks the user for input.
type Prompter interface {
	Input(title string) (string, error)
	Secret(title string) (string, error)
	Confirm(title string) (bool, error)
}

// HuhPrompter renders prompts with huh forms.
type HuhPrompter struct{}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (HuhPrompter) ask(title string, mode huh.EchoMode) (string, error) {
	if !interactive() {
		return "", ErrNoTerminal
	}
	var value string
	err := huh.NewInput().
		Title(title).
		EchoMode(mode).
		Value(&value).
		Run()
	return value, err
}

func (p HuhPrompter) Input(title string) (string, error) {
	return p.ask(title, huh.EchoModeNormal)
}

func (p HuhPrompter) Secret(title string) (string, error) {
	return p.ask(title, huh.EchoModePassword)
}

func (HuhPrompter) Confirm(title string) (bool, error) {
	if !interactive() {
		return false, ErrNoTerminal
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}
