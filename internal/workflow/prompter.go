package workflow

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// HuhPrompter implements Prompter with one standalone huh form per
// question and a huh spinner for the remote-call phases. Aborting a
// prompt (Esc or Ctrl+C) surfaces as ErrCancelled.
type HuhPrompter struct{}

func (HuhPrompter) Select(title, help string, options []string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Description(help).
				Options(huh.NewOptions(options...)...).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", mapAbort(err)
	}
	return value, nil
}

func (HuhPrompter) Input(title, help, placeholder string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(help).
				Placeholder(placeholder).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", mapAbort(err)
	}
	return value, nil
}

func (HuhPrompter) Text(title, help, placeholder string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description(help).
				Placeholder(placeholder).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", mapAbort(err)
	}
	return value, nil
}

func (HuhPrompter) Confirm(title, help string, def bool) (bool, error) {
	value := def
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(help).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return false, mapAbort(err)
	}
	return value, nil
}

func (HuhPrompter) Busy(title string, fn func() error) error {
	var err error
	runErr := spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if runErr != nil {
		return mapAbort(runErr)
	}
	return err
}

// mapAbort translates huh's user-abort into the workflow's
// cancellation error.
func mapAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}
