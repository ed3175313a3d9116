package cmd

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// confirm asks a yes/no question. An empty answer takes the default;
// "n" and Ctrl-C both come back as false.
func confirm(label string, defaultYes bool) (bool, error) {
	def := "n"
	if defaultYes {
		def = "y"
	}

	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Default:   def,
	}

	_, err := p.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt):
		return false, nil
	default:
		return false, err
	}
}
