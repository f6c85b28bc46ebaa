package console

import (
	survey "github.com/AlecAivazis/survey/v2"
)

// Prompt asks yes/no questions on the terminal.
type Prompt struct {
	opts []survey.AskOpt
}

func NewPrompt(opts ...survey.AskOpt) *Prompt { return &Prompt{opts: opts} }

func (p *Prompt) Confirm(msg string, def bool) (bool, error) {
	ok := def
	if err := survey.AskOne(&survey.Confirm{Message: msg, Default: def}, &ok, p.opts...); err != nil {
		return false, err
	}
	return ok, nil
}
