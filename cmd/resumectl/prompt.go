package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"resume-generator/resume/templates"
)

var errNoTemplate = errors.New("--template is required when stdin is not a terminal")

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// chooseTemplate returns flagValue when set, otherwise asks the user to pick
// one of the registered variants.
func chooseTemplate(opts *rootOptions, registry *templates.Registry, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if opts.interactive == nil || !opts.interactive() {
		return "", errNoTemplate
	}

	infos := registry.List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	var picked string
	prompt := &survey.Select{
		Message: "Template:",
		Options: names,
		Default: string(templates.Classic),
		Description: func(value string, index int) string {
			return infos[index].Description
		},
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", fmt.Errorf("template selection canceled")
		}
		return "", err
	}
	return picked, nil
}
