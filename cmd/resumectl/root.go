package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"resume-generator/resume/model"
)

// options shared by every subcommand.
type rootOptions struct {
	stdin  io.Reader
	stdout io.Writer
	// interactive reports whether prompts may be shown.
	interactive func() bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		interactive: stdinIsTerminal,
	}
	return newRootCmdWith(opts)
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Render and manage LaTeX resumes",
		Long:          "resumectl renders resume records to LaTeX source or PDF and moves records in and out of the configured store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(opts.stdin)
	root.SetOut(opts.stdout)

	root.AddCommand(
		newRenderCmd(opts),
		newTemplatesCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
	)
	return root
}

// readRecord decodes a record file. .json goes through encoding/json so the
// legacy key aliases apply; everything else is read as YAML. "-" reads stdin.
func readRecord(path string, stdin io.Reader) (model.ResumeRecord, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.ResumeRecord{}, fmt.Errorf("read %s: %w", path, err)
	}

	var rec model.ResumeRecord
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &rec)
	} else {
		err = yaml.Unmarshal(data, &rec)
	}
	if err != nil {
		return model.ResumeRecord{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return rec, nil
}

func splitKeywords(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, kw := range strings.Split(item, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				out = append(out, kw)
			}
		}
	}
	return out
}
