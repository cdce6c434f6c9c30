package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"resume-generator/internal/shared/util"
	"resume-generator/resume/compile"
	"resume-generator/resume/service"
	"resume-generator/resume/templates"
)

type renderOptions struct {
	template   string
	order      string
	out        string
	keywords   []string
	sourceOnly bool
	engine     string
	timeout    time.Duration
	supportDir string
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a record file to PDF or LaTeX source",
		Long:  "Reads a YAML or JSON resume record (\"-\" for stdin) and writes the compiled PDF, or the LaTeX source with --source.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runRender(ctx, cmd, root, o, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.template, "template", "t", "", "template variant (classic, moderncv, alternate)")
	f.StringVar(&o.order, "order", "", "section order: a permutation of p, w and e (required)")
	f.StringVarP(&o.out, "out", "o", "", "output path (default <name>-<template>-<order>.pdf|.tex)")
	f.StringSliceVarP(&o.keywords, "keyword", "k", nil, "extra keywords to set in bold (repeatable or comma separated)")
	f.BoolVar(&o.sourceOnly, "source", false, "write LaTeX source instead of compiling")
	f.StringVar(&o.engine, "engine", os.Getenv("LATEX_ENGINE"), "TeX executable overriding the template's engine")
	f.DurationVar(&o.timeout, "timeout", compile.DefaultTimeout, "compile timeout")
	f.StringVar(&o.supportDir, "support-dir", os.Getenv("LATEX_SUPPORT_DIR"), "directory holding per-template support files")
	_ = cmd.MarkFlagRequired("order")
	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, root *rootOptions, o *renderOptions, path string) error {
	rec, err := readRecord(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	registry := templates.Default()
	variant, err := chooseTemplate(root, registry, o.template)
	if err != nil {
		return err
	}
	keywords := splitKeywords(o.keywords)

	var (
		data []byte
		ext  string
		tmpl templates.Template
	)
	if o.sourceOnly {
		pipeline := service.NewPipeline(registry, nil)
		tmpl, _, err = pipeline.Prepare(variant, o.order)
		if err != nil {
			return err
		}
		src, err := pipeline.GetSource(rec, variant, o.order, keywords...)
		if err != nil {
			return err
		}
		data, ext = []byte(src), ".tex"
	} else {
		compiler := compile.New(compile.Options{
			Engine:     o.engine,
			Timeout:    o.timeout,
			SupportDir: o.supportDir,
		})
		pipeline := service.NewPipeline(registry, compiler)
		doc, err := pipeline.GetDocument(ctx, rec, variant, o.order, keywords...)
		if err != nil {
			return err
		}
		tmpl, _ = registry.Get(doc.Variant)
		data, ext = doc.PDF, ".pdf"
		fmt.Fprintf(cmd.ErrOrStderr(), "compiled %d page(s) in %s\n", doc.Pages, doc.Elapsed.Round(time.Millisecond))
	}

	out := o.out
	if out == "" {
		name := rec.Name
		if strings.TrimSpace(name) == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		base, err := util.SanitizeFileName(fmt.Sprintf("%s-%s-%s", name, tmpl.Variant(), strings.ToLower(o.order)))
		if err != nil {
			return fmt.Errorf("derive output name: %w", err)
		}
		out = base + ext
	}
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := atomic.WriteFile(out, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}
