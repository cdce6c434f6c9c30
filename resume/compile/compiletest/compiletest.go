// Package compiletest provides a fake TeX engine for tests. The test binary
// re-executes itself as the engine, so no TeX installation is needed.
//
// A test package using it must call RunIfEngine first thing in TestMain.
package compiletest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"resume-generator/resume/compile"
)

const modeEnv = "RESUME_FAKE_TEX_MODE"

// Engine behaviours.
const (
	// ModeOK writes a one page PDF listing every MARKER token in the source.
	// Like LaTeX it fails when a marker line carries an unescaped %.
	ModeOK = "ok"
	// ModeFail prints a LaTeX style error and exits 1.
	ModeFail = "fail"
	// ModeHang sleeps far past any test timeout.
	ModeHang = "hang"
	// ModeNoPDF exits 0 without writing output.
	ModeNoPDF = "nopdf"
	// ModeGarbage writes bytes that are not a PDF.
	ModeGarbage = "garbage"
	// ModeNeedsSupport behaves like ModeOK only when support.sty was staged.
	ModeNeedsSupport = "needs-support"
)

// UndefinedMacro makes ModeOK fail the way a broken skeleton does.
const UndefinedMacro = `\undefinedskeletonmacro`

var markerRE = regexp.MustCompile(`MARKER[A-Za-z0-9]+`)

// RunIfEngine turns the process into the fake engine when it was started as
// one. It never returns in that case.
func RunIfEngine() {
	mode := os.Getenv(modeEnv)
	if mode == "" {
		return
	}
	os.Exit(runEngine(mode, os.Args[len(os.Args)-1]))
}

// Compiler returns a compiler that runs the fake engine in mode, creating its
// working directories under the returned temp root.
func Compiler(t testing.TB, mode string, timeout time.Duration) (*compile.Compiler, string) {
	t.Helper()
	root := t.TempDir()
	return compile.New(compile.Options{
		Engine:  os.Args[0],
		Timeout: timeout,
		TempDir: root,
		Env:     []string{modeEnv + "=" + mode},
	}), root
}

// CompilerWithSupport is Compiler with a support file directory.
func CompilerWithSupport(t testing.TB, mode, supportDir string) (*compile.Compiler, string) {
	t.Helper()
	root := t.TempDir()
	return compile.New(compile.Options{
		Engine:     os.Args[0],
		Timeout:    10 * time.Second,
		TempDir:    root,
		SupportDir: supportDir,
		Env:        []string{modeEnv + "=" + mode},
	}), root
}

// AssertEmpty fails t when dir has any entries left.
func AssertEmpty(t testing.TB, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("working directories left behind in %s: %v", dir, names)
	}
}

func runEngine(mode, texFile string) int {
	switch mode {
	case ModeFail:
		fmt.Println("! Undefined control sequence.")
		fmt.Println("l.12 \\brokenmacro")
		return 1
	case ModeHang:
		time.Sleep(10 * time.Minute)
		return 0
	case ModeNoPDF:
		fmt.Println("Output written on nothing.")
		return 0
	case ModeGarbage:
		return writeOutput(texFile, []byte("this is not a pdf"))
	case ModeNeedsSupport:
		if _, err := os.Stat("support.sty"); err != nil {
			fmt.Println("! LaTeX Error: File `support.sty' not found.")
			return 1
		}
	}

	src, err := os.ReadFile(texFile)
	if err != nil {
		fmt.Println("! I can't find file", texFile)
		return 1
	}
	if bytes.Contains(src, []byte(UndefinedMacro)) {
		fmt.Println("! Undefined control sequence.")
		fmt.Println("l.1 " + UndefinedMacro)
		return 1
	}
	for _, line := range strings.Split(string(src), "\n") {
		if !markerRE.MatchString(line) {
			continue
		}
		for i := 0; i < len(line); i++ {
			if line[i] == '%' && (i == 0 || line[i-1] != '\\') {
				fmt.Println("! File ended while scanning use of \\item.")
				return 1
			}
		}
	}
	markers := markerRE.FindAllString(string(src), -1)
	return writeOutput(texFile, PDF(strings.Join(markers, " ")))
}

func writeOutput(texFile string, data []byte) int {
	name := strings.TrimSuffix(texFile, filepath.Ext(texFile)) + ".pdf"
	if err := os.WriteFile(name, data, 0o644); err != nil {
		fmt.Println("! cannot write output:", err)
		return 1
	}
	fmt.Println("Output written on " + name + ".")
	return 0
}

// PDF builds a minimal one page PDF showing text in Helvetica.
func PDF(text string) []byte {
	escaped := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(text)
	content := "BT /F1 12 Tf 72 720 Td (" + escaped + ") Tj ET"

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}
