package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/internal/core/services"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

// systemClipboard writes through to the OS clipboard
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// clipboardWriter is swapped out in tests
var clipboardWriter ports.ClipboardWriter = systemClipboard{}

// copyToClipboard copies text and reports the outcome without failing the command
func copyToClipboard(out io.Writer, text string) {
	if err := clipboardWriter.WriteAll(text); err != nil {
		fmt.Fprintln(out, ui.FormatMuted("(Clipboard access failed)"))
		return
	}
	fmt.Fprintln(out, ui.FormatSuccess("Copied to clipboard"))
}

// shouldCopy reports whether --copy or the config asks for clipboard output
func shouldCopy(flag bool) bool {
	return flag || (appConfig != nil && appConfig.CopyToClipboard)
}

// GetPreferredEditor returns the editor command from config, env, or default
func GetPreferredEditor() string {
	// 1. Check Config
	if appConfig != nil && appConfig.Editor != "" {
		return appConfig.Editor
	}
	// 2. Check Environment
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	// 3. Fallback
	return "vi"
}

// openInEditor runs the preferred editor attached to the terminal
func openInEditor(path string) error {
	c := exec.Command(GetPreferredEditor(), path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeJSON pretty-prints v, highlighted when writing to a terminal
func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	text := string(data) + "\n"
	if isTerminal(out) {
		text = highlightJSON(text)
	}
	_, err = io.WriteString(out, text)
	return err
}

// highlightJSON applies syntax highlighting to JSON output
func highlightJSON(content string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}
	if err := formatters.TTY16m.Format(&buf, style, iterator); err != nil {
		return content
	}
	return buf.String()
}

// readScanSources loads JSON documents; directories contribute their *.json files
func readScanSources(paths []string) ([]services.Source, error) {
	files, err := expandScanPaths(paths)
	if err != nil {
		return nil, err
	}

	sources := make([]services.Source, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources = append(sources, services.Source{Name: path, Data: data})
	}
	return sources, nil
}

func expandScanPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(p, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
