// Package docs holds the long-form explanation of every visualizer and
// renders it for the terminal.
package docs

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

//go:embed content/*.md
var content embed.FS

var ErrNotFound = errors.New("docs: no explanation")

const defaultWidth = 80

// Names lists every visualizer with an explanation.
func Names() []string {
	entries, _ := fs.ReadDir(content, "content")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Markdown returns the raw explanation.
func Markdown(name string) (string, error) {
	b, err := content.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("%w for %q", ErrNotFound, name)
	}
	return string(b), nil
}

// Render formats the explanation for a terminal width columns wide,
// picking a light or dark style from the terminal background.
func Render(name string, width int) (string, error) {
	md, err := Markdown(name)
	if err != nil {
		return "", err
	}
	if width <= 0 {
		width = defaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("docs: renderer: %w", err)
	}
	return r.Render(md)
}

var bannerLines = []struct {
	text, color string
}{
	{"       _ _       _     ", "#818cf8"},
	{"  __ _| | |_   _(_)___ ", "#a78bfa"},
	{" / _` | | \\ \\ / / / __|", "#c084fc"},
	{"| (_| | | |\\ V /| \\__ \\", "#e879f9"},
	{" \\__,_|_|_| \\_/ |_|___/", "#f472b6"},
}

// Banner writes the colored title using whatever palette the terminal
// supports.
func Banner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  algorithms and physics, step by step").Faint())
	fmt.Fprintln(w)
}
