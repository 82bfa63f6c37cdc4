package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const defaultStyleName = "catppuccin-mocha"

// Highlighter colors source lines with chroma
type Highlighter struct {
	style *chroma.Style
	base  chroma.Colour
}

// NewHighlighter creates a highlighter for a chroma style name. Unknown
// names fall back to the default style.
func NewHighlighter(name string) *Highlighter {
	if name == "" {
		name = defaultStyleName
	}
	style := styles.Get(name)
	return &Highlighter{
		style: style,
		base:  style.Get(chroma.Text).Colour,
	}
}

// Lines highlights a block of lines from the named file. The block is
// tokenised as a whole so the lexer keeps multi-line context. The result has
// one entry per input line.
func (h *Highlighter) Lines(filename string, lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	if len(lines) == 0 {
		return out
	}

	text := strings.Join(lines, "\n") + "\n"
	lexer := chroma.Coalesce(lexerFor(filename, text))
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return out
	}

	rendered := make([]strings.Builder, len(lines))
	line := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		style := h.render(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				line++
			}
			if line >= len(lines) {
				break
			}
			if part != "" {
				rendered[line].WriteString(style.Render(part))
			}
		}
	}

	for i := range rendered {
		out[i] = rendered[i].String()
	}
	return out
}

// render maps a token type to a lipgloss style
func (h *Highlighter) render(tt chroma.TokenType) lipgloss.Style {
	entry := h.style.Get(tt)
	style := lipgloss.NewStyle()
	if entry.Colour.IsSet() && entry.Colour != h.base {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}

// lexerFor matches a lexer by file name, then by content
func lexerFor(filename, text string) chroma.Lexer {
	if filename != "" {
		if l := lexers.Match(filename); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}
