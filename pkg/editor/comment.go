package editor

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// DefaultCommentToken is the token checkpoint texts are written with
const DefaultCommentToken = "//"

var lineComments = map[string]string{
	"Go":          "//",
	"C":           "//",
	"C++":         "//",
	"C#":          "//",
	"Java":        "//",
	"JavaScript":  "//",
	"TypeScript":  "//",
	"TSX":         "//",
	"Rust":        "//",
	"Swift":       "//",
	"Kotlin":      "//",
	"Scala":       "//",
	"Dart":        "//",
	"PHP":         "//",
	"Python":      "#",
	"Ruby":        "#",
	"Shell":       "#",
	"Perl":        "#",
	"R":           "#",
	"YAML":        "#",
	"TOML":        "#",
	"Dockerfile":  "#",
	"Makefile":    "#",
	"Elixir":      "#",
	"Nix":         "#",
	"PowerShell":  "#",
	"SQL":         "--",
	"PLpgSQL":     "--",
	"PLSQL":       "--",
	"TSQL":        "--",
	"Lua":         "--",
	"Haskell":     "--",
	"Elm":         "--",
	"Ada":         "--",
	"Erlang":      "%",
	"TeX":         "%",
	"MATLAB":      "%",
	"Clojure":     ";",
	"Common Lisp": ";",
	"Emacs Lisp":  ";",
	"Scheme":      ";",
	"Vim Script":  "\"",
	"Fortran":     "!",
}

// Language detects the language of a document from its name and content
func Language(name string, content []byte) string {
	return enry.GetLanguage(name, content)
}

// CommentToken returns the line-comment token for a document, or the empty
// string when its language has none or is unknown.
func CommentToken(name string, content []byte) string {
	return lineComments[Language(name, content)]
}

// AdaptComment rewrites a leading "//" in text to token
func AdaptComment(text, token string) string {
	if token == "" || token == DefaultCommentToken {
		return text
	}
	if !strings.HasPrefix(text, DefaultCommentToken) {
		return text
	}
	return token + strings.TrimPrefix(text, DefaultCommentToken)
}
