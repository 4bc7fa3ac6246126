package highlighter

import (
	"bytes"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// PlainText is the language tag for content no lexer recognises.
const PlainText = "plaintext"

// Detect classifies a document by file name, falling back to content analysis.
func Detect(path string, content []byte) string {
	var lexer chroma.Lexer
	if path != "" {
		lexer = lexers.Match(filepath.Base(path))
	}
	if lexer == nil {
		lexer = shebangLexer(content)
	}
	if lexer == nil && len(content) > 0 {
		lexer = lexers.Analyse(string(content))
	}
	if lexer == nil {
		return PlainText
	}
	return strings.ToLower(lexer.Config().Name)
}

// shebangLexer looks up the interpreter named by a "#!" first line,
// skipping env and its flags. A trailing version ("python3") is dropped
// when the full name is unknown.
func shebangLexer(content []byte) chroma.Lexer {
	if !bytes.HasPrefix(content, []byte("#!")) {
		return nil
	}
	line, _, _ := bytes.Cut(content[2:], []byte("\n"))
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return nil
	}

	interpreter := path.Base(fields[0])
	if interpreter == "env" {
		interpreter = ""
		for _, field := range fields[1:] {
			if !strings.HasPrefix(field, "-") && !strings.Contains(field, "=") {
				interpreter = path.Base(field)
				break
			}
		}
	}
	if interpreter == "" {
		return nil
	}

	if lexer := lexers.Get(interpreter); lexer != nil {
		return lexer
	}
	if trimmed := strings.TrimRight(interpreter, "0123456789."); trimmed != "" && trimmed != interpreter {
		return lexers.Get(trimmed)
	}
	return nil
}

// Highlighter styles buffer lines for the terminal view
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	cache      map[int][]chroma.Token // tokens by line number, rebuilt as a whole
	styleCache map[chroma.TokenType]lipgloss.Style
	mu         sync.RWMutex
}

// New creates a highlighter for a language tag produced by Detect.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      style,
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Invalidate drops cached tokens. Call it after any buffer edit.
func (h *Highlighter) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache = nil
}

// tokenize lexes the whole document so multi-line constructs are seen, then
// splits tokens at line breaks.
func (h *Highlighter) tokenize(lines []string) map[int][]chroma.Token {
	cache := make(map[int][]chroma.Token, len(lines))

	content := strings.Join(lines, "\n")
	if content == "" {
		return cache
	}

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		return cache
	}

	lineNum := 0
	for _, token := range iterator.Tokens() {
		value := token.Value
		for {
			before, after, found := strings.Cut(value, "\n")
			if before != "" {
				cache[lineNum] = append(cache[lineNum], chroma.Token{Type: token.Type, Value: before})
			}
			if !found {
				break
			}
			lineNum++
			value = after
		}
	}
	return cache
}

// Tokens returns the tokens of one line, lexing lines on a cache miss.
func (h *Highlighter) Tokens(lineNum int, lines []string) []chroma.Token {
	h.mu.RLock()
	cache := h.cache
	h.mu.RUnlock()

	if cache == nil {
		cache = h.tokenize(lines)
		h.mu.Lock()
		h.cache = cache
		h.mu.Unlock()
	}
	return cache[lineNum]
}

// RuneStyles returns one style per rune of the line, matching rune columns.
func (h *Highlighter) RuneStyles(lineNum int, lines []string) []lipgloss.Style {
	if lineNum < 0 || lineNum >= len(lines) {
		return nil
	}
	n := len([]rune(lines[lineNum]))
	out := make([]lipgloss.Style, 0, n)
	for _, token := range h.Tokens(lineNum, lines) {
		style := h.styleFor(token.Type)
		for range []rune(token.Value) {
			out = append(out, style)
		}
	}
	for len(out) < n {
		out = append(out, lipgloss.NewStyle())
	}
	return out[:n]
}

// styleFor converts a chroma token type to a lipgloss style.
func (h *Highlighter) styleFor(tokenType chroma.TokenType) lipgloss.Style {
	h.mu.RLock()
	style, ok := h.styleCache[tokenType]
	h.mu.RUnlock()
	if ok {
		return style
	}

	entry := h.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
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

	h.mu.Lock()
	h.styleCache[tokenType] = style
	h.mu.Unlock()

	return style
}
