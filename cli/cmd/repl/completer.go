package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/ligature/wander"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "reset", "edit", "clear", "quit"}

// isWordBoundary reports whether r separates completable words. Wander
// names contain only letters, digits, and underscores, so every other
// character is a boundary.
func isWordBoundary(r rune) bool {
	return r != '_' &&
		(r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9')
}

// wordBounds returns the word under the cursor and its byte offsets within
// input. The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inIdentifierLiteral reports whether the word starting at wordStart is the
// name inside an entity or attribute literal, which is never a binding and
// so gets no completions.
func inIdentifierLiteral(input string, wordStart int) bool {
	return wordStart > 0 && input[wordStart-1] == '<'
}

// evalCandidates returns everything that may appear as a name in an
// expression: bindings visible from env, built-in functions, and keywords.
func evalCandidates(env *wander.Environment) []string {
	names := env.Names()
	names = append(names, wander.Builtins()...)
	names = append(names, wander.Keywords()...)

	return names
}

// computeMatches returns the fuzzy matches, best first, for the word at the
// cursor along with the candidate list and the word's bounds. An empty word
// has no matches.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl {
		candidates = ctrlCommands
	} else {
		if inIdentifierLiteral(input, wordStart) {
			return nil, nil, wordStart, wordEnd
		}

		candidates = evalCandidates(m.env)
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar renders the completion bar on a single line no wider
// than width, ending in an ellipsis when candidates are cut off.
func renderCandidateBar(
	m model,
	width int,
) string {
	if len(m.matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range m.matches {
		rendered := renderCandidate(match, m.tabActive && i == m.suggIdx, m.isFunction(match.Str))

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && i < len(m.matches)-1 && used+w+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Functions get a "()" suffix that is not part of the
// completion.
func renderCandidate(match fuzzy.Match, selected, function bool) string {
	base, highlight := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, highlight = selectedStyle, selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if function {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// isFunction reports whether calling name would reach a function.
func (m model) isFunction(name string) bool {
	if _, ok := wander.LookupBuiltin(name); ok {
		return true
	}

	v, ok := lookup(m.env, name)
	if !ok {
		return false
	}

	switch v.(type) {
	case *wander.Closure, *wander.Builtin:
		return true
	default:
		return false
	}
}

// preview renders v on one line, shortened to at most limit runes.
func preview(v wander.Value, limit int) string {
	s := strings.Join(strings.Fields(v.String()), " ")

	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	r := []rune(s)

	return string(r[:limit-3]) + "..."
}
