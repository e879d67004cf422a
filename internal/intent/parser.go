package intent

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/Cyclone1070/armorclaw/internal/archive"
)

// Parser is a deterministic, rule-based classifier. It has no state; the
// zero value is ready to use.
type Parser struct{}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse classifies instruction against the paths present in the archive.
// It never fails: an instruction that cannot be classified yields
// ActionUnknown with Reasoning explaining why.
func (p *Parser) Parse(instruction string, listing []string) Intent {
	return Parse(instruction, listing)
}

type token struct {
	text   string
	quoted bool
}

// Parse is the pure classification function behind Parser.
func Parse(instruction string, listing []string) Intent {
	head, content, marker := splitContent(instruction)
	tokens := tokenize(head)

	verbIdx, verb, action := matchVerb(tokens)
	if verbIdx < 0 {
		return Intent{
			Action: ActionUnknown,
			Reasoning: fmt.Sprintf("no action keyword recognised in %q; expected one of: %s",
				strings.TrimSpace(instruction), keywordList()),
		}
	}

	reasons := []string{fmt.Sprintf("verb %q matched the %s rule", verb, action)}

	existing := make(map[string]bool, len(listing))
	for _, entry := range listing {
		existing[entry] = true
	}

	targetIdx, target, why := findTarget(tokens, verbIdx, existing)
	if targetIdx < 0 {
		reasons = append(reasons, "no path-like target was found, so no safe intent can be derived")
		return Intent{
			Action:    ActionUnknown,
			Command:   verb,
			Reasoning: strings.Join(reasons, "; "),
		}
	}
	reasons = append(reasons, why)

	in := Intent{
		Action:     action,
		TargetPath: target,
		Command:    verb,
	}

	if action == ActionRefactor {
		if dest, via, ok := findDestination(tokens, targetIdx); ok {
			in.Destination = dest
			reasons = append(reasons, fmt.Sprintf("rename destination %q follows %q", dest, via))
		}
	}

	if marker != "" {
		in.Content = &content
		reasons = append(reasons, fmt.Sprintf("literal content (%d bytes) supplied after %q", len(content), marker))
	} else {
		reasons = append(reasons, "no literal content supplied")
	}

	in.Reasoning = strings.Join(reasons, "; ")
	return in
}

// splitContent separates the instruction head from literal content following
// the first content marker.
func splitContent(instruction string) (head, content, marker string) {
	loc := contentMarker.FindStringIndex(instruction)
	if loc == nil {
		return instruction, "", ""
	}
	head = instruction[:loc[0]]
	marker = strings.ToLower(instruction[loc[0]:loc[1]])
	content = strings.TrimSpace(instruction[loc[1]:])
	content = strings.TrimSpace(strings.TrimPrefix(content, ":"))
	content = unquote(content)
	return head, content, marker
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isQuote(r rune) bool {
	return r == '"' || r == '\'' || r == '`'
}

// tokenize splits on whitespace, keeping quoted spans whole.
func tokenize(s string) []token {
	var tokens []token
	var cur strings.Builder
	var quote rune

	flush := func(quoted bool) {
		if cur.Len() > 0 {
			tokens = append(tokens, token{text: cur.String(), quoted: quoted})
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				flush(true)
				continue
			}
			cur.WriteRune(r)
		case isQuote(r) && cur.Len() == 0:
			quote = r
		case unicode.IsSpace(r):
			flush(false)
		default:
			cur.WriteRune(r)
		}
	}
	// An unterminated quote still yields its text.
	flush(quote != 0)
	return tokens
}

// clean strips punctuation that commonly trails or wraps a word in prose.
func clean(t token) string {
	if t.quoted {
		return strings.TrimSpace(t.text)
	}
	s := strings.TrimLeft(t.text, "([{")
	s = strings.TrimRight(s, ".,;:!?)]}")
	return strings.Trim(s, "\"'`")
}

func matchVerb(tokens []token) (int, string, Action) {
	for i, t := range tokens {
		if t.quoted {
			continue
		}
		word := strings.ToLower(clean(t))
		if action, ok := verbTable[word]; ok {
			return i, word, action
		}
	}
	return -1, "", ActionUnknown
}

// findTarget applies the target rules in order: an existing archive path,
// then any path-like token.
func findTarget(tokens []token, verbIdx int, existing map[string]bool) (int, string, string) {
	for i, t := range tokens {
		if i == verbIdx {
			continue
		}
		word := clean(t)
		if word == "" {
			continue
		}
		if resolved, err := archive.Resolve(word); err == nil && existing[resolved] {
			return i, resolved, fmt.Sprintf("target %q matches an existing archive entry", resolved)
		}
	}

	for i, t := range tokens {
		if i == verbIdx {
			continue
		}
		word := clean(t)
		why, ok := pathLike(word)
		if !ok {
			continue
		}
		target := word
		if resolved, err := archive.Resolve(word); err == nil {
			target = resolved
		}
		return i, target, fmt.Sprintf("target %q is path-like (%s) and not present in the archive", target, why)
	}
	return -1, "", ""
}

func findDestination(tokens []token, targetIdx int) (string, string, bool) {
	for i := targetIdx + 1; i < len(tokens)-1; i++ {
		marker := strings.ToLower(clean(tokens[i]))
		if tokens[i].quoted || !destinationMarkers[marker] {
			continue
		}
		word := clean(tokens[i+1])
		if _, ok := pathLike(word); !ok {
			continue
		}
		if resolved, err := archive.Resolve(word); err == nil {
			word = resolved
		}
		return word, marker, true
	}
	return "", "", false
}

// pathLike reports whether word looks like a file path and why.
func pathLike(word string) (string, bool) {
	if word == "" || word == "." || word == ".." {
		return "", false
	}
	if strings.Contains(word, "/") || strings.Contains(word, `\`) {
		return "contains a path separator", true
	}
	base := path.Base(word)
	if ext := strings.ToLower(path.Ext(base)); knownExtensions[ext] {
		return fmt.Sprintf("known extension %s", ext), true
	}
	if strings.HasPrefix(base, ".") && len(strings.Trim(base, ".")) > 0 {
		return "dotfile", true
	}
	return "", false
}
