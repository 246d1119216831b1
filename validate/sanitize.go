package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// maxSanitizePasses bounds the fixed-point iteration in Sanitize. The first
// pass removes every invisible rune and the second unwraps any fence those
// runes were hiding, so inputs settle within three passes.
const maxSanitizePasses = 8

var fencePattern = regexp.MustCompile("^```(?:[A-Za-z0-9_+.#-]*[ \\t]*\\r?\\n)?([\\s\\S]*?)```$")

// zero-width space/non-joiner/joiner and the byte-order mark
var zeroWidth = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200b, Hi: 0x200d, Stride: 1},
		{Lo: 0xfeff, Hi: 0xfeff, Stride: 1},
	},
}

// en quad through right-to-left mark
var invisibleSpacing = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2000, Hi: 0x200f, Stride: 1},
	},
}

func newRuneCleaner() transform.Transformer {
	return transform.Chain(
		runes.Remove(runes.In(zeroWidth)),
		runes.Map(func(r rune) rune {
			if r == '\u00a0' {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.In(invisibleSpacing)),
		runes.Map(func(r rune) rune {
			if r == '\u2028' || r == '\u2029' {
				return '\n'
			}
			return r
		}),
	)
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Sanitize normalizes raw shader text: it unwraps a fenced code block,
// removes byte-order marks and invisible characters, normalizes line
// endings and trims surrounding whitespace. The returned warnings are
// diagnostics only and never make the text invalid.
func Sanitize(raw string) (string, []string) {
	cleaned := raw
	for i := 0; i < maxSanitizePasses; i++ {
		next := sanitizePass(cleaned)
		if next == cleaned {
			break
		}
		cleaned = next
	}

	var notes []string
	if removed := utf8.RuneCountInString(raw) - utf8.RuneCountInString(cleaned); removed != 0 {
		notes = append(notes, fmt.Sprintf("Removed %d invisible characters", removed))
	}
	if lead := leadingOddRunes(raw); lead != nil {
		notes = append(notes, fmt.Sprintf("Detected non-ASCII characters at start: %s", formatCodes(lead)))
	}
	if len(notes) == 0 {
		return cleaned, nil
	}
	return cleaned, []string{strings.Join(notes, "; ")}
}

func sanitizePass(s string) string {
	s = unwrapFence(s)
	s = strings.TrimPrefix(s, "\ufeff")
	if out, _, err := transform.String(newRuneCleaner(), s); err == nil {
		s = out
	}
	s = lineEndings.Replace(s)
	return strings.TrimSpace(s)
}

// unwrapFence strips nested fences until the trimmed text is no longer
// wrapped in one.
func unwrapFence(s string) string {
	for {
		s = strings.TrimSpace(s)
		if len(s) < 6 || !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
			return s
		}
		m := fencePattern.FindStringSubmatch(s)
		if m == nil {
			return s
		}
		s = m[1]
	}
}

// leadingOddRunes returns the code points of the first ten runes of s when
// any of them is a control or non-ASCII rune, and nil otherwise.
func leadingOddRunes(s string) []rune {
	var lead []rune
	odd := false
	for _, r := range s {
		if len(lead) == 10 {
			break
		}
		lead = append(lead, r)
		if r < 32 || r > 127 {
			odd = true
		}
	}
	if !odd {
		return nil
	}
	return lead
}

func formatCodes(rs []rune) string {
	codes := make([]string, len(rs))
	for i, r := range rs {
		codes[i] = fmt.Sprint(int(r))
	}
	return "[" + strings.Join(codes, ", ") + "]"
}
