package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"tagged", "```glsl\nvoid main() {}\n```", "void main() {}"},
		{"untagged", "```\nvoid main() {}\n```", "void main() {}"},
		{"other tag", "  ```frag\r\nvoid main() {}\r\n```  ", "void main() {}"},
		{"single line", "```void main() {}```", "void main() {}"},
		{"nested", "```\n```glsl\nvoid main() {}\n```\n```", "void main() {}"},
		{"not fenced", "void main() {}\n```", "void main() {}\n```"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, _ := Sanitize(c.in)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestSanitizeInvisibleCharacters(t *testing.T) {
	in := "\ufeff#version 300 es\u200b\nfloat x;\u2028void\u00a0\u2003main() {}\r\n\r\n"
	got, warnings := Sanitize(in)
	assert.Equal(t, "#version 300 es\nfloat x;\nvoid main() {}", got)
	if assert.Len(t, warnings, 1) {
		assert.True(t, strings.HasPrefix(warnings[0], "Removed 7 invisible characters"), warnings[0])
		assert.Contains(t, warnings[0], "Detected non-ASCII characters at start: [65279, 35, 118")
	}
}

func TestSanitizeLineEndings(t *testing.T) {
	got, _ := Sanitize("a\r\nb\rc\n\nd")
	assert.Equal(t, "a\nb\nc\n\nd", got)
}

func TestSanitizeCleanInputHasNoWarnings(t *testing.T) {
	in := "#version 300 es\nvoid main() {}"
	got, warnings := Sanitize(in)
	assert.Equal(t, in, got)
	assert.Empty(t, warnings)
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"```",
		"``````",
		"\u200b```\n\u200b```glsl\nvoid main(){}\n```\n```",
		"```glsl\n\ufeff\u00a0 void main(){} \n```",
		"\r\n\r\n#version 100\r\n\u2029precision mediump float;\u2000\r",
		"\u00a0\u00a0```\n```\n```",
		"plain text with ``` inside ```",
	}
	for _, in := range inputs {
		once, _ := Sanitize(in)
		twice, _ := Sanitize(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}
