package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDirective(t *testing.T) {
	cases := []struct {
		name     string
		code     string
		want     Directive
		errors   []string
		warnings []string
	}{
		{
			name: "es 310",
			code: "#version 310 es\nvoid main(){}",
			want: Directive{Found: true, Version: 310, Profile: ProfileES},
		},
		{
			name: "core with trailing comment",
			code: "#version 330 core // desktop\nvoid main(){}",
			want: Directive{Found: true, Version: 330, Profile: ProfileCore},
		},
		{
			name: "after comments",
			code: "// header\n/* block\n   #version 100\n*/\n\n#version 300 es",
			want: Directive{Found: true, Line: 5, Version: 300, Profile: ProfileES},
		},
		{
			name: "single line block comment",
			code: "/* one line */\n#version 300 es",
			want: Directive{Found: true, Line: 1, Version: 300, Profile: ProfileES},
		},
		{
			name:     "missing",
			code:     "void main(){}",
			warnings: []string{"No version directive found, the runtime will assume a default version"},
		},
		{
			name:   "bad format",
			code:   "#version 300 foo",
			want:   Directive{Found: true},
			errors: []string{"Invalid version directive format"},
		},
		{
			name:   "old es",
			code:   "#version 200 es",
			want:   Directive{Found: true, Version: 200, Profile: ProfileES},
			errors: []string{"GLSL ES version must be 300 or higher for modern features"},
		},
		{
			name:     "legacy desktop",
			code:     "#version 120",
			want:     Directive{Found: true, Version: 120},
			warnings: []string{"Using legacy GLSL version, some features may not be available"},
		},
		{
			name:   "not first",
			code:   "precision highp float;\n#version 300 es",
			want:   Directive{Found: true, Line: 1, Version: 300, Profile: ProfileES},
			errors: []string{mustBeFirst},
		},
		{
			name: "second directive ignored",
			code: "#version 300 es\n#version 100",
			want: Directive{Found: true, Version: 300, Profile: ProfileES},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, f := CheckDirective(c.code)
			assert.Equal(t, c.want, d)
			assert.Equal(t, c.errors, f.Errors)
			assert.Equal(t, c.warnings, f.Warnings)
		})
	}
}

func TestDirectiveES310NeverReportsVersionError(t *testing.T) {
	prefixes := []string{"", "// comment\n", "/* a\nb */\n", "\n\n"}
	bodies := []string{"", "\nvoid main(){}", "\nout vec4 c;\nvoid main(){ c = vec4(0.0); }"}
	for _, p := range prefixes {
		for _, b := range bodies {
			_, f := CheckDirective(p + "#version 310 es" + b)
			assert.Empty(t, f.Errors, "%q", p+b)
		}
	}
}
