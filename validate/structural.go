package validate

import (
	"regexp"
	"strings"
)

// These are text heuristics over the lower-cased source. They match inside
// comments and string-like text too, and callers rely on that permissiveness.
var (
	entryPointPattern   = regexp.MustCompile(`void\s+main\s*\(\s*(?:void)?\s*\)`)
	fragColorPattern    = regexp.MustCompile(`(?:^|[^a-z0-9_])fragcolor(?:[^a-z0-9_]|$)`)
	texCoordPattern     = regexp.MustCompile(`(?:\bin|\bvarying)\s+vec2\s+v_texcoord\b`)
	plainUniformPattern = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(resolution|time)\b`)
)

// CheckStructure looks for a usable entry point and for stage-output usage
// that does not fit the declared language version. d is the directive found
// by CheckDirective for the same text.
func CheckStructure(code string, d Directive) Findings {
	var f Findings
	text := strings.ToLower(code)
	modern := d.Modern() || strings.Contains(text, "#version 3")

	if !entryPointPattern.MatchString(text) {
		f.errorf("Missing main() function")
	}

	if strings.Contains(text, "out vec4") && !modern {
		f.errorf("Output variables (out) require GLSL ES 3.00 or higher")
	}

	if fragColorPattern.MatchString(text) && !modern {
		f.warnf("Using fragColor with older GLSL version - consider using gl_FragColor instead")
	}

	if texCoordPattern.MatchString(text) {
		f.warnf("Shader expects v_texCoord input from vertex shader")
	}

	var plainRes, plainTime bool
	for _, m := range plainUniformPattern.FindAllStringSubmatch(text, -1) {
		switch m[1] {
		case "resolution":
			plainRes = true
		case "time":
			plainTime = true
		}
	}
	hasResolution := strings.Contains(text, "iresolution") || strings.Contains(text, "u_resolution") || plainRes
	hasTime := strings.Contains(text, "itime") || strings.Contains(text, "u_time") || plainTime
	if !hasResolution && !hasTime {
		f.warnf("No common uniforms detected (iResolution, iTime, u_resolution, u_time, resolution, time)")
	}

	return f
}
