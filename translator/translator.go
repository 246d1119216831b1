// Package translator rewrites WebGL-flavoured GLSL ES stages into GLSL 4.10
// so they compile on a desktop core-profile context.
package translator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/shaderpreview/graphics"
	"github.com/richinsley/shaderpreview/renderer"
	"github.com/richinsley/shaderpreview/validate"
)

// maxESVersion is the newest GLSL ES version the WebGL2 front end accepts.
const maxESVersion = 300

var floatPrecision = regexp.MustCompile(`\bprecision\s+(lowp|mediump|highp)\s+float\s*;`)

var (
	translator    *gst.ShaderTranslator
	translatorErr error
	translatorMu  sync.Mutex
)

// GetTranslator returns the process-wide ANGLE translator, creating it on
// first use. A failed creation is retried on the next call.
func GetTranslator(ctx context.Context) (*gst.ShaderTranslator, error) {
	translatorMu.Lock()
	defer translatorMu.Unlock()
	if translator == nil {
		translator, translatorErr = gst.NewShaderTranslator(ctx)
		if translatorErr != nil {
			translator = nil
			return nil, fmt.Errorf("failed to create shader translator: %w", translatorErr)
		}
	}
	return translator, nil
}

// Translator implements renderer.Translator.
type Translator struct {
	st *gst.ShaderTranslator
}

var _ renderer.Translator = (*Translator)(nil)

func New(ctx context.Context) (*Translator, error) {
	st, err := GetTranslator(ctx)
	if err != nil {
		return nil, err
	}
	return &Translator{st: st}, nil
}

// Translate converts GLSL ES stages (versioned 300 es, 100, or unversioned)
// and passes desktop GLSL through untouched. Fragment stages that declare no
// float precision get mediump.
func (t *Translator) Translate(source string, stage graphics.Stage) (*renderer.Translation, error) {
	d, _ := validate.CheckDirective(source)
	if !needsTranslation(d) {
		return &renderer.Translation{Code: source}, nil
	}
	if d.ES() && d.Version > maxESVersion {
		return nil, fmt.Errorf("GLSL ES %d is not supported, use #version 300 es or #version 100", d.Version)
	}
	if t == nil || t.st == nil {
		return nil, errors.New("shader translator not initialized")
	}
	if stage == graphics.StageFragment {
		source = withDefaultPrecision(source)
	}

	var kind string
	switch stage {
	case graphics.StageVertex:
		kind = "vertex"
	case graphics.StageFragment:
		kind = "fragment"
	default:
		return nil, fmt.Errorf("unsupported shader stage %d", stage)
	}

	out, err := t.st.TranslateShader(source, kind, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", kind, err)
	}

	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return &renderer.Translation{Code: out.Code, Names: names}, nil
}

func needsTranslation(d validate.Directive) bool {
	return !d.Found || d.ES() || d.Version == 100
}

// withDefaultPrecision declares a float precision after the leading
// #version and #extension lines unless the source already has one. When the
// first remaining line is ordinary code the statement joins that line so
// compiler line numbers stay put.
func withDefaultPrecision(source string) string {
	if floatPrecision.MatchString(source) {
		return source
	}
	const stmt = "precision mediump float;"

	lines := strings.Split(source, "\n")
	i := 0
	for ; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || strings.HasPrefix(l, "//") ||
			strings.HasPrefix(l, "#version") || strings.HasPrefix(l, "#extension") {
			continue
		}
		break
	}
	if i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "#") {
		lines[i] = stmt + " " + lines[i]
		return strings.Join(lines, "\n")
	}
	lines = append(lines[:i], append([]string{stmt}, lines[i:]...)...)
	return strings.Join(lines, "\n")
}
