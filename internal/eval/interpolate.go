package eval

import (
	"strings"

	"github.com/naftah-lang/naftah/internal/context"
	"github.com/naftah-lang/naftah/internal/value"
)

// unresolvedToken is substituted for a ${name} placeholder whose name does
// not resolve through the context chain (spec.md §4.4 scenario 3).
const unresolvedToken = "<empty>"

// interpolate implements spec.md §4.4's String literal rule: a literal with
// no ${...} placeholder yields as-is; otherwise each placeholder's name is
// looked up through the same context chain as a bare Identifier and
// rendered with the evaluator's configured None/NaN tokens.
func (e *Evaluator) interpolate(ctx *context.Context, raw string) (value.Value, error) {
	if !strings.Contains(raw, "${") {
		return value.NewStr(raw), nil
	}

	var b strings.Builder
	rest := raw
	for {
		start := strings.Index(rest, "${")
		if start == -1 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.IndexByte(rest, '}')
		if end == -1 {
			// Unterminated placeholder: emit the rest verbatim rather than
			// dropping it silently.
			b.WriteString("${")
			b.WriteString(rest)
			break
		}
		name := strings.TrimSpace(rest[:end])
		rest = rest[end+1:]

		if v, ok := ctx.Lookup(name); ok {
			b.WriteString(value.FormatWithTokens(v, e.Tokens))
		} else {
			b.WriteString(unresolvedToken)
		}
	}
	return value.NewStr(b.String()), nil
}
