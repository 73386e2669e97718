package value

// Format renders v using the default tokens ("None", "NaN"). Hosts that
// want the configurable tokens spec.md §4.6 describes ("All tokens are
// implementation-configurable; only their meaning is normative") should use
// FormatWithTokens instead; Format is what every container type's own
// String() method delegates to, so nested containers stay consistent
// without threading a config through every recursive call.
func Format(v Value) string {
	return v.String()
}

// Tokens holds the host-configurable display strings from spec.md §4.6.
type Tokens struct {
	None string
	NaN  string
}

// DefaultTokens matches the teacher's own defaults (NilValue.String()
// returns "nil" in DWScript; Naftah keeps the spec's own vocabulary).
var DefaultTokens = Tokens{None: "None", NaN: "NaN"}

// FormatWithTokens renders v, substituting t's configured tokens for the
// None/NaN singletons at every depth (including inside Seq/Tuple/Map).
func FormatWithTokens(v Value, t Tokens) string {
	switch val := v.(type) {
	case NoneValue:
		return t.None
	case NaNValue:
		return t.NaN
	case *SeqValue:
		return joinContainer("[", "]", val.Elements, t)
	case *TupleValue:
		return joinContainer("(", ")", val.Elements, t)
	case *MapValue:
		parts := make([]string, 0, val.Len())
		for _, k := range val.keys {
			kv := val.values[val.mapKey(k)]
			parts = append(parts, FormatWithTokens(k, t)+": "+FormatWithTokens(kv, t))
		}
		return "{" + joinStrings(parts) + "}"
	default:
		return v.String()
	}
}

func joinContainer(open, close string, elems []Value, t Tokens) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = FormatWithTokens(e, t)
	}
	return open + joinStrings(parts) + close
}

func joinStrings(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
