package rowcheck

import "strconv"

// NumericKind dictates how a field value is coerced before numeric checks.
// It is resolved once per FieldRule at schema-load time; record validation
// only branches on the enum.
type NumericKind int

const (
	KindNone    NumericKind = iota // No numericKind declared; numeric checks are skipped.
	KindString                     // Declared string; numeric checks are skipped.
	KindInteger                    // Base-10 integer coercion.
	KindFloat                      // Floating-point coercion.
)

// Numeric reports whether the kind enables coercion and range checks.
func (k NumericKind) Numeric() bool { return k == KindInteger || k == KindFloat }

func (k NumericKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "none"
	}
}

// parseNumericKind maps a schema document value onto the enum.
func parseNumericKind(s string) (NumericKind, bool) {
	switch s {
	case "integer":
		return KindInteger, true
	case "float":
		return KindFloat, true
	case "string":
		return KindString, true
	default:
		return KindNone, false
	}
}

// coerces reports whether the raw field value converts to the kind. Integer
// coercion is strict base-10; "5.0" is not an integer.
func (k NumericKind) coerces(s string) bool {
	switch k {
	case KindInteger:
		_, err := strconv.ParseInt(s, 10, 64)
		return err == nil
	case KindFloat:
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	default:
		return true
	}
}
