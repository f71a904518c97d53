package audit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatValue renders a stored value the way it appears in audit lines.
// Floats are printed without exponent so 1200.0 reads as 1200.
func FormatValue(value any) string {
	switch v := value.(type) {
	case float64:
		return formatFloat(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatParam quotes strings so the parameter list stays readable.
func formatParam(value any) string {
	if s, ok := value.(string); ok {
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
	return FormatValue(value)
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatParam(arg)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatKwargs(kwargs map[string]any) string {
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = formatParam(k) + ": " + formatParam(kwargs[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
