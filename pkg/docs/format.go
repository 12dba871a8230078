package docs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/icdmap/pkg/icd"
)

// dataType renders an attribute's type and its range column.
// Arrays render as <itemType><dimensions>; bare enums as "enum".
func dataType(a icd.Attribute) (string, string) {
	var dt, enum string
	switch {
	case a.Type == "array":
		dt = dimensions(a.Dimensions)
		if a.Items != nil {
			switch {
			case a.Items.Type != "":
				dt = a.Items.Type + dt
			case len(a.Items.Enum) > 0:
				enum = enumValues(a.Items.Enum)
			}
		}
	case a.Type != "":
		dt = a.Type
	case len(a.Enum) > 0:
		dt = "enum"
		enum = enumValues(a.Enum)
	}

	bounds := valueRange(a.Minimum, a.Maximum)
	switch {
	case enum != "" && bounds != "":
		return dt, fmt.Sprintf("%s (%s)", enum, bounds)
	case bounds != "":
		return dt, bounds
	default:
		return dt, enum
	}
}

func dimensions(dims []int) string {
	if len(dims) == 0 {
		return ""
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func enumValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " | ")
}

func valueRange(minimum, maximum *float64) string {
	switch {
	case minimum != nil && maximum != nil:
		return number(*minimum) + " to " + number(*maximum)
	case maximum != nil:
		return "≤ " + number(*maximum)
	case minimum != nil:
		return "≥ " + number(*minimum)
	default:
		return ""
	}
}

// rate renders the publish rate in Hz, or "" when neither bound is set.
func rate(minRate, maxRate *float64) string {
	var s string
	switch {
	case minRate != nil && maxRate != nil:
		if *minRate == *maxRate {
			s = number(*maxRate)
		} else {
			s = number(*maxRate) + " to " + number(*minRate)
		}
	case maxRate != nil:
		s = "≤ " + number(*maxRate)
	case minRate != nil:
		s = "≥ " + number(*minRate)
	default:
		return ""
	}
	return s + " Hz"
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optionalNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return number(*f)
}

func optionalBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

// anchor builds a section id from a tag and an item name.
func anchor(tag, name string) string {
	return tag + strings.ReplaceAll(name, "_", "")
}
