package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// paramList renders "a0 A0, a1 A1" for count arguments.
func paramList(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		sb.WriteString("a" + n + " A" + n)
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// typeParams joins the argument type names with extra trailing names.
func typeParams(count int, extra ...string) string {
	names := prefixedStrings("A", count)
	for _, e := range extra {
		if names != "" {
			names += ", "
		}
		names += e
	}
	return names
}
