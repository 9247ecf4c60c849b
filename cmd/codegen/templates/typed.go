package templates

import (
	"io"
	"strconv"

	"github.com/valyala/quicktemplate"
)

const typedHeader = `// Code generated by cmd/codegen. DO NOT EDIT.

package slot
`

// TypedGen renders slot/typed.go with ActionN and FuncN wrappers for 0
// through count arguments.
func TypedGen(count int) string {
	bb := quicktemplate.AcquireByteBuffer()
	WriteTyped(bb, count)
	s := string(bb.B)
	quicktemplate.ReleaseByteBuffer(bb)
	return s
}

func WriteTyped(w io.Writer, count int) {
	qw := quicktemplate.AcquireWriter(w)
	StreamTyped(qw, count)
	quicktemplate.ReleaseWriter(qw)
}

func StreamTyped(qw *quicktemplate.Writer, count int) {
	qq := qw.N()
	qq.S(typedHeader)
	for i := 0; i <= count; i++ {
		streamAction(qq, i)
	}
	for i := 0; i <= count; i++ {
		streamFunc(qq, i)
	}
}

func streamAction(qq *quicktemplate.QWriter, n int) {
	name := "Action" + strconv.Itoa(n)
	decl, use := name, name
	if n > 0 {
		decl = name + "[" + typeParams(n) + " any]"
		use = name + "[" + typeParams(n) + "]"
	}

	qq.S("\n// " + name + " is a Slot taking " + argsPhrase(n) + " and returning nothing.\n")
	qq.S("type " + decl + " struct {\n\t*Slot\n}\n\n")
	qq.S("func New" + decl + "(f any) " + use + " {\n")
	qq.S("\treturn " + use + "{Slot: New(f)}\n}\n\n")
	qq.S("func (a " + use + ") Call(" + paramList(n) + ") {\n")
	qq.S("\ta.Slot.Call(" + prefixedStrings("a", n) + ")\n}\n")
}

func streamFunc(qq *quicktemplate.QWriter, n int) {
	name := "Func" + strconv.Itoa(n)
	decl := name + "[" + typeParams(n, "R") + " any]"
	use := name + "[" + typeParams(n, "R") + "]"

	qq.S("\n// " + name + " is a Slot taking " + argsPhrase(n) + " and returning R.\n")
	qq.S("type " + decl + " struct {\n\t*Slot\n}\n\n")
	qq.S("func New" + decl + "(f any) " + use + " {\n")
	qq.S("\treturn " + use + "{Slot: New(f)}\n}\n\n")
	qq.S("// Call returns the zero R and false when the slot did not run or returned\n// something other than an R.\n")
	qq.S("func (f " + use + ") Call(" + paramList(n) + ") (R, bool) {\n")
	qq.S("\treturn result[R](f.Slot.Call(" + prefixedStrings("a", n) + "))\n}\n")
}

func argsPhrase(n int) string {
	switch n {
	case 0:
		return "no arguments"
	case 1:
		return "one argument"
	default:
		return strconv.Itoa(n) + " arguments"
	}
}
