package emit

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble renders a module as a stable textual listing. The output
// is deterministic for a given module and is what the golden tests and
// the CLI inspect command show.
func Disassemble(m *Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "module %q\n", m.name)
	for _, name := range m.extOrd {
		fmt.Fprintf(&sb, "declare f64 @%s(f64)\n", name)
	}
	for _, name := range m.order {
		sb.WriteByte('\n')
		disasmFunc(&sb, m.funcs[name])
	}
	return sb.String()
}

// DisassembleFunc renders a single function.
func DisassembleFunc(f *Func) string {
	var sb strings.Builder
	disasmFunc(&sb, f)
	return sb.String()
}

func disasmFunc(sb *strings.Builder, f *Func) {
	var params []string
	for i, p := range f.params {
		params = append(params, fmt.Sprintf("%s %s", p.Type, valueRef(f, Value(i))))
	}
	fmt.Fprintf(sb, "func %s @%s(%s) {\n", f.ret, f.name, strings.Join(params, ", "))
	for _, b := range f.blocks {
		fmt.Fprintf(sb, "%s:\n", b.name)
		for _, in := range b.instrs {
			sb.WriteString("  ")
			sb.WriteString(disasmInstr(f, in))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("}\n")
}

// valueRef renders a value reference, preferring its listing name.
func valueRef(f *Func, v Value) string {
	if v == NoValue {
		return "%<none>"
	}
	if int(v) < len(f.values) && f.values[v].name != "" {
		return "%" + f.values[v].name
	}
	return "%v" + strconv.Itoa(int(v))
}

func disasmInstr(f *Func, in Instr) string {
	var ops []string
	for _, a := range in.Args {
		ops = append(ops, valueRef(f, a))
	}
	rhs := ""
	switch in.Op {
	case OpIConst:
		rhs = fmt.Sprintf("%s %d", in.Op, in.IntImm)
	case OpFConst:
		rhs = fmt.Sprintf("%s %s", in.Op, strconv.FormatFloat(in.FloatImm, 'g', -1, 64))
	case OpCall:
		rhs = fmt.Sprintf("%s @%s(%s)", in.Op, in.Callee, strings.Join(ops, ", "))
	case OpCondBr:
		rhs = fmt.Sprintf("%s %s, %s, %s", in.Op, ops[0], in.Then.name, in.Else.name)
	default:
		rhs = in.Op.String()
		if len(ops) > 0 {
			rhs += " " + strings.Join(ops, ", ")
		}
	}
	if in.Result != NoValue {
		return fmt.Sprintf("%s = %s", valueRef(f, in.Result), rhs)
	}
	return rhs
}
