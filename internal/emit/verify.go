package emit

import "fmt"

// Verify checks structural well-formedness of a function: every block is
// reachable and terminated exactly once, every operand is defined at a
// position that dominates its use, operand and result types are
// consistent with each opcode, and every call resolves in the owning
// module. It returns nil on success or the first inconsistency found.
//
// Verification failure means the emitting pass has a defect; the
// function must not be invoked.
func Verify(f *Func) error {
	if len(f.blocks) == 0 {
		return fmt.Errorf("function %q has no blocks", f.name)
	}

	// Block-local shape: nonempty, one terminator, at the end.
	for _, b := range f.blocks {
		if len(b.instrs) == 0 {
			return fmt.Errorf("block %q is empty", b.name)
		}
		for i, in := range b.instrs {
			if in.Op.IsTerminator() && i != len(b.instrs)-1 {
				return fmt.Errorf("block %q has terminator %s before its end", b.name, in.Op)
			}
		}
		if !b.terminated() {
			return fmt.Errorf("block %q is not terminated", b.name)
		}
	}

	// Reachability and dominators over the block graph.
	idx := make(map[*Block]int, len(f.blocks))
	for i, b := range f.blocks {
		idx[b] = i
	}
	rpo, err := reversePostorder(f, idx)
	if err != nil {
		return err
	}
	if len(rpo) != len(f.blocks) {
		for _, b := range f.blocks {
			reached := false
			for _, r := range rpo {
				if r == b {
					reached = true
					break
				}
			}
			if !reached {
				return fmt.Errorf("block %q is unreachable from entry", b.name)
			}
		}
	}
	idom := dominators(f, rpo, idx)

	// definedAt[v] records where each value is defined.
	type defSite struct {
		block int // -1 for parameters
		pos   int
	}
	definedAt := make([]defSite, len(f.values))
	for i := range definedAt {
		definedAt[i] = defSite{block: -2} // not yet seen
	}
	for i := range f.params {
		definedAt[i] = defSite{block: -1}
	}
	for bi, b := range f.blocks {
		for pi, in := range b.instrs {
			if in.Result != NoValue {
				definedAt[in.Result] = defSite{block: bi, pos: pi}
			}
		}
	}

	// dominates reports whether block a dominates block b.
	dominates := func(a, b int) bool {
		for b != -1 {
			if a == b {
				return true
			}
			b = idom[b]
		}
		return false
	}

	for bi, b := range f.blocks {
		for pi, in := range b.instrs {
			for _, a := range in.Args {
				if a < 0 || int(a) >= len(f.values) {
					return fmt.Errorf("block %q: %s references undefined value %%%d", b.name, in.Op, a)
				}
				def := definedAt[a]
				switch {
				case def.block == -2:
					return fmt.Errorf("block %q: %s uses value %%%d which is never defined", b.name, in.Op, a)
				case def.block == -1:
					// Parameters dominate everything.
				case def.block == bi:
					if def.pos >= pi {
						return fmt.Errorf("block %q: %s uses value %%%d before its definition", b.name, in.Op, a)
					}
				default:
					if !dominates(def.block, bi) {
						return fmt.Errorf("block %q: %s operand %%%d does not dominate its use", b.name, in.Op, a)
					}
				}
			}
			if err := checkInstrTypes(f, b, in); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkInstrTypes validates operand and result types for one instruction.
func checkInstrTypes(f *Func, b *Block, in Instr) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("block %q: %s: %s", b.name, in.Op, fmt.Sprintf(format, args...))
	}
	args := func(types ...Type) error {
		if len(in.Args) != len(types) {
			return bad("have %d operands, want %d", len(in.Args), len(types))
		}
		for i, t := range types {
			if got := f.typeOf(in.Args[i]); got != t {
				return bad("operand %d has type %s, want %s", i, got, t)
			}
		}
		return nil
	}
	result := func(t Type) error {
		if got := f.typeOf(in.Result); got != t {
			return bad("result has type %s, want %s", got, t)
		}
		return nil
	}

	switch in.Op {
	case OpIConst:
		return result(TypeI32)
	case OpFConst:
		return result(TypeF64)
	case OpLoad:
		if err := args(TypePtr, TypeI32); err != nil {
			return err
		}
		return result(TypeF64)
	case OpStore:
		return args(TypePtr, TypeI32, TypeF64)
	case OpFAdd, OpFSub, OpFMul, OpFDiv:
		if err := args(TypeF64, TypeF64); err != nil {
			return err
		}
		return result(TypeF64)
	case OpFNeg:
		if err := args(TypeF64); err != nil {
			return err
		}
		return result(TypeF64)
	case OpFCmpOEQ:
		if err := args(TypeF64, TypeF64); err != nil {
			return err
		}
		return result(TypeI1)
	case OpICmpNE:
		if err := args(TypeI32, TypeI32); err != nil {
			return err
		}
		return result(TypeI1)
	case OpOr:
		if err := args(TypeI1, TypeI1); err != nil {
			return err
		}
		return result(TypeI1)
	case OpZExt:
		if err := args(TypeI1); err != nil {
			return err
		}
		return result(TypeI32)
	case OpSelect:
		if err := args(TypeI1, TypeF64, TypeF64); err != nil {
			return err
		}
		return result(TypeF64)
	case OpCall:
		if _, ok := f.mod.extern(in.Callee); !ok {
			return bad("callee %q is not declared in module %q", in.Callee, f.mod.name)
		}
		for i, a := range in.Args {
			if got := f.typeOf(a); got != TypeF64 {
				return bad("operand %d has type %s, want %s", i, got, TypeF64)
			}
		}
		return result(TypeF64)
	case OpCondBr:
		if err := args(TypeI1); err != nil {
			return err
		}
		if in.Then == nil || in.Else == nil {
			return bad("missing successor block")
		}
		return nil
	case OpRet:
		if err := args(f.ret); err != nil {
			return err
		}
		return nil
	default:
		return bad("unknown opcode")
	}
}

// successors returns the successor blocks of b's terminator.
func successors(b *Block) []*Block {
	term := b.instrs[len(b.instrs)-1]
	switch term.Op {
	case OpCondBr:
		return []*Block{term.Then, term.Else}
	default:
		return nil
	}
}

// reversePostorder returns the reachable blocks in reverse postorder.
// It rejects branches to blocks outside the function.
func reversePostorder(f *Func, idx map[*Block]int) ([]*Block, error) {
	var order []*Block
	seen := make([]bool, len(f.blocks))
	var walk func(b *Block) error
	walk = func(b *Block) error {
		i, ok := idx[b]
		if !ok {
			return fmt.Errorf("branch to block %q outside function %q", b.name, f.name)
		}
		if seen[i] {
			return nil
		}
		seen[i] = true
		for _, s := range successors(b) {
			if err := walk(s); err != nil {
				return err
			}
		}
		order = append(order, b)
		return nil
	}
	if err := walk(f.entry()); err != nil {
		return nil, err
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// dominators computes the immediate-dominator tree over the reachable
// blocks using the iterative Cooper-Harvey-Kennedy algorithm. idom is
// indexed by block index; the entry maps to -1.
func dominators(f *Func, rpo []*Block, idx map[*Block]int) []int {
	idom := make([]int, len(f.blocks))
	for i := range idom {
		idom[i] = -1
	}
	rpoPos := make([]int, len(f.blocks))
	preds := make([][]int, len(f.blocks))
	for pos, b := range rpo {
		rpoPos[idx[b]] = pos
		for _, s := range successors(b) {
			preds[idx[s]] = append(preds[idx[s]], idx[b])
		}
	}

	entry := idx[f.entry()]
	idom[entry] = entry

	intersect := func(a, b int) int {
		for a != b {
			for rpoPos[a] > rpoPos[b] {
				a = idom[a]
			}
			for rpoPos[b] > rpoPos[a] {
				b = idom[b]
			}
		}
		return a
	}

	changed := true
	for changed {
		changed = false
		for _, b := range rpo[1:] {
			bi := idx[b]
			newIdom := -1
			for _, p := range preds[bi] {
				if idom[p] == -1 {
					continue
				}
				if newIdom == -1 {
					newIdom = p
				} else {
					newIdom = intersect(newIdom, p)
				}
			}
			if newIdom != -1 && idom[bi] != newIdom {
				idom[bi] = newIdom
				changed = true
			}
		}
	}
	idom[entry] = -1
	return idom
}
