package syntax

// Pos is a compact source position: a 1-based byte offset into the source
// text. A zero Pos means "no position".
type Pos int

// Position is the expanded, human-readable form of a Pos.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number
}

func posAdd(p Pos, n int) Pos { return p + Pos(n) }

func posMax(p1, p2 Pos) Pos {
	if p2 > p1 {
		return p2
	}
	return p1
}

// Node is implemented by every AST node.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() Pos
	// End returns the position immediately after the node.
	End() Pos
}

// Lines records, for a single source text, the byte offset at which each
// line begins; Lines[0] is always 0. It is used to turn a Pos into a
// Position without storing line/column on every node.
type Lines []int

// Position expands p into a full Position using the recorded line offsets.
func (ls Lines) Position(p Pos) (pos Position) {
	offs := int(p) - 1
	pos.Offset = offs
	if i := searchInts(ls, offs); i >= 0 {
		pos.Line = i + 1
		pos.Column = offs - ls[i] + 1
	}
	return
}

// searchInts returns the index of the last element of a that is <= x, or -1.
func searchInts(a []int, x int) int {
	i, j := 0, len(a)
	for i < j {
		h := i + (j-i)/2
		if a[h] <= x {
			i = h + 1
		} else {
			j = h
		}
	}
	return i - 1
}
