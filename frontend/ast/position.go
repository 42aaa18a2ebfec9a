package ast

import "fmt"

// Position is a line and column in the original source file.
// Lines start at 1 and columns at 0; the zero Position is unknown.
type Position struct {
	Line int
	Col  int
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Positioner allows finding the location in the original source file.
type Positioner interface {
	Pos() Position // position of first character belonging to the node
	End() Position // position of first character immediately after the node
}

// Range represents a range of positions in the source code.
type Range struct {
	PosStart Position
	PosEnd   Position
}

// Pos returns the starting position of the range.
func (r Range) Pos() Position { return r.PosStart }

// End returns the ending position of the range.
func (r Range) End() Position { return r.PosEnd }

// String returns a string representation of the range.
func (r Range) String() string {
	if r.PosStart == r.PosEnd || !r.PosEnd.IsValid() {
		return r.PosStart.String()
	}
	return fmt.Sprintf("%v-%v", r.PosStart, r.PosEnd)
}

// At is a Range starting at line:col with an unknown end.
func At(line, col int) Range {
	return Range{PosStart: Position{Line: line, Col: col}}
}

// RangeBetween creates a Range between two Positioners.
func RangeBetween(fst, snd Positioner) Range {
	return Range{fst.Pos(), snd.End()}
}

// RangeOf creates a Range from a Positioner.
func RangeOf(n Positioner) Range {
	if n == nil {
		return Range{}
	}
	if asRange, ok := n.(Range); ok {
		return asRange
	}
	return Range{n.Pos(), n.End()}
}
