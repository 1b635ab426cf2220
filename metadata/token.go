package metadata

import "fmt"

// MaxRid is the largest row number a token can carry.
const MaxRid = 0x00FFFFFF

// Token identifies a row of a metadata table: the table in the top byte,
// the one-based row number in the low 24 bits. Row number 0 means no row.
type Token uint32

// NewToken builds a token from a table and row number. Row numbers wider
// than 24 bits are truncated; callers validate against MaxRid first.
func NewToken(table TableIndex, rid uint32) Token {
	return Token(uint32(table)<<24 | rid&MaxRid)
}

// Table returns the table the token refers to.
func (t Token) Table() TableIndex {
	return TableIndex(t >> 24)
}

// Rid returns the row number.
func (t Token) Rid() uint32 {
	return uint32(t) & MaxRid
}

// IsNil reports whether the token references no row.
func (t Token) IsNil() bool {
	return t.Rid() == 0
}

func (t Token) String() string {
	return fmt.Sprintf("%s[0x%04x]", t.Table(), t.Rid())
}
