package metadata

import (
	"sync"

	"github.com/wippyai/clrmeta/errors"
)

// MemberTable is an in-memory store of table rows. Each table is an index
// space that grows as rows are added; a row's token is its table plus its
// one-based position. It implements MemberResolver and is safe for
// concurrent use.
type MemberTable struct {
	rows [TableCount][]Member
	mu   sync.RWMutex
}

// NewMemberTable creates an empty member table.
func NewMemberTable() *MemberTable {
	return &MemberTable{}
}

// Add appends m to table, assigns its token and returns it.
func (mt *MemberTable) Add(table TableIndex, m TokenAssigner) (Token, error) {
	if m == nil {
		return 0, errors.NilReference([]string{table.String()}, "member")
	}
	if !table.Valid() {
		return 0, errors.InvalidInput(errors.PhaseConstruct, "unknown table "+table.String())
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	rid := uint32(len(mt.rows[table])) + 1
	if rid > MaxRid {
		return 0, errors.Overflow(errors.PhaseConstruct, rid, uint32(MaxRid))
	}
	token := NewToken(table, rid)
	m.AssignToken(token)
	mt.rows[table] = append(mt.rows[table], m)
	return token, nil
}

// ResolveMember returns the row a token refers to.
func (mt *MemberTable) ResolveMember(token Token) (Member, bool) {
	table := token.Table()
	if !table.Valid() || token.IsNil() {
		return nil, false
	}

	mt.mu.RLock()
	defer mt.mu.RUnlock()

	rows := mt.rows[table]
	if int(token.Rid()) > len(rows) {
		return nil, false
	}
	return rows[token.Rid()-1], true
}

// RowCount returns the number of rows stored in table.
func (mt *MemberTable) RowCount(table TableIndex) uint32 {
	if !table.Valid() {
		return 0
	}
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	return uint32(len(mt.rows[table]))
}
