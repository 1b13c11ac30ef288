// This file is part of GoRE.
//
// Copyright (C) 2019-2024 GoRE Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package supersize

// symbolQueue holds positions into a symbol list in insertion order. Entries
// are only ever removed from the front.
type symbolQueue struct {
	entries []int
}

func (q *symbolQueue) push(i int) {
	q.entries = append(q.entries, i)
}

// pop removes and returns the oldest entry.
func (q *symbolQueue) pop() (int, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	i := q.entries[0]
	q.entries = q.entries[1:]
	return i, true
}

func (q *symbolQueue) len() int {
	return len(q.entries)
}

// symbolIndex maps a key to the symbols sharing it. Symbols without a key are
// not indexed.
type symbolIndex struct {
	queues map[MatchKey]*symbolQueue
	// indexed is the number of symbols that had a key.
	indexed int
}

func newSymbolIndex(symbols []*Symbol, m Matcher, names nameCounts) *symbolIndex {
	idx := &symbolIndex{queues: make(map[MatchKey]*symbolQueue)}
	for i, s := range symbols {
		key, ok := m.key(s, names)
		if !ok {
			continue
		}
		q, found := idx.queues[key]
		if !found {
			q = &symbolQueue{}
			idx.queues[key] = q
		}
		q.push(i)
		idx.indexed++
	}
	return idx
}

// take removes and returns the position of the first remaining symbol with
// the key.
func (idx *symbolIndex) take(key MatchKey) (int, bool) {
	q, ok := idx.queues[key]
	if !ok {
		return 0, false
	}
	i, ok := q.pop()
	if q.len() == 0 {
		delete(idx.queues, key)
	}
	return i, ok
}
