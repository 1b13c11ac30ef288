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

import "github.com/hashicorp/go-hclog"

// snapshotNames holds the full name counts of both snapshots. They are
// counted over the whole snapshot, not the symbols left for a pass.
type snapshotNames struct {
	before nameCounts
	after  nameCounts
}

// matchSymbols pairs each after symbol with the first remaining before symbol
// that has the same key. The symbols that could not be paired are returned in
// their original order.
func matchSymbols(before, after []*Symbol, m Matcher, names snapshotNames, padding *paddingAccumulator, logger hclog.Logger) (pairs DeltaSymbols, unmatchedBefore, unmatchedAfter []*Symbol) {
	logger = logger.With("matcher", m.String())

	idx := newSymbolIndex(before, m, names.before)
	logger.Debug("built symbol index", "symbols", len(before), "indexed", idx.indexed, "keys", len(idx.queues))

	consumed := make([]bool, len(before))
	pairs = make(DeltaSymbols, 0)
	unmatchedAfter = make([]*Symbol, 0)
	for _, afterSym := range after {
		key, ok := m.key(afterSym, names.after)
		if !ok {
			unmatchedAfter = append(unmatchedAfter, afterSym)
			continue
		}
		i, found := idx.take(key)
		if !found {
			unmatchedAfter = append(unmatchedAfter, afterSym)
			continue
		}
		consumed[i] = true
		beforeSym := before[i]
		// Padding-only symbols report their own padding change.
		if beforeSym.Size != 0 {
			padding.add(beforeSym, afterSym.PaddingPSS()-beforeSym.PaddingPSS())
		}
		pairs = append(pairs, &DeltaSymbol{Before: beforeSym, After: afterSym})
	}

	unmatchedBefore = make([]*Symbol, 0, len(before)-len(pairs))
	for i, s := range before {
		if !consumed[i] {
			unmatchedBefore = append(unmatchedBefore, s)
		}
	}

	logger.Debug("matched symbols", "matched", len(pairs), "total", len(after))
	return pairs, unmatchedBefore, unmatchedAfter
}
