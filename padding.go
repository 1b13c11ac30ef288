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

import (
	"math"
	"sort"
)

const paddingOverheadName = overheadPrefix + "aggregate padding of diff'ed symbols"

// sectionPadding is the accumulated padding change of one section name. The
// section identifier is taken from the symbols, not derived from the name.
type sectionPadding struct {
	section Section
	delta   float64
}

// paddingAccumulator sums the padding change of matched symbols per section
// name. Matched symbols report no padding of their own, so without it the
// padding change would be lost.
type paddingAccumulator struct {
	bySection map[string]sectionPadding
}

func newPaddingAccumulator() *paddingAccumulator {
	return &paddingAccumulator{bySection: make(map[string]sectionPadding)}
}

// add records the padding change of a pair against the section of its before
// symbol.
func (p *paddingAccumulator) add(before *Symbol, delta float64) {
	e, ok := p.bySection[before.SectionName]
	if !ok {
		e.section = before.Section
	}
	e.delta += delta
	p.bySection[before.SectionName] = e
}

func (p *paddingAccumulator) merge(o *paddingAccumulator) {
	for name, v := range o.bySection {
		e, ok := p.bySection[name]
		if !ok {
			e.section = v.section
		}
		e.delta += v.delta
		p.bySection[name] = e
	}
}

// records returns one overhead delta per section with a nonzero padding
// change, sorted by section name. The synthetic symbol carries the change
// rounded to whole bytes, the delta itself keeps the exact value.
func (p *paddingAccumulator) records() DeltaSymbols {
	names := make([]string, 0, len(p.bySection))
	for name := range p.bySection {
		names = append(names, name)
	}
	sort.Strings(names)

	ret := make(DeltaSymbols, 0)
	for _, name := range names {
		e := p.bySection[name]
		if e.delta == 0 {
			continue
		}
		ret = append(ret, &DeltaSymbol{
			After: &Symbol{
				Section:     e.section,
				SectionName: name,
				Name:        paddingOverheadName,
				FullName:    paddingOverheadName,
				Padding:     int64(math.Round(e.delta)),
			},
			overhead:        true,
			overheadPadding: e.delta,
		})
	}
	return ret
}
