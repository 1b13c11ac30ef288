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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaddingRecords(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	p := newPaddingAccumulator()
	p.add(newSym(".text", "f()", "a.cc", 1, 0), -4)
	p.add(newSym(".rodata", "g", "a.cc", 1, 0), 3)
	p.add(newSym(".rodata", "h", "a.cc", 1, 0), -3)
	p.add(newSym(".data.rel.ro", "k", "a.cc", 1, 0), 2.5)
	p.add(newSym(".bss", "c", "a.cc", 1, 0), 0.25)

	records := p.records()
	require.Len(records, 3, "Sections without a net change should not get a record")

	assert.Equal(".bss", records[0].SectionName())
	assert.Equal(int64(0), records[0].After.Padding)
	assert.Equal(0.25, records[0].PaddingPSSDelta(), "Fractional changes should be kept exactly")
	assert.Equal(".data.rel.ro", records[1].SectionName())
	assert.Equal(SectionDataRelRo, records[1].Section())
	assert.Equal(int64(3), records[1].After.Padding)
	assert.Equal(2.5, records[1].PaddingPSSDelta())
	assert.Equal(".text", records[2].SectionName())
	assert.Equal(int64(-4), records[2].After.Padding)
	assert.Equal(-4.0, records[2].PaddingPSSDelta())

	for _, r := range records {
		assert.Nil(r.Before)
		assert.True(r.IsPaddingOverhead())
		assert.True(r.After.IsOverhead())
		assert.Equal(int64(0), r.After.Size)
		assert.Equal(DiffStatusAdded, r.Status())
		assert.Equal(r.After.Padding, r.TotalDelta())
	}
}

func TestPaddingRecordsKeepSymbolSection(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// The extractor's identifier wins over the name table.
	s := &Symbol{Section: SectionRodata, SectionName: ".custom", Size: 4}
	p := newPaddingAccumulator()
	p.add(s, 2)

	records := p.records()
	require.Len(records, 1)
	assert.Equal(SectionRodata, records[0].Section())
	assert.Equal(".custom", records[0].SectionName())
}

func TestPaddingMerge(t *testing.T) {
	assert := assert.New(t)

	a := newPaddingAccumulator()
	a.add(newSym(".text", "f()", "a.cc", 1, 0), 1)
	b := newPaddingAccumulator()
	b.add(newSym(".text", "g()", "a.cc", 1, 0), 2)
	b.add(newSym(".data", "h", "a.cc", 1, 0), -1)
	a.merge(b)
	assert.Equal(map[string]sectionPadding{
		".text": {section: SectionText, delta: 3},
		".data": {section: SectionData, delta: -1},
	}, a.bySection)
}

func TestPaddingRecordsEmpty(t *testing.T) {
	assert.Empty(t, newPaddingAccumulator().records())
}
