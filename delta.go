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
	"fmt"
	"sort"
)

// DiffStatus classifies a DeltaSymbol.
type DiffStatus int

const (
	// DiffStatusUnchanged is a matched symbol with no size or padding change.
	DiffStatusUnchanged DiffStatus = iota
	// DiffStatusChanged is a matched symbol whose size or padding changed.
	DiffStatusChanged
	// DiffStatusAdded is a symbol only present in the after snapshot.
	DiffStatusAdded
	// DiffStatusRemoved is a symbol only present in the before snapshot.
	DiffStatusRemoved
)

func (d DiffStatus) String() string {
	switch d {
	case DiffStatusUnchanged:
		return "unchanged"
	case DiffStatusChanged:
		return "changed"
	case DiffStatusAdded:
		return "added"
	case DiffStatusRemoved:
		return "removed"
	}
	return fmt.Sprintf("DiffStatus(%d)", int(d))
}

// DeltaSymbol is the difference of one symbol between two snapshots. A nil
// Before means the symbol was added, a nil After means it was removed.
type DeltaSymbol struct {
	Before *Symbol
	After  *Symbol

	// overhead is set on padding overhead records, together with the exact
	// aggregate padding change they carry.
	overhead        bool
	overheadPadding float64
}

// Status returns whether the symbol was added, removed, changed or is
// unchanged. Added and removed are decided by which side is present, so a
// zero-sized symbol is never mistaken for a match.
func (d *DeltaSymbol) Status() DiffStatus {
	switch {
	case d.Before == nil:
		return DiffStatusAdded
	case d.After == nil:
		return DiffStatusRemoved
	case d.SizeDelta() != 0 || d.PaddingDelta() != 0:
		return DiffStatusChanged
	}
	return DiffStatusUnchanged
}

// SizeDelta returns the change in size, excluding padding.
func (d *DeltaSymbol) SizeDelta() int64 {
	var delta int64
	if d.After != nil {
		delta += d.After.Size
	}
	if d.Before != nil {
		delta -= d.Before.Size
	}
	return delta
}

// PaddingDelta returns the change in padding reported for this symbol.
// Padding depends on the alignment of the following symbol, so for matched
// symbols it's tracked in aggregate by a padding overhead record instead.
// Padding-only symbols are the exception.
func (d *DeltaSymbol) PaddingDelta() int64 {
	switch {
	case d.Before == nil:
		return d.After.Padding
	case d.After == nil:
		return -d.Before.Padding
	case d.Before.Size == 0:
		return d.After.Padding - d.Before.Padding
	}
	return 0
}

// TotalDelta is the sum of SizeDelta and PaddingDelta.
func (d *DeltaSymbol) TotalDelta() int64 {
	return d.SizeDelta() + d.PaddingDelta()
}

func (d *DeltaSymbol) sym() *Symbol {
	if d.After != nil {
		return d.After
	}
	return d.Before
}

// Section returns the section identifier of the symbol.
func (d *DeltaSymbol) Section() Section {
	return d.sym().Section
}

// SectionName returns the section name of the symbol, preferring the after
// snapshot.
func (d *DeltaSymbol) SectionName() string {
	return d.sym().SectionName
}

// FullName returns the full name of the symbol, preferring the after
// snapshot.
func (d *DeltaSymbol) FullName() string {
	return d.sym().FullName
}

// IsPaddingOverhead returns true for the synthetic records that carry the
// aggregate padding change of a section.
func (d *DeltaSymbol) IsPaddingOverhead() bool {
	return d.overhead
}

// PaddingPSSDelta returns the proportional padding change of the delta. For
// padding overhead records this is the exact aggregate, which may be a
// fraction of a byte when aliased symbols are involved.
func (d *DeltaSymbol) PaddingPSSDelta() float64 {
	switch {
	case d.overhead:
		return d.overheadPadding
	case d.Before == nil:
		return d.After.PaddingPSS()
	case d.After == nil:
		return -d.Before.PaddingPSS()
	case d.Before.Size == 0:
		return d.After.PaddingPSS() - d.Before.PaddingPSS()
	}
	return 0
}

// String returns a string summary of the delta.
func (d *DeltaSymbol) String() string {
	return fmt.Sprintf("%s %s %s %+d (padding %+d)", d.Status(), d.SectionName(), d.FullName(), d.SizeDelta(), d.PaddingDelta())
}

// DeltaSymbols is an ordered list of deltas.
type DeltaSymbols []*DeltaSymbol

// CountsByDiffStatus returns the number of deltas per status.
func (ds DeltaSymbols) CountsByDiffStatus() map[DiffStatus]int {
	counts := make(map[DiffStatus]int, 4)
	for _, d := range ds {
		counts[d.Status()]++
	}
	return counts
}

// TotalDelta returns the sum of all size and padding changes.
func (ds DeltaSymbols) TotalDelta() int64 {
	var total int64
	for _, d := range ds {
		total += d.TotalDelta()
	}
	return total
}

// WhereSectionName returns the deltas in the named section. The receiver is
// not modified.
func (ds DeltaSymbols) WhereSectionName(name string) DeltaSymbols {
	return ds.filter(func(d *DeltaSymbol) bool { return d.SectionName() == name })
}

// WhereStatus returns the deltas with the given status. The receiver is not
// modified.
func (ds DeltaSymbols) WhereStatus(status DiffStatus) DeltaSymbols {
	return ds.filter(func(d *DeltaSymbol) bool { return d.Status() == status })
}

func (ds DeltaSymbols) filter(keep func(*DeltaSymbol) bool) DeltaSymbols {
	ret := make(DeltaSymbols, 0)
	for _, d := range ds {
		if keep(d) {
			ret = append(ret, d)
		}
	}
	return ret
}

// DeltaSizeInfo is the result of diffing two snapshots.
type DeltaSizeInfo struct {
	// Before is the snapshot diffed from.
	Before *SizeInfo
	// After is the snapshot diffed to.
	After *SizeInfo
	// SectionSizes maps a section name to its change in size.
	SectionSizes map[string]int64
	// Symbols holds one delta per matched pair, per unmatched symbol and per
	// section with a padding change.
	Symbols DeltaSymbols
}

// SectionNames returns the names of all sections in either snapshot, sorted.
func (d *DeltaSizeInfo) SectionNames() []string {
	names := make([]string, 0, len(d.SectionSizes))
	for n := range d.SectionSizes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
