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

// Package supersize compares the symbols of two builds of a binary and reports
// the change in size of every symbol and section.
package supersize

// SizeInfo is a snapshot of the symbols and section sizes of one build of a
// binary.
type SizeInfo struct {
	// SectionSizes maps a section name to the total size of that section.
	SectionSizes map[string]int64
	// Symbols is the list of symbols in the order they were extracted.
	Symbols []*Symbol
}

// NewSizeInfo returns a snapshot of the given symbols. Symbols whose full name
// occurs more than once in the list are flagged with FlagNameNotUnique.
// The symbols must not be modified after this call.
func NewSizeInfo(sectionSizes map[string]int64, symbols []*Symbol) *SizeInfo {
	counts := make(map[string]int, len(symbols))
	for _, s := range symbols {
		if s == nil {
			continue
		}
		counts[s.FullName]++
	}
	for _, s := range symbols {
		if s != nil && counts[s.FullName] > 1 {
			s.Flags |= FlagNameNotUnique
		}
	}
	if sectionSizes == nil {
		sectionSizes = make(map[string]int64)
	}
	return &SizeInfo{SectionSizes: sectionSizes, Symbols: symbols}
}
