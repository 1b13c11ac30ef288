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

import "strings"

// Section identifies a region of the binary independently of the toolchain's
// naming for it. Symbols are matched by Section rather than by section name
// because clang and gcc disagree on names like .data.rel.ro and
// .data.rel.ro.local.
type Section byte

const (
	// SectionText is executable code.
	SectionText Section = 't'
	// SectionRodata is read-only data, including string literals.
	SectionRodata Section = 'r'
	// SectionDataRelRo is data that is read-only after relocation.
	SectionDataRelRo Section = 'R'
	// SectionData is initialized writable data.
	SectionData Section = 'd'
	// SectionBss is zero-initialized data.
	SectionBss Section = 'b'
	// SectionOther is anything not covered by the sections above.
	SectionOther Section = 'o'
)

// Section names as used by ELF files.
const (
	SectionNameText           = ".text"
	SectionNameRodata         = ".rodata"
	SectionNameDataRelRo      = ".data.rel.ro"
	SectionNameDataRelRoLocal = ".data.rel.ro.local"
	SectionNameData           = ".data"
	SectionNameBss            = ".bss"
)

var sectionsByName = map[string]Section{
	SectionNameText:           SectionText,
	SectionNameRodata:         SectionRodata,
	SectionNameDataRelRo:      SectionDataRelRo,
	SectionNameDataRelRoLocal: SectionDataRelRo,
	SectionNameData:           SectionData,
	SectionNameBss:            SectionBss,

	// Mach-O
	"__text":       SectionText,
	"__cstring":    SectionRodata,
	"__const":      SectionRodata,
	"__data":       SectionData,
	"__bss":        SectionBss,
	"__common":     SectionBss,
	"__data_const": SectionDataRelRo,
	"__objc_const": SectionDataRelRo,
	"__gosymtab":   SectionRodata,
	"__gopclntab":  SectionRodata,
	"__noptrdata":  SectionData,
	"__noptrbss":   SectionBss,

	// Go linker
	".noptrdata": SectionData,
	".noptrbss":  SectionBss,
	".gopclntab": SectionRodata,
	".typelink":  SectionRodata,
	".itablink":  SectionRodata,
}

// SectionFromName returns the section identifier for a section name.
// Unknown names map to SectionOther.
func SectionFromName(name string) Section {
	if s, ok := sectionsByName[name]; ok {
		return s
	}
	// gcc emits per-symbol sections with -fdata-sections, for example
	// .rodata.str1.1 or .text.unlikely.
	switch {
	case strings.HasPrefix(name, SectionNameDataRelRo):
		return SectionDataRelRo
	case strings.HasPrefix(name, SectionNameText+"."):
		return SectionText
	case strings.HasPrefix(name, SectionNameRodata+"."):
		return SectionRodata
	case strings.HasPrefix(name, SectionNameData+"."):
		return SectionData
	case strings.HasPrefix(name, SectionNameBss+"."):
		return SectionBss
	}
	return SectionOther
}

func (s Section) String() string {
	return string(rune(s))
}
