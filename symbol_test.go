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
)

// newSym returns a symbol in the given section with its identifier filled in.
func newSym(sectionName, fullName, path string, size, padding int64) *Symbol {
	return &Symbol{
		Section:     SectionFromName(sectionName),
		SectionName: sectionName,
		FullName:    fullName,
		SourcePath:  path,
		Size:        size,
		Padding:     padding,
	}
}

func TestShortName(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name     string
		sym      *Symbol
		expected string
	}{
		{"explicit", &Symbol{Name: "Foo::Bar", FullName: "Foo::Bar(int)"}, "Foo::Bar"},
		{"demangled", &Symbol{FullName: "Foo::Bar(int, char const*) const"}, "Foo::Bar"},
		{"nested_params", &Symbol{FullName: "Foo::Bar(Baz<(char)1>)"}, "Foo::Bar"},
		{"operator_call", &Symbol{FullName: "Foo::operator()(int)"}, "Foo::operator()"},
		{"mangled", &Symbol{FullName: "_ZN3foo3barEi"}, "foo::bar"},
		{"data", &Symbol{FullName: "kConstant"}, "kConstant"},
		{"literal", &Symbol{FullName: "\"Hello (World)\""}, "\"Hello (World)\""},
	}

	for _, test := range tests {
		t.Run("short_name_"+test.name, func(t *testing.T) {
			assert.Equal(test.expected, test.sym.ShortName())
		})
	}
}

func TestPath(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("a.cc", (&Symbol{SourcePath: "a.cc", ObjectPath: "obj/a.o"}).Path())
	assert.Equal("obj/a.o", (&Symbol{ObjectPath: "obj/a.o"}).Path())
	assert.Equal("", (&Symbol{}).Path())
}

func TestPaddingPSS(t *testing.T) {
	assert := assert.New(t)

	s := &Symbol{Size: 12, Padding: 4}
	assert.Equal(4.0, s.PaddingPSS(), "Zero aliases should count as one")
	assert.Equal(16.0, s.PSS())
	assert.Equal(int64(16), s.SizeWithPadding())

	s.NumAliases = 4
	assert.Equal(1.0, s.PaddingPSS())
	assert.Equal(4.0, s.PSS())
}

func TestIsOverhead(t *testing.T) {
	assert := assert.New(t)

	assert.True((&Symbol{FullName: paddingOverheadName}).IsOverhead())
	assert.True((&Symbol{FullName: "Overhead: ELF file"}).IsOverhead())
	assert.False((&Symbol{FullName: "Overhead"}).IsOverhead())
}

func TestNewSizeInfoMarksNonUniqueNames(t *testing.T) {
	assert := assert.New(t)

	a1 := newSym(".text", "a()", "a.cc", 10, 0)
	a2 := newSym(".text", "a()", "b.cc", 10, 0)
	b := newSym(".text", "b()", "b.cc", 10, 0)
	c := &Symbol{FullName: "c()", Flags: FlagNameNotUnique}

	info := NewSizeInfo(nil, []*Symbol{a1, a2, b, c})

	assert.NotNil(info.SectionSizes)
	assert.Len(info.Symbols, 4)
	assert.False(a1.IsNameUnique())
	assert.False(a2.IsNameUnique())
	assert.True(b.IsNameUnique())
	assert.False(c.IsNameUnique(), "Flag set by extraction should be kept")
}

func TestSymbolString(t *testing.T) {
	assert := assert.New(t)

	s := newSym(".text", "Foo::Bar()", "a.cc", 100, 4)
	assert.Equal(".text@t Foo::Bar() size=100 padding=4 path=a.cc", s.String())
	s.SourcePath = ""
	assert.Equal(".text@t Foo::Bar() size=100 padding=4 path={no path}", s.String())
}
