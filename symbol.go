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
	"strings"

	"github.com/ianlancetaylor/demangle"
)

// SymbolFlags holds boolean properties of a symbol.
type SymbolFlags uint16

const (
	// FlagNameNotUnique marks a symbol whose full name is shared by at least one
	// other symbol of the same snapshot.
	FlagNameNotUnique SymbolFlags = 1 << iota
)

// Has reports whether all bits of flag are set.
func (f SymbolFlags) Has(flag SymbolFlags) bool {
	return f&flag == flag
}

// overheadPrefix is the full name prefix of symbols that account for bytes
// not owned by any real code or data symbol.
const overheadPrefix = "Overhead: "

// Symbol is a representation of a sized entity in a binary, for example a
// function, a global variable or a string literal.
type Symbol struct {
	// Section is the section identifier the symbol is located in.
	Section Section `json:"section"`
	// SectionName is the name of the section as found in the binary.
	SectionName string `json:"sectionName"`
	// Name is the short name of the symbol. For functions this is the name
	// without the parameter list.
	Name string `json:"name,omitempty"`
	// FullName is the fully qualified name, including the signature.
	FullName string `json:"fullName"`
	// SourcePath is the path of the source file that defined the symbol.
	SourcePath string `json:"sourcePath,omitempty"`
	// ObjectPath is the path of the object file the symbol was linked from.
	ObjectPath string `json:"objectPath,omitempty"`
	// Size is the size of the symbol in bytes, excluding padding.
	Size int64 `json:"size"`
	// Padding is the number of alignment bytes following the symbol.
	Padding int64 `json:"padding"`
	// NumAliases is the number of symbols sharing this symbol's address,
	// including the symbol itself. Zero is treated as one.
	NumAliases int `json:"numAliases,omitempty"`
	// Flags holds additional properties of the symbol.
	Flags SymbolFlags `json:"flags,omitempty"`
}

// ShortName returns the short name of the symbol. If no short name was given,
// it's derived from the full name by dropping the parameter list.
func (s *Symbol) ShortName() string {
	if s.Name != "" {
		return s.Name
	}
	return shortNameFromFull(s.FullName)
}

// Path returns the source path, or the object path if the source is unknown.
// Object paths of native files contain the target name, which can get
// renamed, so the source path is preferred.
func (s *Symbol) Path() string {
	if s.SourcePath != "" {
		return s.SourcePath
	}
	return s.ObjectPath
}

// SizeWithPadding is the number of bytes the symbol occupies in its section.
func (s *Symbol) SizeWithPadding() int64 {
	return s.Size + s.Padding
}

func (s *Symbol) aliases() int {
	if s.NumAliases < 1 {
		return 1
	}
	return s.NumAliases
}

// PSS returns the proportional size of the symbol, including padding.
func (s *Symbol) PSS() float64 {
	return float64(s.SizeWithPadding()) / float64(s.aliases())
}

// PaddingPSS returns the share of the padding attributed to this symbol.
func (s *Symbol) PaddingPSS() float64 {
	return float64(s.Padding) / float64(s.aliases())
}

// IsNameUnique returns true if no other symbol in the snapshot has the same
// full name.
func (s *Symbol) IsNameUnique() bool {
	return !s.Flags.Has(FlagNameNotUnique)
}

// IsOverhead returns true for symbols that represent bookkeeping bytes rather
// than code or data.
func (s *Symbol) IsOverhead() bool {
	return strings.HasPrefix(s.FullName, overheadPrefix)
}

// String returns a string summary of the symbol.
func (s *Symbol) String() string {
	path := s.Path()
	if path == "" {
		path = "{no path}"
	}
	return fmt.Sprintf("%s@%s %s size=%d padding=%d path=%s", s.SectionName, s.Section, s.FullName, s.Size, s.Padding, path)
}

func shortNameFromFull(full string) string {
	if strings.HasPrefix(full, "_Z") {
		if name, err := demangle.ToString(full, demangle.NoParams); err == nil {
			return name
		}
	}
	return stripParams(full)
}

var paramQualifiers = []string{" const", " volatile", " &&", " &"}

// stripParams removes a trailing parameter list, and any qualifiers after it,
// from a demangled name: "ns::Foo(int, Bar<(char)1>) const" becomes "ns::Foo".
func stripParams(name string) string {
	trimmed := name
	for changed := true; changed; {
		changed = false
		for _, q := range paramQualifiers {
			if strings.HasSuffix(trimmed, q) {
				trimmed = strings.TrimSuffix(trimmed, q)
				changed = true
			}
		}
	}
	if !strings.HasSuffix(trimmed, ")") {
		return name
	}
	depth := 0
	for i := len(trimmed) - 1; i >= 0; i-- {
		switch trimmed[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				if i == 0 {
					return name
				}
				return trimmed[:i]
			}
		}
	}
	return name
}
