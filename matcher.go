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
	"regexp"
	"strings"
)

var (
	// Macros that use __LINE__ in names and linker symbols like ".L.ref.tmp.2"
	// end in a run of digits and periods.
	numberSuffixRegex = regexp.MustCompile(`[.0-9]+$`)
	// "* symbol gap 3 (bar)" -> "* symbol gaps"
	starSymbolRegex = regexp.MustCompile(`\s+\d+( \(.*\))?$`)
)

const cloneMarker = " [clone "

// Matcher is a strategy for pairing symbols across snapshots. Two symbols are
// paired by a matcher if it derives the same key for both of them.
type Matcher int

const (
	// MatchExact matches symbols with the same section, name, path and size.
	// This catches the unchanged symbols, which are usually the majority.
	// Matching on size keeps string literals, which all share a name, from
	// shifting when one is added.
	MatchExact Matcher = iota
	// MatchSizeChanged is MatchExact without the size.
	MatchSizeChanged
	// MatchSignatureChanged matches on the short name, so changes to the
	// signature of a function are tolerated.
	MatchSignatureChanged
	// MatchNameOnly matches on the full name alone to account for file moves.
	// Symbols with a name that is ambiguous within their snapshot are never
	// matched by it.
	MatchNameOnly
)

// matchers is the order the passes are run in, from strictest to loosest.
var matchers = [...]Matcher{MatchExact, MatchSizeChanged, MatchSignatureChanged, MatchNameOnly}

// MatchKey is the identity a Matcher derives for a symbol. Fields not used by
// a matcher are left at their zero value.
type MatchKey struct {
	Section Section
	Name    string
	Path    string
	Size    int64
}

func (m Matcher) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchSizeChanged:
		return "size-changed"
	case MatchSignatureChanged:
		return "signature-changed"
	case MatchNameOnly:
		return "name-only"
	}
	return fmt.Sprintf("Matcher(%d)", int(m))
}

// nameCounts holds the number of symbols per full name in one snapshot.
type nameCounts map[string]int

func countNames(symbols []*Symbol) nameCounts {
	counts := make(nameCounts, len(symbols))
	for _, s := range symbols {
		counts[s.FullName]++
	}
	return counts
}

// unique reports whether the symbol's full name occurs at most once. A nil
// nameCounts only consults the symbol's flags.
func (c nameCounts) unique(s *Symbol) bool {
	return s.IsNameUnique() && c[s.FullName] <= 1
}

// Key returns the key of the symbol. If ok is false, the symbol can't be
// matched by this matcher. Name uniqueness is taken from the symbol's flags.
func (m Matcher) Key(s *Symbol) (key MatchKey, ok bool) {
	return m.key(s, nil)
}

// key is Key with the full name counts of the symbol's snapshot.
func (m Matcher) key(s *Symbol, names nameCounts) (MatchKey, bool) {
	switch m {
	case MatchExact:
		return MatchKey{
			Section: s.Section,
			Name:    stripNumberSuffix(s.FullName),
			Path:    s.Path(),
			Size:    s.Size,
		}, true
	case MatchSizeChanged:
		return MatchKey{
			Section: s.Section,
			Name:    stripNumberSuffix(s.FullName),
			Path:    s.Path(),
		}, true
	case MatchSignatureChanged:
		return MatchKey{
			Section: s.Section,
			Name:    normalizeShortName(s.ShortName()),
			Path:    s.Path(),
		}, true
	case MatchNameOnly:
		if !names.unique(s) {
			return MatchKey{}, false
		}
		return MatchKey{Section: s.Section, Name: s.FullName}, true
	}
	panic("unknown matcher: " + m.String())
}

func stripNumberSuffix(name string) string {
	return numberSuffixRegex.ReplaceAllString(name, "")
}

func normalizeShortName(name string) string {
	name = stripNumberSuffix(name)
	if idx := strings.Index(name, cloneMarker); idx != -1 {
		name = name[:idx]
	}
	if strings.HasPrefix(name, "*") {
		name = starSymbolRegex.ReplaceAllString(name, "s")
	}
	return name
}
