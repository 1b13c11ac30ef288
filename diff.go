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

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// Diff computes the difference between two snapshots. Every symbol of both
// snapshots ends up in exactly one delta: matched symbols are paired, the
// rest are reported as added or removed.
//
// Symbols are matched in four passes, from the strictest key to the loosest.
// Each pass only sees the symbols the previous passes left unmatched. The
// deltas are ordered by pass, then added, then removed, followed by one
// padding overhead record per section whose aggregate padding changed.
func Diff(before, after *SizeInfo, opts ...Option) (*DeltaSizeInfo, error) {
	if before == nil || after == nil {
		return nil, ErrNilSizeInfo
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.sectionWorkers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, o.sectionWorkers)
	}
	if err := checkSymbols("before", before.Symbols); err != nil {
		return nil, err
	}
	if err := checkSymbols("after", after.Symbols); err != nil {
		return nil, err
	}

	// Uniqueness is judged over the whole snapshot, whether or not the
	// symbols were flagged by NewSizeInfo.
	names := snapshotNames{
		before: countNames(before.Symbols),
		after:  countNames(after.Symbols),
	}
	padding := newPaddingAccumulator()
	var deltas DeltaSymbols
	if o.sectionWorkers > 1 {
		var err error
		deltas, err = diffSymbolsBySection(before.Symbols, after.Symbols, names, padding, o)
		if err != nil {
			return nil, fmt.Errorf("error when matching sections: %w", err)
		}
	} else {
		deltas = diffSymbols(before.Symbols, after.Symbols, names, padding, o.logger)
	}
	// Matched symbols with a changed size report zero padding. To not lose the
	// information entirely, it's stored in aggregate.
	deltas = append(deltas, padding.records()...)

	o.logger.Debug("diff complete", "deltas", len(deltas))
	return &DeltaSizeInfo{
		Before:       before,
		After:        after,
		SectionSizes: diffSectionSizes(before.SectionSizes, after.SectionSizes),
		Symbols:      deltas,
	}, nil
}

func checkSymbols(side string, symbols []*Symbol) error {
	for i, s := range symbols {
		if s == nil {
			return fmt.Errorf("%s snapshot, symbol %d: %w", side, i, ErrNilSymbol)
		}
	}
	return nil
}

// diffSectionSizes subtracts the section sizes. A section missing from one of
// the snapshots counts as zero.
func diffSectionSizes(before, after map[string]int64) map[string]int64 {
	ret := make(map[string]int64, len(after))
	for name, size := range before {
		ret[name] = after[name] - size
	}
	for name, size := range after {
		if _, ok := before[name]; !ok {
			ret[name] = size
		}
	}
	return ret
}

func diffSymbols(before, after []*Symbol, names snapshotNames, padding *paddingAccumulator, logger hclog.Logger) DeltaSymbols {
	// Usually more than 90% of the symbols are exact matches, so most of the
	// time is spent in the first pass.
	deltas := make(DeltaSymbols, 0, max(len(before), len(after)))
	for _, m := range matchers {
		var pairs DeltaSymbols
		pairs, before, after = matchSymbols(before, after, m, names, padding, logger)
		deltas = append(deltas, pairs...)
	}

	logger.Debug("creating unmatched symbols", "added", len(after), "removed", len(before))
	for _, s := range after {
		deltas = append(deltas, &DeltaSymbol{After: s})
	}
	for _, s := range before {
		deltas = append(deltas, &DeltaSymbol{Before: s})
	}
	return deltas
}

type sectionSymbols struct {
	before []*Symbol
	after  []*Symbol
}

// partitionBySection splits the symbols by section identifier, keeping the
// snapshot order within each section. The sections are returned sorted.
func partitionBySection(before, after []*Symbol) ([]Section, map[Section]*sectionSymbols) {
	parts := make(map[Section]*sectionSymbols)
	get := func(s Section) *sectionSymbols {
		p, ok := parts[s]
		if !ok {
			p = &sectionSymbols{}
			parts[s] = p
		}
		return p
	}
	for _, s := range before {
		p := get(s.Section)
		p.before = append(p.before, s)
	}
	for _, s := range after {
		p := get(s.Section)
		p.after = append(p.after, s)
	}

	sections := make([]Section, 0, len(parts))
	for s := range parts {
		sections = append(sections, s)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i] < sections[j] })
	return sections, parts
}

// diffSymbolsBySection runs the match passes for each section concurrently.
// Every key contains the section, so no pair can cross a section boundary.
func diffSymbolsBySection(before, after []*Symbol, names snapshotNames, padding *paddingAccumulator, o *options) (DeltaSymbols, error) {
	sections, parts := partitionBySection(before, after)

	results := make([]DeltaSymbols, len(sections))
	accumulators := make([]*paddingAccumulator, len(sections))

	var g errgroup.Group
	g.SetLimit(o.sectionWorkers)
	for i, section := range sections {
		i, section := i, section
		p := parts[section]
		g.Go(func() error {
			accumulators[i] = newPaddingAccumulator()
			logger := o.logger.With("section", section.String())
			results[i] = diffSymbols(p.before, p.after, names, accumulators[i], logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	deltas := make(DeltaSymbols, 0, max(len(before), len(after)))
	for i := range sections {
		deltas = append(deltas, results[i]...)
		padding.merge(accumulators[i])
	}
	return deltas, nil
}
