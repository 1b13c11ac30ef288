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

type options struct {
	logger         hclog.Logger
	sectionWorkers int
}

func defaultOptions() *options {
	return &options{
		logger:         hclog.NewNullLogger(),
		sectionWorkers: 1,
	}
}

// Option configures Diff.
type Option func(*options)

// WithLogger sets the logger used to report the progress of the match passes.
// By default nothing is logged.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSectionWorkers matches the symbols of different sections concurrently,
// using up to n goroutines. The same pairs are produced as with a single
// worker, but the deltas are ordered by section first. Values of 0 and 1
// disable concurrent matching.
func WithSectionWorkers(n int) Option {
	return func(o *options) {
		o.sectionWorkers = n
	}
}
