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

import "errors"

var (
	// ErrNilSizeInfo is returned if one of the snapshots given to Diff is nil.
	ErrNilSizeInfo = errors.New("size info is nil")
	// ErrNilSymbol is returned if a snapshot's symbol list contains a nil entry.
	ErrNilSymbol = errors.New("symbol is nil")
	// ErrInvalidWorkerCount is returned when a negative number of section workers is requested.
	ErrInvalidWorkerCount = errors.New("invalid section worker count")
)
