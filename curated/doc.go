// This file is part of GopherSID.
//
// GopherSID is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherSID is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherSID.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with the Errorf() function. It works like
// Errorf() in the fmt package except that formatting is deferred and the
// original pattern string is retained. The pattern is what identifies a
// curated error:
//
//	e := curated.Errorf("ports: %v", err)
//
//	if curated.Is(e, "ports: %v") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar to Is() but checks the whole error chain
// rather than just the outermost error. IsAny() answers whether an error is
// curated at all, which is useful for separating expected errors from
// unexpected ones.
package curated
