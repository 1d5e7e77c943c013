// This file is part of DMGopher.
//
// DMGopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DMGopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DMGopher.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the error type. All errors
// originating in DMGopher should be created with curated.Errorf(). Errors
// are built from a pattern string and optional values, in the manner of
// fmt.Errorf(). Keeping hold of the pattern allows a received error to be
// matched with Is() and Has() without string comparison gymnastics at the
// call site.
//
// A nice property of curated errors is de-duplication of error message
// chains. If an error is wrapped by a pattern that repeats the message of
// the wrapped error, the duplicate part only appears once in the output of
// Error().
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan). For example:
//
//	part 1: part 2: part 3
//
// There is no special provision for sentinel errors in the curated package
// but they are achievable in practice through the use of the Is() and Has()
// functions. Sentinel patterns should be stored as a const string, suitably
// named and commented.
package curated
