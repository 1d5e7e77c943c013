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

// Package gui defines the operations that can be performed on the visual
// user interface without knowledge of the implementation.
package gui

// GUI defines the operations that can be performed on visual user
// interfaces.
type GUI interface {
	// Send a request to set a GUI feature.
	SetFeature(request FeatureReq, args ...FeatureReqData) error

	// Service the user interface. Must be called regularly, from the same
	// goroutine as the rest of the emulation, which in practice means once
	// per frame.
	Service()
}

// sentinel errors for GUI implementations.
const (
	UnsupportedGuiFeature = "unsupported gui feature: %v"
)
