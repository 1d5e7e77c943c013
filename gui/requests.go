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

package gui

// FeatureReq is used to request the setting of a gui attribute, for example
// toggling the visibility of the window.
type FeatureReq string

// FeatureReqData represents the information associated with a FeatureReq.
// See commentary for the defined FeatureReq values for the underlying type.
type FeatureReqData interface{}

// List of valid feature requests. Argument must be of the type specified or
// else the interface{} type conversion will fail and the request will be
// rejected with an error.
const (
	// the channel over which the gui sends its events
	ReqSetEventChan FeatureReq = "ReqSetEventChan" // chan Event

	// whether the gui window is visible
	ReqSetVisibility FeatureReq = "ReqSetVisibility" // bool

	// the amount of scaling applied to the emulated screen
	ReqSetScale FeatureReq = "ReqSetScale" // float32

	// whether the gui should hold the emulation to the frame rate of the
	// machine. turned off by the performance mode
	ReqSetFpsCap FeatureReq = "ReqSetFpsCap" // bool

	// the title of the gui window. set when a cartridge is attached
	ReqSetWindowTitle FeatureReq = "ReqSetWindowTitle" // string
)
