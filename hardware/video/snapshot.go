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

package video

import (
	"encoding/binary"
	"io"
)

// Snapshot the state of the video chip.
func (vid *Video) Snapshot() *Video {
	n := *vid
	return &n
}

// Plumb a previously snapshotted video state back in. The attached
// renderers and triggers of the receiving chip are kept.
func (vid *Video) Plumb(snapshot *Video) {
	vid.mode = snapshot.mode
	vid.clock = snapshot.clock
	vid.line = snapshot.line
	vid.windowLine = snapshot.windowLine
	vid.frameNum = snapshot.frameNum
	vid.frame = snapshot.frame
	vid.lcdWasEnabled = snapshot.lcdWasEnabled
}

type serialisedVideo struct {
	Mode          uint8
	Clock         int64
	Line          int64
	WindowLine    int64
	FrameNum      int64
	LCDWasEnabled uint8
}

// Serialise the video chip's timing counters. The frame buffer is not
// serialised; it is fully regenerated by the end of the next frame.
func (vid *Video) Serialise(w io.Writer) error {
	s := serialisedVideo{
		Mode:       uint8(vid.mode),
		Clock:      int64(vid.clock),
		Line:       int64(vid.line),
		WindowLine: int64(vid.windowLine),
		FrameNum:   int64(vid.frameNum),
	}
	if vid.lcdWasEnabled {
		s.LCDWasEnabled = 0x01
	}
	return binary.Write(w, binary.LittleEndian, s)
}

// Deserialise the video chip's timing counters.
func (vid *Video) Deserialise(r io.Reader) error {
	var s serialisedVideo
	if err := binary.Read(r, binary.LittleEndian, &s); err != nil {
		return err
	}
	vid.mode = Mode(s.Mode)
	vid.clock = int(s.Clock)
	vid.line = int(s.Line)
	vid.windowLine = int(s.WindowLine)
	vid.frameNum = int(s.FrameNum)
	vid.lcdWasEnabled = s.LCDWasEnabled != 0x00
	vid.frame = FrameBuffer{}
	return nil
}
