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

// Package logger is the central log for the emulation. There is no need for
// more than one log so the package level functions are the entire interface.
// Components add entries with Log() and Logf(); hosts retrieve them with
// Write(), WriteRecent() and Tail(); SetEcho() mirrors new entries to an
// io.Writer as they arrive.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Entry represents a single line/entry in the log.
type Entry struct {
	Timestamp time.Time
	tag       string
	detail    string
	repeated  int
}

func (e *Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.tag, e.detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// not exposing logger to outside of the package. the package level functions
// can be used to log to the central logger.
type logger struct {
	maxEntries int
	entries    []Entry

	// the index of the first entry not yet seen by WriteRecent()
	recentStart int

	echo io.Writer
}

func newLogger(maxEntries int) *logger {
	return &logger{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0, maxEntries),
	}
}

func (l *logger) log(tag, detail string) {
	// remove all newline characters from tag and detail string
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	// collapse a run of identical entries into one entry with a repeat count
	if len(l.entries) > 0 {
		e := &l.entries[len(l.entries)-1]
		if e.tag == tag && e.detail == detail {
			e.repeated++
			e.Timestamp = time.Now()
			return
		}
	}

	l.entries = append(l.entries, Entry{Timestamp: time.Now(), tag: tag, detail: detail})

	// maintain maximum length
	if len(l.entries) > l.maxEntries {
		crop := len(l.entries) - l.maxEntries
		l.entries = l.entries[crop:]
		l.recentStart -= crop
		if l.recentStart < 0 {
			l.recentStart = 0
		}
	}

	if l.echo != nil {
		io.WriteString(l.echo, l.entries[len(l.entries)-1].String())
	}
}

func (l *logger) logf(tag, detail string, args ...interface{}) {
	l.log(tag, fmt.Sprintf(detail, args...))
}

func (l *logger) clear() {
	l.entries = l.entries[:0]
	l.recentStart = 0
}

func (l *logger) write(output io.Writer) {
	if output == nil {
		return
	}
	for i := range l.entries {
		io.WriteString(output, l.entries[i].String())
	}
}

func (l *logger) writeRecent(output io.Writer) {
	if output != nil {
		for i := l.recentStart; i < len(l.entries); i++ {
			io.WriteString(output, l.entries[i].String())
		}
	}
	l.recentStart = len(l.entries)
}

func (l *logger) tail(output io.Writer, number int) {
	if output == nil {
		return
	}

	// cap number to the number of entries
	if number > len(l.entries) {
		number = len(l.entries)
	}

	for i := len(l.entries) - number; i < len(l.entries); i++ {
		io.WriteString(output, l.entries[i].String())
	}
}

func (l *logger) setEcho(output io.Writer, writeRecent bool) {
	l.echo = output
	if writeRecent {
		l.writeRecent(output)
	}
}
