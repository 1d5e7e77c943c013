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

package main

import (
	"fmt"
	"os"
	"strings"

	"dmgopher/cartridgeloader"
	"dmgopher/debugger"
	"dmgopher/debugger/terminal"
	"dmgopher/debugger/terminal/colorterm"
	"dmgopher/debugger/terminal/plainterm"
	"dmgopher/logger"
	"dmgopher/modalflag"
	"dmgopher/performance"
	"dmgopher/playmode"
	"dmgopher/statsview"
)

// #mainthread
//
// Everything runs in the main goroutine. SDL requires that window creation
// and event servicing happen on the main thread, and the emulation services
// the GUI from inside its own run loop, so there is nothing to gain from
// additional goroutines at this level.
func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "DEBUG", "PERFORMANCE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		fallthrough

	case "PLAY":
		err = play(md)

	case "DEBUG":
		err = debug(md)

	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	scaling := md.AddFloat64("scale", 2.0, "window scaling")
	wav := md.AddString("wav", "", "record audio to wav file")
	skipBoot := md.AddBool("skipboot", false, "skip the boot sequence, starting from the post-boot state")
	stats := md.AddBool("statsview", false, "run stats server")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(md.Output)
		} else {
			fmt.Println("* stats server not available. compile with statsview build tag.")
		}
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		cartload := cartridgeloader.NewLoader(md.GetArg(0))
		return playmode.Play(float32(*scaling), *wav, *skipBoot, cartload)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	scaling := md.AddFloat64("scale", 2.0, "window scaling")
	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")
	skipBoot := md.AddBool("skipboot", false, "skip the boot sequence, starting from the post-boot state")
	profile := md.AddBool("profile", false, "run debugger through cpu profiler")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	var term terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to plain\n", *termType)
		fallthrough
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	case "COLOR":
		term = &colorterm.ColorTerminal{}
	}

	dbg, err := debugger.NewDebugger(float32(*scaling), *skipBoot)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge required for %s mode", md)

	case 1:
		dbgRun := func() error {
			cartload := cartridgeloader.NewLoader(md.GetArg(0))
			return dbg.Start(term, cartload)
		}

		if *profile {
			err := performance.ProfileCPU("debug.cpu.profile", dbgRun)
			if err != nil {
				return err
			}
			err = performance.ProfileMem("debug.mem.profile")
			if err != nil {
				return err
			}
		} else {
			err := dbgRun()
			if err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	display := md.AddBool("display", false, "display emulated screen")
	scaling := md.AddFloat64("scale", 2.0, "display scaling (only valid if -display=true)")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddBool("profile", false, "produce cpu and memory profiling reports")
	stats := md.AddBool("statsview", false, "run stats server")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(md.Output)
		} else {
			fmt.Println("* stats server not available. compile with statsview build tag.")
		}
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("cartridge required for %s mode", md)
	case 1:
		cartload := cartridgeloader.NewLoader(md.GetArg(0))
		return performance.Check(md.Output, *profile, *display, float32(*scaling), *duration, cartload)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}
