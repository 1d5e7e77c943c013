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

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"

	"dmgopher/curated"
)

// ProfileCPU runs the supplied function through the CPU profiler, writing
// the profile to outFile.
func ProfileCPU(outFile string, run func() error) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}
	defer f.Close()

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}
	defer pprof.StopCPUProfile()

	return run()
}

// ProfileMem writes a heap profile to outFile. The profile is taken after a
// garbage collection so that it reflects live allocations rather than
// garbage.
func ProfileMem(outFile string) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}
	defer f.Close()

	runtime.GC()
	err = pprof.WriteHeapProfile(f)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	return nil
}

// profileRun calls the run function, optionally wrapping it in the CPU
// profiler and writing a heap profile once it returns. profile files are
// named after the tag with .cpu.profile and .mem.profile extensions.
func profileRun(profile bool, tag string, run func() error) error {
	if !profile {
		return run()
	}

	runErr := ProfileCPU(tag+".cpu.profile", run)

	err := ProfileMem(tag + ".mem.profile")
	if err != nil {
		return err
	}

	return runErr
}
