package maincmd

import gears "github.com/andrewgrz/gears-lang"

// exitCodeFor turns a command error into the process exit status set out
// by the host API: 0 ok, 1 runtime error, 2 compile error, 3 I/O error.
// Main only calls it with a non-nil error (a nil error exits with
// mainer.Success), so a code of 0 from gears.ExitCode is turned into 1.
func exitCodeFor(err error) int {
	code := gears.ExitCode(err)
	if code == 0 {
		return 1
	}
	return code
}
