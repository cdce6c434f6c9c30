//go:build unix

package compile

import (
	"os/exec"
	"syscall"
)

// TeX engines may fork helpers (mktextfm, kpsewhich). Running the engine in its
// own process group lets a timeout kill all of them.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
