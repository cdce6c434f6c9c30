//go:build !unix

package compile

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}
