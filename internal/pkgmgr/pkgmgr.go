// Package pkgmgr implements the package-manager capability: a single
// privileged apt invocation per install. Updates are deliberately absent;
// system packages stay under the system package manager's authority.
package pkgmgr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and captures its combined output.
type Runner interface {
	Run(ctx context.Context, command string, args []string) ([]byte, error)
}

// CmdRunner is the production Runner over os/exec.
type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}

var _ Runner = CmdRunner{}

// Apt installs OS packages through apt-get, optionally via sudo.
type Apt struct {
	Runner Runner
	Sudo   bool
}

// NewApt returns an Apt installer using the real command runner. Sudo is on
// by default; package installs need elevated privileges on most hosts.
func NewApt() *Apt {
	return &Apt{Runner: CmdRunner{}, Sudo: true}
}

// InstallPackage runs one privileged install for the named package.
func (a *Apt) InstallPackage(ctx context.Context, name string) error {
	command := "apt-get"
	args := []string{"install", "-y", name}
	if a.Sudo {
		command = "sudo"
		args = append([]string{"apt-get"}, args...)
	}

	output, err := a.Runner.Run(ctx, command, args)
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("apt-get install %s: %v: %s", name, err, detail)
		}
		return fmt.Errorf("apt-get install %s: %w", name, err)
	}
	return nil
}
