package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment variables passing the global flags to extensions. They are the
// variables the config package reads, so an extension loading its settings with
// config.Load gets the same ones.
const (
	EnvLayout  = "STMT_LAYOUT"
	EnvVerbose = "STMT_LOG_LEVEL"
)

// RunExtension attempts to find and execute an external stmt-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "stmt-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables, only when set so that the
	// extension falls back on the .env file like we do.
	cmd.Env = os.Environ()
	if *layout != "" {
		cmd.Env = append(cmd.Env, EnvLayout+"="+*layout)
	}
	if *verbose != "" {
		cmd.Env = append(cmd.Env, EnvVerbose+"="+*verbose)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
