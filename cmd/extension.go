package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

const (
	EnvConfigFile = "RENTROLL_CONFIG"
	EnvDatabase   = "RENTROLL_DATABASE_DSN"
	EnvVerbose    = "RENTROLL_VERBOSE"
)

// RunExtension attempts to find and execute an external rr-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "rr-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		Logger.WithError(err).Debugf("external command %q not found", externalCmdName)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = append(os.Environ(), extensionEnv()...)

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

// extensionEnv returns the global flags as environment variables.
func extensionEnv() []string {
	env := []string{
		EnvConfigFile + "=" + *configPath,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
	if *dbSource != "" {
		env = append(env, EnvDatabase+"="+*dbSource)
	}
	return env
}
