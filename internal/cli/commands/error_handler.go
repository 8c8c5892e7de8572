package commands

import (
	"fmt"
	"os"

	"sandboxdash/internal/errors"
	"sandboxdash/internal/logger"
)

// HandleError processes errors and provides user-friendly output
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	de, ok := errors.As(err)
	if !ok {
		return err
	}

	// Log the full error for debugging
	logger.WithError(err).Debug("Command failed")

	switch de.Code {
	case errors.ErrNetworkConnection:
		return fmt.Errorf("%v\n\nTip: Check that the backend is running and that backends.*.url in the config points at it", err)
	case errors.ErrUnauthorized:
		return fmt.Errorf("%v\n\nTip: Set the backend token with %s or %s", err, "SANDBOXDASH_VIRSH_TOKEN", "SANDBOXDASH_TMUX_TOKEN")
	case errors.ErrTimeout:
		return fmt.Errorf("%v\n\nTip: Raise backends.http_timeout if the backend is slow to answer", err)
	case errors.ErrConfigNotFound:
		return fmt.Errorf("%v\n\nTip: Run 'sandboxdash config init' to create one", err)
	case errors.ErrConfigParse, errors.ErrConfigValidation:
		return fmt.Errorf("%v\n\nTip: Run 'sandboxdash config show' to see the effective configuration", err)
	case errors.ErrAlreadyInUse:
		return fmt.Errorf("%v\n\nTip: Another dashboard is already running with this state directory", err)
	default:
		return err
	}
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch errors.GetCode(err) {
	case "":
		if err == nil {
			return 0
		}
		return 1
	case errors.ErrConfigNotFound, errors.ErrNotFound:
		return 2 // No such file or directory
	case errors.ErrConfigParse, errors.ErrConfigValidation, errors.ErrInvalidInput:
		return 64 // usage
	case errors.ErrNetworkConnection, errors.ErrTimeout, errors.ErrAPICall:
		return 69 // service unavailable
	case errors.ErrAlreadyInUse:
		return 75 // temporary failure
	default:
		return 1
	}
}

// ExitOnError handles errors consistently across CLI commands
func ExitOnError(err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", HandleError(err))
	os.Exit(ExitCode(err))
}
