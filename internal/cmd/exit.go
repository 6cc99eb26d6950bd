// Package cmd provides CLI command implementations.
package cmd

// Exit codes of the forge CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates user input failed validation.
	ExitValidationError = 2

	// ExitBuildError indicates the generation request could not be built.
	ExitBuildError = 3

	// ExitRenderError indicates template rendering failed.
	ExitRenderError = 4

	// ExitIOError indicates a filesystem operation failed.
	ExitIOError = 5

	// ExitCancelled indicates the user cancelled the wizard.
	ExitCancelled = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitBuildError:
		return "Build Error"
	case ExitRenderError:
		return "Render Error"
	case ExitIOError:
		return "IO Error"
	case ExitCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}
