package workspace

import (
	"time"

	"github.com/GriffinCanCode/DeskShell/backend/internal/domain/shell"
)

// Config tunes every workspace of a Manager
type Config struct {
	// PIN is the login code; flow.DefaultPIN when empty
	PIN           string
	ResetOnLogout bool
	// IdleTTL evicts workspaces nobody touched for this long; zero keeps them forever
	IdleTTL  time.Duration
	Viewport shell.Viewport
}
