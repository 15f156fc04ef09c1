package opts

import (
	"github.com/walteh/retrofit/pkg/config"
	"github.com/walteh/retrofit/pkg/log"
)

// RootOpts contains shared options used by all commands. The root command fills
// it in before any subcommand runs.
type RootOpts struct {
	Config *config.Config
	Logger *log.Logger
}
