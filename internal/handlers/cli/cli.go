package cli

import (
	"context"
	"os"

	"github.com/gabapcia/txprogress/internal/txprogress"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the txprogress CLI application.
//
// It registers all available commands, including:
//
//   - `track`: Follows a transaction until it is included and indexed.
//   - `track-identity`: Follows an identity creation transaction.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - svc: The txprogress service implementation used by the commands.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, svc txprogress.Service) error {
	return newApp(svc).Run(ctx, os.Args)
}

func newApp(svc txprogress.Service) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "txprogress",
		Description:           "Command-line interface for following transactions until they are included and indexed.",
		Usage:                 "txprogress [command] [flags]",
		Commands: []*cli.Command{
			trackTransactionCommand(svc),
			trackIdentityCommand(svc),
		},
	}
}
