package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/txprogress/internal/pkg/validator"
	"github.com/gabapcia/txprogress/internal/txprogress"

	"github.com/urfave/cli/v3"
)

// commonFlags are the flags shared by every tracking command.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:     "chain-id",
			Usage:    "Id of the chain the transaction was sent to (e.g., 137)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "tx-hash",
			Usage:    "Hash of the submitted transaction",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "pending",
			Usage: "Text shown while the transaction is being tracked",
		},
		&cli.StringFlag{
			Name:  "success",
			Usage: "Text shown once tracking succeeds",
			Value: "Transaction completed",
		},
		&cli.StringFlag{
			Name:  "error",
			Usage: "Text shown when a failure carries no message of its own",
			Value: "Transaction failed",
		},
	}
}

func messagesFromFlags(c *cli.Command) txprogress.Messages {
	return txprogress.Messages{
		Pending: c.String("pending"),
		Success: c.String("success"),
		Error:   c.String("error"),
	}
}

// report prints the id captured by a flow. Requests rejected before any
// notification was shown are reported through a standalone error
// notification.
func report(ctx context.Context, c *cli.Command, svc txprogress.Service, result txprogress.Result, err error) error {
	if err != nil {
		if errors.Is(err, validator.ErrValidationFailed) {
			svc.ShowError(ctx, err)
		}
		return err
	}

	if result.EntityID != "" {
		fmt.Fprintln(c.Root().Writer, result.EntityID)
	}

	return nil
}

// trackTransactionCommand returns a CLI command that follows a transaction
// through inclusion and, when a URI is given, indexing of its off-chain data.
//
// Usage example:
//
//	txprogress track --chain-id 137 --tx-hash 0xABC... --entity service --uri Qm...
func trackTransactionCommand(svc txprogress.Service) *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:     "entity",
			Usage:    "Name of the indexed entity (e.g., service, proposal)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "uri",
			Usage: "Content id of the off-chain data written by the transaction",
		},
	)

	return &cli.Command{
		Name:        "track",
		Description: "Follow a transaction until it is included and its data is indexed.",
		Usage:       "Tracks a transaction. Prints the indexed entity id when a URI is given.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			result, err := svc.TrackTransaction(ctx, txprogress.TransactionRequest{
				ChainID:  c.Int64("chain-id"),
				Messages: messagesFromFlags(c),
				TxHash:   c.String("tx-hash"),
				Entity:   c.String("entity"),
				URI:      c.String("uri"),
			})

			return report(ctx, c, svc, result, err)
		},
	}
}

// trackIdentityCommand returns a CLI command that follows an identity
// creation transaction until the user is indexed.
//
// Usage example:
//
//	txprogress track-identity --chain-id 137 --tx-hash 0xABC... --address 0xDEF...
func trackIdentityCommand(svc txprogress.Service) *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:     "address",
			Usage:    "Address of the user owning the identity",
			Required: true,
		},
	)

	return &cli.Command{
		Name:        "track-identity",
		Description: "Follow an identity creation transaction until the user is indexed.",
		Usage:       "Tracks an identity creation. Prints the user id.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			result, err := svc.TrackIdentityCreation(ctx, txprogress.IdentityRequest{
				ChainID:  c.Int64("chain-id"),
				Messages: messagesFromFlags(c),
				TxHash:   c.String("tx-hash"),
				Address:  c.String("address"),
			})

			return report(ctx, c, svc, result, err)
		},
	}
}
