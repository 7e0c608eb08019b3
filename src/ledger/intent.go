package ledger

import (
	"context"
	"fmt"
	"log"
)

// RecoverPendingTransfers compensates transfers that stopped between their
// two legs. CommitTransfer debits the source pocket in the same database
// transaction that records the pending intent, and credits the destination in
// the transaction that marks the intent complete; a pending intent therefore
// always means "source debited, destination never credited". Recovery credits
// the amount back to the source and marks the intent reversed.
//
// Meant to run at startup or from the admin recovery endpoint, while no other
// writer is active.
func RecoverPendingTransfers(ctx context.Context, store Store) (int, error) {
	intents, err := store.ListPendingIntents(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending intents: %w", err)
	}

	recovered := 0
	for _, intent := range intents {
		fromPocket, err := store.GetPocket(ctx, intent.UserID, intent.FromPocket)
		if err != nil {
			log.Printf("ERROR: Transfer recovery %s: load source pocket %d: %v", intent.Token, intent.FromPocket, err)
			continue
		}
		if err := store.UpdatePocketBalance(ctx, fromPocket.ID, fromPocket.Balance+intent.Amount); err != nil {
			log.Printf("ERROR: Transfer recovery %s: restore source pocket %d: %v", intent.Token, fromPocket.ID, err)
			continue
		}
		if err := store.MarkIntentReversed(ctx, intent.Token); err != nil {
			log.Printf("ERROR: Transfer recovery %s: mark reversed: %v", intent.Token, err)
			continue
		}

		log.Printf("INFO: Reversed incomplete transfer %s (user %d, amount %.2f)", intent.Token, intent.UserID, intent.Amount)
		recovered++
	}
	return recovered, nil
}
