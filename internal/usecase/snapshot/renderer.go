package snapshot

import (
	"fmt"
	"io"

	snapshotv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/snapshot/v1"
)

// Render writes the PRINT block for a snapshot: the SELL side then the BUY
// side, each header followed by one `<price> <quantity>` line per resting
// order. The snapshot already carries both sides in print order, so this is
// a straight serialization.
func Render(w io.Writer, snapshot *snapshotv1.Snapshot) error {
	if _, err := fmt.Fprintln(w, "SELL:"); err != nil {
		return err
	}
	for _, order := range snapshot.Asks {
		if _, err := fmt.Fprintf(w, "%d %d\n", order.Price, order.Quantity); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "BUY:"); err != nil {
		return err
	}
	for _, order := range snapshot.Bids {
		if _, err := fmt.Fprintf(w, "%d %d\n", order.Price, order.Quantity); err != nil {
			return err
		}
	}

	return nil
}
