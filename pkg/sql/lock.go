package sql

import (
	"context"
	"fmt"
	"hash/fnv"
)

// lockName is mapped onto the bigint key space of postgres advisory locks.
type lockName string

func (n lockName) id() int64 {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(n))
	return int64(hash.Sum64())
}

// lockTx blocks until the advisory lock is acquired, it is released with the end of tx.
func lockTx(ctx context.Context, tx ClientTx, name lockName) error {
	_, err := tx.ExecContext(ctx, "select pg_advisory_xact_lock($1)", name.id())
	if err != nil {
		return fmt.Errorf("acquire advisory lock %s: %w", name, err)
	}

	return nil
}
