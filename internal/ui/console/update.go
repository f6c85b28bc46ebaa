package console

import (
	"context"
	"fmt"

	"github.com/gopak/scoopx/internal/logging"
)

// RunUpdateBuckets pulls every bucket. Buckets that failed are listed but do
// not fail the command.
func (c *ConsoleUI) RunUpdateBuckets(ctx context.Context) error {
	sum, err := c.m.UpdateBuckets(ctx)
	if err != nil {
		return err
	}
	if sum.Err != nil {
		return sum.Err
	}
	fmt.Fprintln(c.out)
	if len(sum.Failed) == 0 {
		logging.Success(glyphSuccess + " Updated all buckets")
		return nil
	}
	for _, f := range sum.Failed {
		logging.Warn(fmt.Sprintf("bucket '%s' was not updated", f.Bucket))
	}
	logging.Warn(fmt.Sprintf("%s Updated %d of %d buckets", glyphFail,
		len(sum.Updated), len(sum.Updated)+len(sum.Failed)))
	return nil
}
