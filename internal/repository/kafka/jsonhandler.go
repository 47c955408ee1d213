package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NordCoder/Foodcart/internal/obs/retry"
)

// JSONHandler decodes the value into T. Undecodable values are permanent
// failures: retrying them cannot succeed.
func JSONHandler[T any](handle func(context.Context, []byte, T) error) Handler {
	return func(ctx context.Context, key, value []byte) error {
		var msg T
		if err := json.Unmarshal(value, &msg); err != nil {
			return retry.Permanent(fmt.Errorf("decode message: %w", err))
		}
		return handle(ctx, key, msg)
	}
}
