package keeper

import (
	"context"
)

// EndBlocker runs once per block: it exports the in-process metrics snapshot
// as an SDK event so indexers can consume module telemetry without a scrape
// endpoint.
func (k Keeper) EndBlocker(ctx context.Context) error {
	sdkCtx, ok := unwrapSDKContext(ctx)
	if !ok {
		return nil
	}
	k.metrics.EmitMetricsEvent(sdkCtx)
	return nil
}
