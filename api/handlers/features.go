// ABOUTME: Feature flag checks shared by the toolbar action handlers
// ABOUTME: Disabled features answer 403 instead of running

package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"reader-assist/pkg/featureflags"
)

func requireFeature(ctx context.Context, flag featureflags.FeatureFlag) error {
	if !featureflags.IsEnabled(ctx, flag) {
		return huma.Error403Forbidden("feature disabled: " + string(flag))
	}
	return nil
}
