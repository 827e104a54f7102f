package app

import (
	"context"

	"jobboard/internal/observability"
)

func analyticsPayload(ctx context.Context, values map[string]string) map[string]string {
	payload := make(map[string]string, len(values)+1)
	for key, value := range values {
		payload[key] = value
	}
	if requestID := observability.RequestIDFromContext(ctx); requestID != "" {
		payload["request_id"] = requestID
	}
	return payload
}
