package redis

import (
	"context"
	"encoding/json"
)

func (s *subscriber) handleMessage(ctx context.Context, payload []byte) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		s.logger.Warnf(ctx, "invalid relayed event: %v", err)
		return
	}
	if env.Origin == s.instance {
		return
	}
	if env.Event.Type == "" {
		s.logger.Warnf(ctx, "relayed event without type from %s", env.Origin)
		return
	}
	s.local.Publish(ctx, env.Event)
}
