package redis

import (
	"context"
	"encoding/json"

	"sos-srv/internal/realtime"
)

var _ realtime.Publisher = &publisher{}

func (p *publisher) Publish(ctx context.Context, ev realtime.Event) {
	p.local.Publish(ctx, ev)

	data, err := json.Marshal(envelope{Origin: p.instance, Event: ev})
	if err != nil {
		p.logger.Errorf(ctx, "internal.realtime.delivery.redis.Publish.Marshal: %v", err)
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := p.redis.Publish(ctx, Channel, data); err != nil {
			p.logger.Warnf(ctx, "internal.realtime.delivery.redis.Publish: type=%s err=%v", ev.Type, err)
		}
	}()
}

// Wait blocks until in-flight relays finish.
func (p *publisher) Wait() {
	p.wg.Wait()
}
