package engines

import "context"

// Worker handles one NATS message payload.
type Worker interface {
	Process(payload []byte) error
}

// Runner is implemented by workers that also need a background loop.
type Runner interface {
	Run(ctx context.Context)
}
