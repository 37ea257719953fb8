package config

import (
	"time"

	"github.com/nats-io/nats.go"
)

var Nats *nats.Conn

func ConnectNats() error {
	if len(Environment.NatsURL) == 0 {
		Logger.Warn("NATS_URL not set, events disabled")
		return nil
	}

	options := []nats.Option{
		nats.Name("goleiroon"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				Logger.Warnf("NATS disconnected: %v", err)
			}
		}),
	}

	if len(Environment.NatsUser) > 0 {
		options = append(options, nats.UserInfo(Environment.NatsUser, Environment.NatsPass))
	}

	n, err := nats.Connect(Environment.NatsURL, options...)
	if err != nil {
		return err
	}

	Nats = n

	return nil
}
