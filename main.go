package main

import (
	"context"
	"time"

	"clockgen-go/bus"
	"clockgen-go/internal/platform"
	"clockgen-go/services/bridge"
	"clockgen-go/services/clock"
	"clockgen-go/services/config"
	"clockgen-go/services/heartbeat"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot, board", config.SelectedBoard)

	cfg := config.Selected()
	if err := config.Validate(cfg); err != nil {
		fatal(err)
	}
	h, err := platform.Build(cfg)
	if err != nil {
		fatal(err)
	}

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, config.SelectedBoard)
	b := bus.NewBus(8)

	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))
	if h.Link != nil {
		bridge.New(bridge.Dialer(h.Link)).Start(ctx, b.NewConnection("bridge"))
	}
	_ = clock.New(h, cfg).Start(ctx, b.NewConnection("clock"))

	select {}
}

// fatal keeps reporting err; there is nothing to fall back to without a
// working board.
func fatal(err error) {
	for {
		println("[main] fatal:", err.Error())
		time.Sleep(5 * time.Second)
	}
}
