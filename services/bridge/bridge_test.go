package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"clockgen-go/bus"
	"clockgen-go/errcode"
	"clockgen-go/types"
)

var linkCfg = types.BridgeConfig{
	UART: types.UARTConfig{ID: "uart0", Baud: 115200, TX: 0, RX: 1},
	Ping: types.Duration(20 * time.Millisecond),
}

// peer is the far end of a net.Pipe link. Frames it reads are queued on in.
type peer struct {
	c  net.Conn
	in chan Frame
	wr *framedWriter
}

func newPeer(c net.Conn) *peer {
	p := &peer{c: c, in: make(chan Frame, 64), wr: newFramedWriter(c)}
	go func() {
		defer close(p.in)
		rd := newFramedReader(c)
		for {
			f, err := rd.ReadFrame()
			if err != nil {
				return
			}
			p.in <- f
		}
	}()
	return p
}

// next returns the first frame of type typ, skipping others.
func (p *peer) next(t *testing.T, typ byte) Frame {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case f, ok := <-p.in:
			if !ok {
				t.Fatalf("link closed waiting for frame %#x", typ)
			}
			if f.Type == typ {
				return f
			}
		case <-timeout:
			t.Fatalf("timeout waiting for frame %#x", typ)
		}
	}
}

// pipeDialer hands out one net.Pipe per dial and queues the far ends.
func pipeDialer(peers chan<- *peer, dials *atomic.Int32) Dialer {
	return func(ctx context.Context, u types.UARTConfig) (io.ReadWriteCloser, error) {
		dials.Add(1)
		local, remote := net.Pipe()
		peers <- newPeer(remote)
		return local, nil
	}
}

func waitState(t *testing.T, sub *bus.Subscription, status string) types.ServiceState {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case m := <-sub.Channel():
			st := m.Payload.(types.ServiceState)
			if st.Status == status {
				return st
			}
		case <-timeout:
			t.Fatalf("timeout waiting for bridge state %q", status)
		}
	}
}

func start(t *testing.T, dial Dialer) (*Service, *bus.Connection, *bus.Subscription) {
	t.Helper()
	b := bus.NewBus(32)
	conn := b.NewConnection("bridge_test")
	states := conn.Subscribe(TopicState)
	s := New(dial)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Run(ctx, conn)
	}()
	t.Cleanup(func() { cancel(); <-done })
	waitState(t, states, "awaiting_config")
	return s, conn, states
}

func TestLinkMirrorsRetainedState(t *testing.T) {
	peers := make(chan *peer, 4)
	var dials atomic.Int32
	s, conn, states := start(t, pipeDialer(peers, &dials))

	conn.Publish(conn.NewMessage(bus.T("clock", "state", "mode"), types.ModeValue{Mode: "run", TS: 7}, true))
	conn.Publish(conn.NewMessage(TopicConfig, linkCfg, true))
	waitState(t, states, "link_established")
	p := <-peers

	topic, js, ok := DecodePub(p.next(t, framePub).Payload)
	if !ok || topic != "clock/state/mode" {
		t.Fatalf("first publish %q ok=%v", topic, ok)
	}
	var mv types.ModeValue
	if err := json.Unmarshal(js, &mv); err != nil || mv.Mode != "run" || mv.TS != 7 {
		t.Fatalf("mode payload %s: %v", js, err)
	}

	conn.Publish(conn.NewMessage(bus.T("clock", "state", "output"),
		types.OutputValue{State: "hardware", MilliHz: 1000}, true))
	topic, js, _ = DecodePub(p.next(t, framePub).Payload)
	var ov types.OutputValue
	if err := json.Unmarshal(js, &ov); err != nil || topic != "clock/state/output" || ov.MilliHz != 1000 {
		t.Fatalf("output frame %q %s", topic, js)
	}

	// Not under clock/state, so not mirrored.
	conn.Publish(conn.NewMessage(bus.T("config", "heartbeat"), types.HeartbeatConfig{}, true))
	p.next(t, framePing)
	if sent, _ := s.Frames(); sent != 2 {
		t.Fatalf("sent %d publish frames, want 2", sent)
	}
}

func TestPeerPingAndRequest(t *testing.T) {
	peers := make(chan *peer, 4)
	var dials atomic.Int32
	_, conn, states := start(t, pipeDialer(peers, &dials))

	responder := conn.Subscribe(bus.T("clock", "cmd", "status"))
	go func() {
		for m := range responder.Channel() {
			conn.Reply(m, types.OutputValue{State: "software", Sample: 3}, false)
		}
	}()

	conn.Publish(conn.NewMessage(TopicConfig, `{"uart":{"id":"uart0","baud":9600,"tx_pin":0,"rx_pin":1}}`, true))
	waitState(t, states, "link_established")
	p := <-peers

	if err := p.wr.WriteFrame(Frame{Type: framePing}); err != nil {
		t.Fatalf("ping: %v", err)
	}
	p.next(t, framePong)

	if err := p.wr.WriteFrame(Frame{Type: frameReq, Payload: []byte("clock/cmd/status")}); err != nil {
		t.Fatalf("request: %v", err)
	}
	topic, js, _ := DecodePub(p.next(t, frameRep).Payload)
	var ov types.OutputValue
	if err := json.Unmarshal(js, &ov); err != nil || topic != "clock/cmd/status" || ov.Sample != 3 {
		t.Fatalf("reply %q %s", topic, js)
	}

	if err := p.wr.WriteFrame(Frame{Type: frameReq, Payload: []byte("clock/#")}); err != nil {
		t.Fatalf("request: %v", err)
	}
	_, js, _ = DecodePub(p.next(t, frameRep).Payload)
	var st types.ServiceState
	if err := json.Unmarshal(js, &st); err != nil || st.Status != string(errcode.InvalidParams) {
		t.Fatalf("wildcard request reply %s", js)
	}
}

func TestLinkLossRedials(t *testing.T) {
	peers := make(chan *peer, 4)
	var dials atomic.Int32
	_, conn, states := start(t, pipeDialer(peers, &dials))

	conn.Publish(conn.NewMessage(TopicConfig, linkCfg, true))
	waitState(t, states, "link_established")
	p := <-peers
	_ = p.c.Close()

	st := waitState(t, states, "link_lost_retrying")
	if st.Level != "degraded" || st.Error == "" {
		t.Fatalf("lost state %+v", st)
	}
	waitState(t, states, "link_established")
	if dials.Load() != 2 {
		t.Fatalf("dials = %d", dials.Load())
	}
}

func TestDialFailureRetries(t *testing.T) {
	var dials atomic.Int32
	_, conn, states := start(t, func(context.Context, types.UARTConfig) (io.ReadWriteCloser, error) {
		dials.Add(1)
		return nil, errors.New("no such port")
	})
	conn.Publish(conn.NewMessage(TopicConfig, linkCfg, true))
	waitState(t, states, "dial_failed_retrying")
	waitState(t, states, "dial_failed_retrying")
	if dials.Load() < 2 {
		t.Fatalf("dials = %d", dials.Load())
	}
}

func TestNoDialerAndBadConfig(t *testing.T) {
	_, conn, states := start(t, nil)

	conn.Publish(conn.NewMessage(TopicConfig, 42, false))
	st := waitState(t, states, "config_decode_failed")
	if st.Level != "error" {
		t.Fatalf("decode state %+v", st)
	}
	conn.Publish(conn.NewMessage(TopicConfig, &linkCfg, false))
	waitState(t, states, "transport_init_failed")
}

func TestDecodeConfig(t *testing.T) {
	c, err := decodeConfig([]byte(`{"uart":{"id":"uart1","baud":57600,"tx_pin":4,"rx_pin":5,"parity":"even"},"ping":"1s"}`))
	if err != nil || c.UART.ID != "uart1" || c.UART.Parity != "even" || c.Ping.D() != time.Second {
		t.Fatalf("decoded %+v, %v", c, err)
	}
	if _, err := decodeConfig("{"); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("bad json: %v", err)
	}
	if _, err := decodeConfig((*types.BridgeConfig)(nil)); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("nil config: %v", err)
	}
}

func TestBackoffDoubles(t *testing.T) {
	next := backoffSeq(250*time.Millisecond, time.Second)
	want := []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, time.Second, time.Second}
	for i, w := range want {
		if got := next(); got != w {
			t.Fatalf("step %d: %v want %v", i, got, w)
		}
	}
}
