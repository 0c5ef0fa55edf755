// Package bridge mirrors the clock's retained state onto a serial link and
// answers status requests from the far end.
//
// The link carries length-prefixed frames. A publish frame holds a topic, a
// NUL byte and the JSON payload. Every time the link comes up the retained
// state is sent again, so the peer never needs to ask for a resync.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"clockgen-go/bus"
	"clockgen-go/errcode"
	"clockgen-go/types"
	"clockgen-go/x/timex"
)

var (
	TopicConfig = bus.T("config", "bridge")
	TopicState  = bus.T("bridge", "state")

	// Forward is the pattern mirrored to the peer.
	Forward = bus.T("clock", "state", "#")
)

const (
	defaultPing    = 5 * time.Second
	requestTimeout = time.Second
)

// Dialer opens the configured UART. Platform code supplies it.
type Dialer func(ctx context.Context, u types.UARTConfig) (io.ReadWriteCloser, error)

type Service struct {
	dial Dialer

	mu     sync.Mutex
	conn   *bus.Connection
	curRun context.CancelFunc
	done   chan struct{}

	sent atomic.Uint32
	recv atomic.Uint32
}

func New(dial Dialer) *Service { return &Service{dial: dial} }

// Start runs the service in its own goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.Run(ctx, conn)
}

// Run waits for config on config/bridge and supervises one link at a time.
// It returns when ctx is cancelled.
func (s *Service) Run(ctx context.Context, conn *bus.Connection) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	cfgSub := conn.Subscribe(TopicConfig)
	defer conn.Unsubscribe(cfgSub)

	s.publishState("idle", "awaiting_config", nil)

	for {
		select {
		case <-ctx.Done():
			s.stopCurrent()
			return
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				s.publishState("error", "config_subscription_closed", nil)
				return
			}
			cfg, err := decodeConfig(msg.Payload)
			if err != nil {
				s.publishState("error", "config_decode_failed", err)
				continue
			}
			s.reconfigure(ctx, cfg)
		}
	}
}

// Frames reports how many publish frames were sent and received.
func (s *Service) Frames() (sent, recv uint32) { return s.sent.Load(), s.recv.Load() }

// stopCurrent cancels the running link and waits for it to release the port.
func (s *Service) stopCurrent() {
	s.mu.Lock()
	cancel, done := s.curRun, s.done
	s.curRun, s.done = nil, nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

func (s *Service) reconfigure(parent context.Context, cfg types.BridgeConfig) {
	s.stopCurrent()
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.mu.Lock()
	s.curRun, s.done = cancel, done
	s.mu.Unlock()
	go func() {
		defer close(done)
		s.runLink(ctx, cfg)
	}()
}

// ---- link supervision ----

func (s *Service) runLink(ctx context.Context, cfg types.BridgeConfig) {
	if s.dial == nil {
		s.publishState("error", "transport_init_failed",
			errcode.New(errcode.Unsupported, "bridge.dial", "no uart on this platform"))
		return
	}
	ping := cfg.Ping.D()
	if ping <= 0 {
		ping = defaultPing
	}

	backoff := backoffSeq(250*time.Millisecond, 5*time.Second)
	for {
		if ctx.Err() != nil {
			return
		}
		rwc, err := s.dial(ctx, cfg.UART)
		if err != nil {
			s.publishState("degraded", "dial_failed_retrying", err)
			if !sleep(ctx, backoff()) {
				return
			}
			continue
		}

		s.publishState("up", "link_established", nil)
		err = s.handleLink(ctx, rwc, ping)
		_ = rwc.Close()
		if err == nil {
			s.publishState("idle", "link_closed", nil)
			return
		}
		s.publishState("degraded", "link_lost_retrying", err)
		if !sleep(ctx, backoff()) {
			return
		}
	}
}

// handleLink owns one link until ctx ends (nil) or the link fails.
func (s *Service) handleLink(ctx context.Context, rwc io.ReadWriteCloser, ping time.Duration) error {
	conn := s.connection()
	rd := newFramedReader(rwc)
	wr := newFramedWriter(rwc)

	state := conn.Subscribe(Forward)
	defer conn.Unsubscribe(state)

	errCh := make(chan error, 1)
	go func() {
		for {
			f, err := rd.ReadFrame()
			if err != nil {
				errCh <- err
				return
			}
			switch f.Type {
			case framePing:
				err = wr.WriteFrame(Frame{Type: framePong})
			case frameReq:
				err = s.answer(ctx, wr, string(f.Payload))
			case framePub:
				s.recv.Add(1)
			case frameClose:
				err = io.EOF
			}
			if err != nil {
				errCh <- err
				return
			}
		}
	}()

	tick := time.NewTicker(ping)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = wr.WriteFrame(Frame{Type: frameClose})
			return nil
		case err := <-errCh:
			return errcode.Wrap(errcode.IOError, "bridge.link", err)
		case <-tick.C:
			if err := wr.WriteFrame(Frame{Type: framePing}); err != nil {
				return errcode.Wrap(errcode.IOError, "bridge.link", err)
			}
		case m, ok := <-state.Channel():
			if !ok {
				return nil
			}
			p, err := encodePub(m.Topic.String(), m.Payload)
			if err != nil {
				println("[bridge] cannot encode", m.Topic.String(), err.Error())
				continue
			}
			if err := wr.WriteFrame(Frame{Type: framePub, Payload: p}); err != nil {
				return errcode.Wrap(errcode.IOError, "bridge.link", err)
			}
			s.sent.Add(1)
		}
	}
}

// answer forwards a peer request to the local bus and writes the reply as a
// reply frame on the same topic.
func (s *Service) answer(ctx context.Context, wr *framedWriter, topic string) error {
	t, ok := parseTopic(topic)
	var payload any
	if !ok {
		payload = types.ServiceState{Level: "error", Status: string(errcode.InvalidParams)}
	} else {
		conn := s.connection()
		rctx, cancel := context.WithTimeout(ctx, requestTimeout)
		reply, err := conn.RequestWait(rctx, conn.NewMessage(t, nil, false))
		cancel()
		if err != nil {
			payload = types.ServiceState{Level: "error", Status: string(errcode.Of(err))}
		} else {
			payload = reply.Payload
		}
	}
	p, err := encodePub(topic, payload)
	if err != nil {
		return err
	}
	return wr.WriteFrame(Frame{Type: frameRep, Payload: p})
}

func (s *Service) connection() *bus.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

// ---- framing ----

const (
	framePing  byte = 0x01
	framePong  byte = 0x02
	framePub   byte = 0x10
	frameReq   byte = 0x14
	frameRep   byte = 0x15
	frameClose byte = 0x7f
)

const maxFrame = 0xFFFF

// Frame is a type byte, a big-endian 16-bit length and the payload.
type Frame struct {
	Type    byte
	Payload []byte
}

type framedReader struct{ r io.Reader }

// framedWriter is shared by the link loop and the reader, so writes are
// serialised.
type framedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newFramedReader(r io.Reader) *framedReader { return &framedReader{r: r} }
func newFramedWriter(w io.Writer) *framedWriter { return &framedWriter{w: w} }

func (fr *framedReader) ReadFrame() (Frame, error) {
	var hdr [3]byte
	if _, err := io.ReadFull(fr.r, hdr[:]); err != nil {
		return Frame{}, err
	}
	n := int(hdr[1])<<8 | int(hdr[2])
	var buf []byte
	if n > 0 {
		buf = make([]byte, n)
		if _, err := io.ReadFull(fr.r, buf); err != nil {
			return Frame{}, err
		}
	}
	return Frame{Type: hdr[0], Payload: buf}, nil
}

func (fw *framedWriter) WriteFrame(f Frame) error {
	if len(f.Payload) > maxFrame {
		return errcode.New(errcode.InvalidParams, "bridge.WriteFrame", "frame too large")
	}
	buf := make([]byte, 0, 3+len(f.Payload))
	buf = append(buf, f.Type, byte(len(f.Payload)>>8), byte(len(f.Payload)))
	buf = append(buf, f.Payload...)
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, err := fw.w.Write(buf)
	return err
}

func encodePub(topic string, payload any) ([]byte, error) {
	js, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(topic)+1+len(js))
	out = append(out, topic...)
	out = append(out, 0)
	return append(out, js...), nil
}

// DecodePub splits a publish or reply frame payload.
func DecodePub(p []byte) (topic string, js []byte, ok bool) {
	i := bytes.IndexByte(p, 0)
	if i < 0 {
		return "", nil, false
	}
	return string(p[:i]), p[i+1:], true
}

func parseTopic(s string) (bus.Topic, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, "/")
	t := make(bus.Topic, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "+" || p == "#" {
			return nil, false
		}
		t = append(t, p)
	}
	return t, true
}

// ---- utilities ----

func decodeConfig(p any) (types.BridgeConfig, error) {
	const op = "bridge.config"
	var cfg types.BridgeConfig
	var raw []byte
	switch v := p.(type) {
	case types.BridgeConfig:
		return v, nil
	case *types.BridgeConfig:
		if v == nil {
			return cfg, errcode.New(errcode.InvalidParams, op, "nil config")
		}
		return *v, nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return cfg, errcode.New(errcode.InvalidParams, op, "unsupported payload type")
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, errcode.Wrap(errcode.InvalidParams, op, err)
	}
	return cfg, nil
}

func (s *Service) publishState(level, status string, err error) {
	st := types.ServiceState{Level: level, Status: status, TS: timex.NowMs()}
	if err != nil {
		st.Error = err.Error()
	}
	conn := s.connection()
	conn.Publish(conn.NewMessage(TopicState, st, true))
}

func backoffSeq(min, max time.Duration) func() time.Duration {
	if min <= 0 {
		min = 100 * time.Millisecond
	}
	if max < min {
		max = min
	}
	cur := min
	return func() time.Duration {
		d := cur
		cur *= 2
		if cur > max {
			cur = max
		}
		return d
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
