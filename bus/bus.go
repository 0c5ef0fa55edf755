// Package bus is a small in-process pub/sub bus with retained messages,
// MQTT-style wildcards ("+" one level, "#" the rest) and request/reply.
//
// Delivery never blocks the publisher: a full subscriber queue drops its
// oldest message.
package bus

import (
	"context"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"clockgen-go/errcode"
)

const (
	wildOne  = "+"
	wildRest = "#"
)

// Topic is a sequence of comparable tokens, usually strings.
type Topic []any

// T builds a Topic. It panics on a token that cannot be compared, since such
// a token could never be matched.
func T(tokens ...any) Topic {
	for _, tok := range tokens {
		if tok == nil || !reflect.TypeOf(tok).Comparable() {
			panic("bus: topic token is not comparable")
		}
	}
	return Topic(tokens)
}

// Append returns a new topic with tokens added.
func (t Topic) Append(tokens ...any) Topic {
	out := make(Topic, 0, len(t)+len(tokens))
	out = append(out, t...)
	return append(out, T(tokens...)...)
}

func (t Topic) String() string {
	s := ""
	for i, tok := range t {
		if i > 0 {
			s += "/"
		}
		switch v := tok.(type) {
		case string:
			s += v
		case int:
			s += strconv.Itoa(v)
		default:
			s += "?"
		}
	}
	return s
}

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
	ReplyTo  Topic
}

type Subscription struct {
	topic Topic
	ch    chan *Message
	conn  *Connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// deliver must be called with the bus lock held.
func (s *Subscription) deliver(m *Message) {
	select {
	case s.ch <- m:
	default:
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- m:
		default:
		}
	}
}

// node is one level of the topic trie. Subscription patterns and retained
// messages share the trie; wildcard tokens only ever hold subscriptions.
type node struct {
	children map[any]*node
	subs     []*Subscription
	retained *Message
}

func (n *node) child(tok any, create bool) *node {
	c := n.children[tok]
	if c == nil && create {
		if n.children == nil {
			n.children = make(map[any]*node)
		}
		c = &node{}
		n.children[tok] = c
	}
	return c
}

func (n *node) empty() bool {
	return len(n.subs) == 0 && len(n.children) == 0 && n.retained == nil
}

type Bus struct {
	mu     sync.Mutex
	root   node
	qLen   int
	nextID atomic.Uint32
}

// NewBus creates a bus whose subscriptions buffer queueLen messages.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8
	}
	return &Bus{qLen: queueLen}
}

// NewMessage builds a message without sending it.
func (b *Bus) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

// Publish delivers msg to every matching subscription. A retained message
// replaces the one stored on its topic; a retained nil payload clears it.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if msg.Retained {
		b.retain(msg)
	}
	b.match(&b.root, msg.Topic, func(s *Subscription) { s.deliver(msg) })
}

func (b *Bus) retain(msg *Message) {
	if msg.Payload == nil {
		path := []*node{&b.root}
		n := &b.root
		for _, tok := range msg.Topic {
			if n = n.child(tok, false); n == nil {
				return
			}
			path = append(path, n)
		}
		n.retained = nil
		b.prune(path, msg.Topic)
		return
	}
	n := &b.root
	for _, tok := range msg.Topic {
		n = n.child(tok, true)
	}
	n.retained = msg
}

// match calls fn for every subscription whose pattern matches topic.
func (b *Bus) match(n *node, topic Topic, fn func(*Subscription)) {
	if h := n.children[wildRest]; h != nil {
		for _, s := range h.subs {
			fn(s)
		}
	}
	if len(topic) == 0 {
		for _, s := range n.subs {
			fn(s)
		}
		return
	}
	if c := n.children[topic[0]]; c != nil {
		b.match(c, topic[1:], fn)
	}
	if topic[0] != wildOne {
		if c := n.children[wildOne]; c != nil {
			b.match(c, topic[1:], fn)
		}
	}
}

// retainedFor calls fn for every retained message a pattern matches.
func retainedFor(n *node, pattern Topic, fn func(*Message)) {
	if len(pattern) == 0 {
		if n.retained != nil {
			fn(n.retained)
		}
		return
	}
	switch pattern[0] {
	case wildRest:
		walkRetained(n, fn)
	case wildOne:
		for tok, c := range n.children {
			if tok == wildOne || tok == wildRest {
				continue
			}
			retainedFor(c, pattern[1:], fn)
		}
	default:
		if c := n.children[pattern[0]]; c != nil {
			retainedFor(c, pattern[1:], fn)
		}
	}
}

func walkRetained(n *node, fn func(*Message)) {
	if n.retained != nil {
		fn(n.retained)
	}
	for _, c := range n.children {
		walkRetained(c, fn)
	}
}

func (b *Bus) subscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := &b.root
	for _, tok := range sub.topic {
		n = n.child(tok, true)
	}
	n.subs = append(n.subs, sub)
	retainedFor(&b.root, sub.topic, sub.deliver)
}

// unsubscribe removes sub and closes its channel.
func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := []*node{&b.root}
	n := &b.root
	for _, tok := range sub.topic {
		if n = n.child(tok, false); n == nil {
			return
		}
		path = append(path, n)
	}
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			close(sub.ch)
			break
		}
	}
	b.prune(path, sub.topic)
}

// prune removes empty nodes bottom-up along path.
func (b *Bus) prune(path []*node, topic Topic) {
	for i := len(topic); i > 0; i-- {
		if !path[i].empty() {
			return
		}
		delete(path[i-1].children, topic[i-1])
	}
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

// Connection groups the subscriptions of one service so they can be dropped
// together.
type Connection struct {
	bus  *Bus
	id   string
	mu   sync.Mutex
	subs []*Subscription
}

func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) ID() string { return c.id }

func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(topic, payload, retained)
}

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan *Message, c.bus.qLen), conn: c}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	c.bus.subscribe(sub)
	return sub
}

func (c *Connection) Unsubscribe(sub *Subscription) {
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.bus.unsubscribe(sub)
}

// Disconnect drops every subscription of the connection.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()
	for _, s := range subs {
		c.bus.unsubscribe(s)
	}
}

// ---- request/reply ----

// Request assigns msg a private reply topic, subscribes to it and publishes
// msg. The caller owns the returned subscription.
func (c *Connection) Request(msg *Message) *Subscription {
	id := c.bus.nextID.Add(1)
	msg.ReplyTo = T("_reply", c.id, int(id))
	sub := c.Subscribe(msg.ReplyTo)
	c.Publish(msg)
	return sub
}

// RequestWait sends msg and waits for the first reply or ctx.
func (c *Connection) RequestWait(ctx context.Context, msg *Message) (*Message, error) {
	sub := c.Request(msg)
	defer c.Unsubscribe(sub)
	select {
	case m := <-sub.Channel():
		return m, nil
	case <-ctx.Done():
		return nil, errcode.Wrap(errcode.Timeout, "bus.RequestWait", ctx.Err())
	}
}

// Reply answers req on its ReplyTo topic. Requests without one are ignored.
func (c *Connection) Reply(req *Message, payload any, retained bool) {
	if len(req.ReplyTo) == 0 {
		return
	}
	c.Publish(c.NewMessage(req.ReplyTo, payload, retained))
}
