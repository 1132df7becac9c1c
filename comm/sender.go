package comm

import (
	"fmt"
	"net"
	"sync"
	"time"

	"crypto/tls"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/satori/go.uuid"
)

// Structs

// Sender bundles information needed for broadcasting local set snapshots
// to all peers of an agent.
type Sender struct {
	lock      *sync.Mutex
	logger    log.Logger
	name      string
	tlsConfig *tls.Config
	interval  time.Duration
	snapshot  func() []string
	sent      metrics.Counter
	peers     map[string]string
	down      chan struct{}
}

// Functions

// InitSender initializes a Sender for the named agent and starts its
// broadcast routine in the background. The snapshot function is consulted
// at the start of every round for the payload to send out. Pass a nil TLS
// config to connect to peers in the clear. It returns a channel to be
// closed when the broadcast routine should stop.
func InitSender(logger log.Logger, name string, tlsConfig *tls.Config, interval time.Duration, snapshot func() []string, sent metrics.Counter, peers map[string]string) chan struct{} {

	sender := &Sender{
		lock:      &sync.Mutex{},
		logger:    logger,
		name:      name,
		tlsConfig: tlsConfig,
		interval:  interval,
		snapshot:  snapshot,
		sent:      sent,
		peers:     peers,
		down:      make(chan struct{}),
	}

	// Start broadcasting routine in background.
	go sender.BroadcastRounds()

	return sender.down
}

// BroadcastRounds sends the current snapshot to all peers once per
// configured interval until the down channel is closed. There is no
// durable send log: a peer missed in one round simply receives the
// full state again in a later one, which merges to the same result.
func (sender *Sender) BroadcastRounds() {

	ticker := time.NewTicker(sender.interval)
	defer ticker.Stop()

	for {

		select {

		case <-sender.down:
			return

		case <-ticker.C:
			sender.SendSnapshot()
		}
	}
}

// SendSnapshot marshals the current payload into one sync message and
// writes it to every configured peer. Unreachable peers are skipped
// after a warning.
func (sender *Sender) SendSnapshot() {

	// Lock mutex so that concurrent rounds do not interleave.
	sender.lock.Lock()
	defer sender.lock.Unlock()

	// Create a new unique message ID and compose
	// the downstream sync message.
	msg := &Message{
		ID:       uuid.NewV4().String(),
		Agent:    sender.name,
		Elements: sender.snapshot(),
	}

	for peer, addr := range sender.peers {

		err := sender.sendToPeer(addr, msg)
		if err != nil {

			level.Warn(sender.logger).Log(
				"msg", fmt.Sprintf("could not deliver snapshot to peer %s, retrying next round", peer),
				"err", err,
			)

			continue
		}

		sender.sent.Add(1)

		level.Debug(sender.logger).Log(
			"msg", "delivered snapshot to peer",
			"peer", peer,
			"sync_id", msg.ID,
			"elements", len(msg.Elements),
		)
	}
}

// sendToPeer connects to one peer and writes msg
// as a single newline-terminated line.
func (sender *Sender) sendToPeer(addr string, msg *Message) error {

	var conn net.Conn
	var err error

	if sender.tlsConfig != nil {
		conn, err = tls.Dial("tcp", addr, sender.tlsConfig)
	} else {
		conn, err = net.Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = fmt.Fprintf(conn, "%s\n", msg)

	return err
}
