package comm

import (
	"bufio"
	"net"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"

	"github.com/go-fleet/fieldsync/crdt"
)

// Structs

// Receiver accepts incoming snapshot messages from peers and merges each
// delivered payload into the local set.
type Receiver struct {
	logger   log.Logger
	name     string
	socket   net.Listener
	set      *crdt.GSet[string]
	applied  metrics.Counter
	rejected metrics.Counter
}

// Functions

// InitReceiver initializes a Receiver for the named agent bound to the
// supplied listening socket. Call AcceptIncMsgs to start serving.
func InitReceiver(logger log.Logger, name string, socket net.Listener, set *crdt.GSet[string], applied metrics.Counter, rejected metrics.Counter) *Receiver {

	return &Receiver{
		logger:   logger,
		name:     name,
		socket:   socket,
		set:      set,
		applied:  applied,
		rejected: rejected,
	}
}

// AcceptIncMsgs loops over incoming connections on the receiver's socket
// and dispatches each one to a goroutine applying the delivered snapshots.
// It returns when the underlying socket is closed.
func (recv *Receiver) AcceptIncMsgs() error {

	for {

		// Accept request or fail on error.
		conn, err := recv.socket.Accept()
		if err != nil {
			return err
		}

		// Dispatch to goroutine.
		go recv.HandleConnection(conn)
	}
}

// HandleConnection reads newline-terminated sync messages from one peer
// connection and merges each delivered snapshot into the local set. A
// malformed message is logged and skipped, messages after it on the same
// connection are still applied.
func (recv *Receiver) HandleConnection(conn net.Conn) {

	defer conn.Close()

	reader := bufio.NewReader(conn)

	for {

		msgRaw, err := reader.ReadString('\n')
		if err != nil {
			// Connection drained or went away. Either way the peer
			// will deliver its state again on a future round.
			return
		}

		msg, err := Parse(strings.TrimRight(msgRaw, "\n"))
		if err != nil {

			recv.rejected.Add(1)

			level.Warn(recv.logger).Log(
				"msg", "discarding malformed sync message",
				"err", err,
			)

			continue
		}

		// Integrate the delivered snapshot.
		SyncPair(recv.set, msg.Elements)

		recv.applied.Add(1)

		level.Debug(recv.logger).Log(
			"msg", "merged snapshot from peer",
			"peer", msg.Agent,
			"sync_id", msg.ID,
			"size", recv.set.Size(),
		)
	}
}
