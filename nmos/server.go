// Package nmos adapts an NMOS IS-04/IS-05 node runtime to the SDP parser. The
// runtime delivers RTP connection activations on its own threads; this package
// owns the mutex-protected list those callbacks append received SDP text to,
// and hands safe copies to readers.
package nmos

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ActivationFunc is invoked after an activation is recorded, outside the list
// lock. Returning false tells the runtime to reject the activation.
type ActivationFunc func(id, sdp string) bool

// NodeServer owns the received-SDP list for one NMOS node instance. It is
// constructed before any callback can fire and must be closed only after the
// runtime has joined its callback threads, so the list strictly outlives all
// callbacks.
type NodeServer struct {
	mu          sync.Mutex
	sdps        []string
	sourceCount int
	closed      bool

	instanceID  string
	interfaceIP string
	httpPort    int
	expected    int
	onActivate  ActivationFunc
	log         zerolog.Logger
}

// NodeServerOption customizes a NodeServer during construction.
type NodeServerOption func(s *NodeServer) error

// NewNodeServer creates the node-side state for one NMOS node instance bound
// to the given host interface.
func NewNodeServer(interfaceIP string, options ...NodeServerOption) (*NodeServer, error) {
	if interfaceIP == "" {
		return nil, fmt.Errorf("nmos: interface ip is required")
	}

	s := &NodeServer{
		instanceID:  uuid.NewString(),
		interfaceIP: interfaceIP,
		httpPort:    8086,
	}
	s.log = log.Logger.With().Str("nmos", s.instanceID).Logger()

	for _, o := range options {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	s.log.Info().Str("interface", interfaceIP).Int("port", s.httpPort).Msg("NMOS node server created")
	return s, nil
}

// WithHTTPPort sets the node API port, 8086 by default. The server records
// and logs it; nothing in this package contacts a registry.
func WithHTTPPort(port int) NodeServerOption {
	return func(s *NodeServer) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("nmos: invalid http port %d", port)
		}
		s.httpPort = port
		return nil
	}
}

// WithExpectedStreamCount sets how many stream activations the node waits for
// before HasAllStreams reports true.
func WithExpectedStreamCount(count int) NodeServerOption {
	return func(s *NodeServer) error {
		s.expected = count
		return nil
	}
}

// WithInstanceID overrides the generated node instance identifier.
func WithInstanceID(id string) NodeServerOption {
	return func(s *NodeServer) error {
		s.instanceID = id
		s.log = log.Logger.With().Str("nmos", id).Logger()
		return nil
	}
}

// WithActivationFunc registers a callback run after each recorded activation.
func WithActivationFunc(fn ActivationFunc) NodeServerOption {
	return func(s *NodeServer) error {
		s.onActivate = fn
		return nil
	}
}

// InstanceID returns the node instance identifier.
func (s *NodeServer) InstanceID() string {
	return s.instanceID
}

// InterfaceIP returns the host interface the node is bound to.
func (s *NodeServer) InterfaceIP() string {
	return s.interfaceIP
}

// HandleActivation records one RTP connection activation delivered by the
// NMOS runtime. An empty sdp means the connection was deactivated and only
// logs. The callback, if any, runs outside the lock; the lock scope is the
// list append alone.
func (s *NodeServer) HandleActivation(id, sdp string) bool {
	if sdp == "" {
		s.log.Info().Str("id", id).Msg("Connection deactivated via NMOS")
		return true
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn().Str("id", id).Msg("Activation after node server close, dropping")
		return false
	}
	s.sdps = append(s.sdps, sdp)
	s.sourceCount++
	s.mu.Unlock()

	s.log.Info().Str("id", id).Msg("Connection activated via NMOS")
	if s.onActivate != nil {
		return s.onActivate(id, sdp)
	}
	return true
}

// ReceivedSDPs returns a copy of the SDP texts accumulated so far, in arrival
// order.
func (s *NodeServer) ReceivedSDPs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sdps))
	copy(out, s.sdps)
	return out
}

// SourceCount returns how many activations have been recorded.
func (s *NodeServer) SourceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourceCount
}

// HasAllStreams reports whether the expected number of stream activations has
// arrived. Always false when no expectation was configured.
func (s *NodeServer) HasAllStreams() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expected > 0 && s.sourceCount >= s.expected
}

// Close marks the server down. The NMOS runtime joins its callback threads
// before teardown returns, so activations arriving after Close indicate a
// lifecycle bug and are dropped.
func (s *NodeServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.log.Info().Msg("Destroying NMOS node server")
	return nil
}
