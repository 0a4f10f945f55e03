package nmos

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeServerOptions(t *testing.T) {
	server, err := NewNodeServer("192.168.56.1",
		WithHTTPPort(8086),
		WithInstanceID("node-0"),
		WithExpectedStreamCount(2),
	)
	require.NoError(t, err)
	require.Equal(t, "node-0", server.InstanceID())
	require.Equal(t, "192.168.56.1", server.InterfaceIP())
	require.False(t, server.HasAllStreams())
}

func TestNodeServerRequiresInterface(t *testing.T) {
	_, err := NewNodeServer("")
	require.Error(t, err)
}

func TestNodeServerRejectsBadPort(t *testing.T) {
	_, err := NewNodeServer("192.168.56.1", WithHTTPPort(-1))
	require.Error(t, err)
}

func TestNodeServerGeneratesInstanceID(t *testing.T) {
	a, err := NewNodeServer("192.168.56.1")
	require.NoError(t, err)
	b, err := NewNodeServer("192.168.56.1")
	require.NoError(t, err)
	require.NotEmpty(t, a.InstanceID())
	require.NotEqual(t, a.InstanceID(), b.InstanceID())
}

func TestHandleActivation(t *testing.T) {
	var handled []string
	server, err := NewNodeServer("192.168.56.1",
		WithExpectedStreamCount(2),
		WithActivationFunc(func(id, sdp string) bool {
			handled = append(handled, id)
			return true
		}),
	)
	require.NoError(t, err)

	require.True(t, server.HandleActivation("rx-video", "v=0\r\n"))
	require.False(t, server.HasAllStreams())
	require.True(t, server.HandleActivation("rx-audio", "v=0\r\n"))
	require.True(t, server.HasAllStreams())

	require.Equal(t, 2, server.SourceCount())
	require.Equal(t, []string{"rx-video", "rx-audio"}, handled)

	// deactivation carries no SDP and is not recorded
	require.True(t, server.HandleActivation("rx-video", ""))
	require.Equal(t, 2, server.SourceCount())
}

func TestReceivedSDPsReturnsACopy(t *testing.T) {
	server, err := NewNodeServer("192.168.56.1")
	require.NoError(t, err)

	server.HandleActivation("rx-0", "first")
	sdps := server.ReceivedSDPs()
	require.Equal(t, []string{"first"}, sdps)

	sdps[0] = "mutated"
	require.Equal(t, []string{"first"}, server.ReceivedSDPs())
}

func TestConcurrentActivations(t *testing.T) {
	server, err := NewNodeServer("192.168.56.1", WithExpectedStreamCount(64))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			server.HandleActivation(fmt.Sprintf("rx-%d", n), fmt.Sprintf("v=0\r\ns=stream-%d\r\n", n))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 64, server.SourceCount())
	require.Len(t, server.ReceivedSDPs(), 64)
	require.True(t, server.HasAllStreams())
}

func TestCloseDropsLateActivations(t *testing.T) {
	server, err := NewNodeServer("192.168.56.1")
	require.NoError(t, err)

	require.True(t, server.HandleActivation("rx-0", "v=0\r\n"))
	require.NoError(t, server.Close())
	require.NoError(t, server.Close())

	require.False(t, server.HandleActivation("rx-1", "v=0\r\n"))
	require.Equal(t, 1, server.SourceCount())
}
