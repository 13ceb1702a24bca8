package oscbridge

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bms/bmscore/internal/bmstime"
	"github.com/go-bms/bmscore/internal/chart"
	"github.com/go-bms/bmscore/internal/model"
)

func listenUDP(t *testing.T) (*net.UDPConn, int) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	_, portStr, err := net.SplitHostPort(conn.LocalAddr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return conn, port
}

func TestSendAddressesNoteEvents(t *testing.T) {
	conn, port := listenUDP(t)
	defer conn.Close()

	b := New("127.0.0.1", port)
	err := b.Send(chart.ChartEvent{
		Kind: chart.EventNoteVisible,
		At:   bmstime.NewObjTime(bmstime.Track(1), 1, 4),
		Lane: model.Lane{Side: model.Player1, Index: 3},
	})
	require.NoError(t, err)

	buf := make([]byte, 512)
	conn.SetReadDeadline(time.Now().Add(time.Second))
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(buf[:n], []byte("/chart/note")))
}

func TestAddressForEveryKindIsNonEmpty(t *testing.T) {
	for kind := chart.EventNoteVisible; kind <= chart.EventSeek; kind++ {
		assert.NotEmpty(t, addressFor(kind))
	}
}

func TestStreamStopsOnContextCancellation(t *testing.T) {
	conn, port := listenUDP(t)
	defer conn.Close()
	b := New("127.0.0.1", port)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	events := []chart.ChartEvent{
		{Kind: chart.EventNoteVisible, TimeSeconds: 0},
		{Kind: chart.EventNoteVisible, TimeSeconds: 5}, // far enough out to hit the deadline
	}
	err := b.Stream(ctx, events)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
