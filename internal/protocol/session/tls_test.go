package session

import (
	"context"
	"crypto/tls"
	"testing"
	"time"

	"github.com/danmuck/tlvcodec/internal/protocol"
	"github.com/danmuck/tlvcodec/internal/testutil/testlog"
	"github.com/danmuck/tlvcodec/internal/testutil/tlstest"
)

func TestPumpOverTLSConn(t *testing.T) {
	testlog.Start(t)
	ca := tlstest.NewAuthority(t, "tlvcodec-test-ca")
	ln, err := tls.Listen("tcp", "127.0.0.1:0", ca.ServerConfig(t, "tlvcodec-server"))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	writer := newHandler(t)
	stream := chatStream(t, writer, 4)
	sent := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			sent <- err
			return
		}
		defer conn.Close()
		// Split each write across a frame boundary.
		for off := 0; off < len(stream); off += 5 {
			end := min(off+5, len(stream))
			if _, err := conn.Write(stream[off:end]); err != nil {
				sent <- err
				return
			}
		}
		sent <- nil
	}()

	conn, err := tls.Dial("tcp", ln.Addr().String(), ca.ClientConfig("127.0.0.1"))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := newHandler(t)
	var texts []any
	stats, err := Pump(context.Background(), conn, reader, Config{ReadChunkBytes: 3}, func(res protocol.Result) error {
		texts = append(texts, res.Packet.Fields["text"])
		return nil
	})
	if err != nil {
		t.Fatalf("pump: %v", err)
	}
	if err := <-sent; err != nil {
		t.Fatalf("server write: %v", err)
	}
	if stats.Packets != 4 || len(texts) != 4 || texts[3] != "hello" {
		t.Fatalf("unexpected result stats=%+v texts=%v", stats, texts)
	}
}
