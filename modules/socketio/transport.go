package socketio

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Transport delivers events to a server.
type Transport interface {
	Emit(event string, payload any) error
	Close()
}

// DialOptions configures a transport.
type DialOptions struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	Logger             *slog.Logger
}

// DialFunc opens a Transport.
type DialFunc func(opts DialOptions) (Transport, error)

// socketTransport adapts a socket.io client socket to Transport.
type socketTransport struct {
	io *socket.Socket
}

func (t *socketTransport) Emit(event string, payload any) error {
	return t.io.Emit(event, payload)
}

func (t *socketTransport) Close() {
	t.io.Disconnect()
}

// DialSocketIO starts connecting a socket.io client over WebSocket and
// returns without waiting for the connection. The client reconnects on its
// own and buffers events emitted while disconnected.
func DialSocketIO(o DialOptions) (Transport, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	parsedURL, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("URL %q needs a scheme and a host", o.URL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "namespace", o.Namespace, "sid", io.Id())
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		logger.Warn("Connection failed, retrying", "error", firstArg(errs))
	})
	io.On(types.EventName("disconnect"), func(reason ...any) {
		logger.Warn("Disconnected", "reason", firstArg(reason))
	})

	logger.Debug("Initiating connection...")
	io.Connect()
	return &socketTransport{io: io}, nil
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}
