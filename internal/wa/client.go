package wa

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mau.fi/whatsmeow"
	wastore "go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"

	"github.com/yourusername/wabot/internal/commands"
	"github.com/yourusername/wabot/internal/config"
	"github.com/yourusername/wabot/internal/output"
	"github.com/yourusername/wabot/internal/ratelimit"
	"github.com/yourusername/wabot/internal/splitter"
)

// ConnectionState names a step of the connection lifecycle
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateWaitingQR    ConnectionState = "waiting_qr"
	StateConnected    ConnectionState = "connected"
	StateReconnecting ConnectionState = "reconnecting"
	StateStopped      ConnectionState = "stopped"
)

// MessageHandler receives every inbound chat message after normalization
type MessageHandler interface {
	Handle(ctx context.Context, msg *commands.Message)
}

// Client owns the WhatsApp connection: session persistence, QR login,
// lifecycle state and reconnection with bounded exponential backoff. It
// converts wire events into normalized messages for the dispatcher and
// implements the outbound surface commands send through.
type Client struct {
	cfg    *config.Config
	out    *output.Output
	client *whatsmeow.Client

	handler MessageHandler

	splitter *splitter.Splitter
	limiter  *ratelimit.TokenBucket

	state     atomic.Value // ConnectionState
	connected atomic.Bool

	// reconnectGuard keeps concurrent disconnect events from spawning
	// parallel reconnect loops
	reconnectGuard atomic.Bool
	attempts       atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc

	startedAt time.Time
	mu        sync.Mutex
}

// NewClient creates the connection owner. The message handler is attached
// later with SetHandler because the dispatcher needs the client first.
func NewClient(cfg *config.Config, out *output.Output) *Client {
	c := &Client{
		cfg:       cfg,
		out:       out,
		splitter:  splitter.New(splitter.DefaultMaxLength),
		limiter:   ratelimit.NewTokenBucket(20, 10),
		startedAt: time.Now(),
	}
	c.state.Store(StateDisconnected)
	return c
}

// SetHandler attaches the inbound message handler. Must be called before
// Connect.
func (c *Client) SetHandler(handler MessageHandler) {
	c.handler = handler
}

// State returns the current lifecycle state
func (c *Client) State() ConnectionState {
	return c.state.Load().(ConnectionState)
}

// IsConnected reports whether the session is live
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// Uptime returns how long the client has been running
func (c *Client) Uptime() time.Duration {
	return time.Since(c.startedAt)
}

// BotJID returns the bot's own user JID, empty before login
func (c *Client) BotJID() string {
	if c.client != nil && c.client.Store.ID != nil {
		return c.client.Store.ID.ToNonAD().String()
	}
	return ""
}

// Connect opens the session store, restores or creates the device, and
// establishes the connection. First runs print a QR code to the terminal
// and block until it is scanned or times out.
func (c *Client) Connect(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.setState(StateConnecting)

	container, err := sqlstore.New(c.ctx, "sqlite",
		fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", c.cfg.WhatsApp.SessionDBPath),
		waLog.Noop)
	if err != nil {
		c.setState(StateDisconnected)
		return fmt.Errorf("failed to open session store: %w", err)
	}

	device, err := container.GetFirstDevice(c.ctx)
	if err != nil {
		c.setState(StateDisconnected)
		return fmt.Errorf("failed to load device: %w", err)
	}

	wastore.SetOSInfo(c.cfg.WhatsApp.DeviceName, [3]uint32{1, 0, 0})

	c.client = whatsmeow.NewClient(device, waLog.Noop)
	c.client.AddEventHandler(c.handleEvent)

	if c.client.Store.ID == nil {
		return c.loginWithQR()
	}

	if err := c.client.Connect(); err != nil {
		c.setState(StateDisconnected)
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.out.Logger.Info("restored session for %s", c.BotJID())
	return nil
}

// loginWithQR runs the first-login flow, printing each QR code to the
// terminal for scanning
func (c *Client) loginWithQR() error {
	qrChan, err := c.client.GetQRChannel(c.ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}
	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect for QR login: %w", err)
	}

	c.setState(StateWaitingQR)
	for evt := range qrChan {
		switch evt.Event {
		case "code":
			c.out.Logger.Info("scan this QR code with WhatsApp:")
			fmt.Println(evt.Code)
		case "success":
			c.out.Logger.Success("device linked as %s", c.BotJID())
			return nil
		case "timeout":
			c.setState(StateDisconnected)
			return fmt.Errorf("QR code expired before it was scanned")
		default:
			if evt.Error != nil {
				c.setState(StateDisconnected)
				return fmt.Errorf("QR login failed: %w", evt.Error)
			}
		}
	}
	return fmt.Errorf("QR channel closed before login completed")
}

// Disconnect tears the connection down for good
func (c *Client) Disconnect() {
	c.setState(StateStopped)
	c.connected.Store(false)
	if c.cancel != nil {
		c.cancel()
	}
	if c.client != nil {
		c.client.Disconnect()
	}
	c.out.Logger.Info("whatsapp connection closed")
}

func (c *Client) setState(state ConnectionState) {
	c.state.Store(state)
}

// handleEvent routes wire events into the lifecycle state machine and the
// message pipeline
func (c *Client) handleEvent(rawEvt interface{}) {
	switch evt := rawEvt.(type) {
	case *events.Connected:
		c.setState(StateConnected)
		c.connected.Store(true)
		c.attempts.Store(0)
		c.out.Logger.Success("connected as %s", c.BotJID())

	case *events.Disconnected:
		wasStopped := c.State() == StateStopped
		c.connected.Store(false)
		if !wasStopped {
			c.setState(StateDisconnected)
			c.out.Logger.Warning("connection lost")
			go c.reconnectLoop()
		}

	case *events.StreamReplaced:
		// Another client took over the session; reconnecting would only
		// bounce the stream back and forth
		c.setState(StateStopped)
		c.connected.Store(false)
		c.out.Logger.Error("stream replaced by another device, shutting down the connection")

	case *events.LoggedOut:
		c.setState(StateStopped)
		c.connected.Store(false)
		c.out.Logger.Error("session logged out (%s), delete the session database and relink", evt.Reason.String())

	case *events.Message:
		c.handleMessage(evt)
	}
}

// reconnectLoop retries the connection with exponential backoff between
// the configured minimum and maximum delays, until the context is done
func (c *Client) reconnectLoop() {
	if !c.reconnectGuard.CompareAndSwap(false, true) {
		return
	}
	defer c.reconnectGuard.Store(false)

	minDelay := c.cfg.Limits.GetReconnectDelayMinDuration()
	maxDelay := c.cfg.Limits.GetReconnectDelayMaxDuration()

	c.setState(StateReconnecting)

	for {
		if c.ctx.Err() != nil {
			return
		}

		attempt := c.attempts.Add(1)
		delay := minDelay * time.Duration(1<<uint(attempt-1))
		if delay > maxDelay || delay <= 0 {
			delay = maxDelay
		}

		c.out.Logger.Warning("reconnect attempt %d in %s", attempt, delay)

		select {
		case <-time.After(delay):
		case <-c.ctx.Done():
			return
		}

		if c.client.IsConnected() {
			c.client.Disconnect()
			time.Sleep(100 * time.Millisecond)
		}

		if err := c.client.Connect(); err != nil {
			c.out.Logger.Warning("reconnect attempt %d failed: %v", attempt, err)
			continue
		}
		// The Connected event resets the state and attempt counter
		return
	}
}
