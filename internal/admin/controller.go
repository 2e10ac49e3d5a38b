package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/adminpanel/internal/api"
)

// DefaultNoticeTTL is how long a toast stays visible.
const DefaultNoticeTTL = 3 * time.Second

// GenericErrorText is the only failure message users see.
const GenericErrorText = "Something went wrong. Check the log for details."

// Operation performs gateway calls off the event loop and describes the cache
// replacement it produced.
type Operation func(ctx context.Context, gw api.Gateway) (Refresh, error)

// ResultMsg is delivered to Update when an operation started by Run finishes.
type ResultMsg struct {
	Action  Action
	OpID    string
	Refresh Refresh
	Success string
	Err     error
}

type noticeExpiredMsg struct{ seq uint64 }

// Controller owns the application state. Every mutation happens on the
// bubbletea event loop, either in an action method or in Update.
type Controller struct {
	ctx       context.Context
	gw        api.Gateway
	log       *slog.Logger
	noticeTTL time.Duration

	state     State
	busy      int
	noticeSeq uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for operation outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithNoticeTTL overrides DefaultNoticeTTL. Non-positive values are ignored.
func WithNoticeTTL(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.noticeTTL = d
		}
	}
}

// New returns a controller on the dashboard with empty collections. ctx
// bounds every gateway call it starts.
func New(ctx context.Context, gw api.Gateway, opts ...Option) *Controller {
	c := &Controller{
		ctx:       ctx,
		gw:        gw,
		log:       slog.New(slog.DiscardHandler),
		noticeTTL: DefaultNoticeTTL,
		state:     State{View: ViewDashboard},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot for rendering.
func (c *Controller) State() State {
	s := c.state
	s.Busy = c.busy > 0
	s.Pending = c.busy
	if c.state.Notice != nil {
		n := *c.state.Notice
		s.Notice = &n
	}
	return s
}

// Update applies operation results and notice expiry. Other messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case ResultMsg:
		return c.finish(m)
	case noticeExpiredMsg:
		if c.state.Notice != nil && c.state.Notice.seq == m.seq {
			c.state.Notice = nil
		}
	}
	return nil
}

// Run marks the controller busy and returns a command executing op. The busy
// count is released when the matching ResultMsg reaches Update, whatever the
// outcome. Failures are logged and turned into the generic error notice.
func (c *Controller) Run(action Action, op Operation, success string) tea.Cmd {
	c.busy++
	id := uuid.NewString()
	c.log.Debug("operation started", "op", id, "action", action, "pending", c.busy)

	ctx := api.WithRequestID(c.ctx, id)
	gw := c.gw
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = ResultMsg{Action: action, OpID: id, Err: fmt.Errorf("%s panicked: %v", action, r)}
			}
		}()
		ref, err := op(ctx, gw)
		return ResultMsg{Action: action, OpID: id, Refresh: ref, Success: success, Err: err}
	}
}

func (c *Controller) finish(m ResultMsg) tea.Cmd {
	if c.busy > 0 {
		c.busy--
	}
	if m.Err != nil {
		c.log.Error("operation failed",
			"op", m.OpID,
			"action", m.Action,
			"kind", api.KindOf(m.Err),
			"err", m.Err,
		)
		return c.Notify(NoticeError, GenericErrorText)
	}
	c.apply(m.Refresh)
	c.log.Info("operation finished", "op", m.OpID, "action", m.Action, "view", c.state.View)
	if m.Success != "" {
		return c.Notify(NoticeSuccess, m.Success)
	}
	return nil
}

func (c *Controller) apply(r Refresh) {
	if r.Loaded&LoadedClients != 0 {
		c.state.Clients = r.Clients
	}
	if r.Loaded&LoadedProducts != 0 {
		c.state.Products = r.Products
	}
	if r.Loaded&LoadedOrders != 0 {
		c.state.Orders = r.Orders
	}
	if r.Switch {
		c.state.View = r.Target
	}
}

// Notify replaces the current notice. The returned tick clears it after the
// TTL unless a newer notice has taken its place.
func (c *Controller) Notify(kind NoticeKind, text string) tea.Cmd {
	c.noticeSeq++
	seq := c.noticeSeq
	c.state.Notice = &Notice{Kind: kind, Text: text, seq: seq}
	return tea.Tick(c.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Navigate switches view without touching the network.
func (c *Controller) Navigate(v View) {
	c.state.View = v
}
