package ginserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"stays/internal/app/outbox"
	"stays/internal/app/session"
	domainlistings "stays/internal/domain/listings"
	"stays/internal/infra/notify"
	"stays/internal/infra/view"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 16
	maxMessage = 16 << 10
)

// Live channel message types.
const (
	MsgFacets = "facets"
	MsgView   = "view"
	MsgReset  = "reset"
	MsgReload = "reload"
	MsgRender = "render"
	MsgToast  = "toast"
)

// ClientMessage is sent by the stays page. Facets uses the filter form
// field names.
type ClientMessage struct {
	Type   string            `json:"type"`
	Facets map[string]string `json:"facets,omitempty"`
	View   string            `json:"view,omitempty"`
}

type ServerMessage struct {
	Type       string `json:"type"`
	View       string `json:"view,omitempty"`
	Region     string `json:"region,omitempty"`
	HTML       string `json:"html,omitempty"`
	Count      int    `json:"count"`
	Total      int    `json:"total"`
	Generation uint64 `json:"generation,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Message    string `json:"message,omitempty"`
}

// LiveHandler keeps one listings page per websocket connection and pushes a
// fresh render after every facet, view or reset message. Facet edits are
// debounced.
type LiveHandler struct {
	Loader   session.CatalogLoader
	Renderer *view.Renderer
	Debounce time.Duration
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Logger   *slog.Logger
	Upgrader websocket.Upgrader
}

func (h *LiveHandler) Serve(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger().Warn("live upgrade failed", "err", err)
		return
	}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	lc := &liveConn{conn: conn, send: make(chan ServerMessage, sendBuffer), logger: h.logger()}
	go lc.writePump(ctx)

	toasts := &notify.Collector{}
	ctx = notify.WithCollector(ctx, toasts)
	// the initial view and facets are applied before the first load and
	// must not render on their own
	var started atomic.Bool
	page := session.NewListingsPage(h.Loader, func(s session.Snapshot) {
		if started.Load() {
			lc.push(ctx, h.render(s))
		}
	}, h.logger())
	debouncer := session.NewDebouncer(h.Debounce)
	defer debouncer.Stop()

	initial := c.Request.URL.Query()
	page.SetView(domainlistings.ParseViewMode(initial.Get(session.FieldView)))
	page.Apply(session.ParseFacetForm(initial))
	started.Store(true)
	h.load(ctx, lc, page, toasts)

	lc.readPump(func(msg ClientMessage) {
		switch msg.Type {
		case MsgFacets:
			facets := session.ParseFacetForm(formValues(msg.Facets))
			debouncer.Call(func() { page.Apply(facets) })
		case MsgView:
			debouncer.Flush()
			page.SetView(domainlistings.ParseViewMode(msg.View))
		case MsgReset:
			debouncer.Cancel()
			page.Reset()
		case MsgReload:
			go h.load(ctx, lc, page, toasts)
		default:
			h.logger().Debug("live message ignored", "type", msg.Type)
		}
	})
}

// load refreshes the catalog. Fallback toasts raised by the loader are sent
// after the render they belong to.
func (h *LiveHandler) load(ctx context.Context, lc *liveConn, page *session.ListingsPage, toasts *notify.Collector) {
	page.Load(ctx)
	lc.pushToasts(ctx, toasts.Drain())
	publishEvents(ctx, h.Outbox, h.Encoder, h.logger(), page.Events())
}

func (h *LiveHandler) render(s session.Snapshot) ServerMessage {
	html, region, err := h.Renderer.RenderString(s.Items, s.View)
	if err != nil {
		h.logger().Error("live render failed", "err", err)
	}
	return ServerMessage{
		Type:       MsgRender,
		View:       string(s.View),
		Region:     string(region),
		HTML:       html,
		Count:      len(s.Items),
		Total:      s.Total,
		Generation: s.Generation,
	}
}

func (h *LiveHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func formValues(fields map[string]string) url.Values {
	v := make(url.Values, len(fields))
	for k, val := range fields {
		v.Set(k, val)
	}
	return v
}

type liveConn struct {
	conn   *websocket.Conn
	send   chan ServerMessage
	logger *slog.Logger
}

func (lc *liveConn) push(ctx context.Context, msg ServerMessage) {
	select {
	case lc.send <- msg:
	case <-ctx.Done():
	}
}

func (lc *liveConn) pushToasts(ctx context.Context, toasts []notify.Toast) {
	for _, t := range toasts {
		lc.push(ctx, ServerMessage{Type: MsgToast, Severity: string(t.Severity), Message: t.Message})
	}
}

// readPump decodes client messages until the connection closes. Messages
// are handled on this goroutine, one at a time.
func (lc *liveConn) readPump(handle func(ClientMessage)) {
	defer lc.conn.Close()
	lc.conn.SetReadLimit(maxMessage)
	_ = lc.conn.SetReadDeadline(time.Now().Add(pongWait))
	lc.conn.SetPongHandler(func(string) error {
		return lc.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := lc.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				lc.logger.Warn("live connection closed", "err", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			lc.logger.Debug("live message malformed", "err", err)
			continue
		}
		handle(msg)
	}
}

func (lc *liveConn) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		lc.conn.Close()
	}()
	for {
		select {
		case <-ctx.Done():
			_ = lc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = lc.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-lc.send:
			_ = lc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := lc.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = lc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := lc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NewLiveHandler accepts same-origin connections only.
func NewLiveHandler(h LiveHandler) *LiveHandler {
	if h.Upgrader.CheckOrigin == nil {
		h.Upgrader.CheckOrigin = sameOrigin
	}
	return &h
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}
