package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxFrame   = 4096
)

type Booker interface {
	Book(ctx context.Context, who domain.Identity, slotID uint) (*domain.Booking, error)
}

// Server upgrades HTTP requests into real-time connections and dispatches
// their frames.
type Server struct {
	hub      *Hub
	booker   Booker
	upgrader websocket.Upgrader
}

func NewServer(hub *Hub, booker Booker) *Server {
	return &Server{
		hub:    hub,
		booker: booker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve takes over the connection. who is the identity resolved from the
// session at upgrade time and is used for every book_slot on it.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, who domain.Identity) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}
	c := newClient(who)
	log := logrus.WithFields(logrus.Fields{"client": c.id, "user_id": who.UserID})
	log.Info("realtime client connected")

	go s.writeLoop(conn, c)
	s.readLoop(r.Context(), conn, c)

	s.hub.Unwatch(c)
	c.Close()
	log.Info("realtime client disconnected")
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, c *Client) {
	conn.SetReadLimit(maxFrame)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).WithField("client", c.id).Warn("realtime read failed")
			}
			return
		}
		s.dispatch(context.WithoutCancel(ctx), c, msg)
	}
}

func (s *Server) writeLoop(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case <-c.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case frame := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

func (s *Server) dispatch(ctx context.Context, c *Client, msg []byte) {
	var in Frame
	if err := json.Unmarshal(msg, &in); err != nil {
		s.reply(c, EvError, errorMsg{Msg: "malformed frame"})
		return
	}
	switch in.Event {
	case EvRequestSlots:
		s.requestSlots(ctx, c, in.Data)
	case EvBookSlot:
		s.bookSlot(ctx, c, in.Data)
	default:
		s.reply(c, EvError, errorMsg{Msg: "unknown event " + in.Event})
	}
}

func (s *Server) requestSlots(ctx context.Context, c *Client, data json.RawMessage) {
	var req requestSlots
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			s.reply(c, EvError, errorMsg{Msg: err.Error()})
			return
		}
	}
	turfID := uint(req.TurfID)
	s.hub.Watch(c, turfID)
	if turfID == 0 {
		s.reply(c, EvUpdateSlots, []SlotState{})
		return
	}
	slots, err := s.hub.slots.Slots(ctx, turfID)
	if err != nil {
		logrus.WithError(err).WithField("turf_id", turfID).Error("realtime slot listing failed")
		s.reply(c, EvError, errorMsg{Msg: "slots unavailable"})
		return
	}
	s.reply(c, EvUpdateSlots, slotStates(slots))
}

func (s *Server) bookSlot(ctx context.Context, c *Client, data json.RawMessage) {
	var req bookSlot
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			s.reply(c, EvBookingError, errorMsg{Msg: err.Error()})
			return
		}
	}
	_, err := s.booker.Book(ctx, c.who, uint(req.SlotID))
	if err != nil {
		s.reply(c, EvBookingError, errorMsg{Msg: bookingMessage(err)})
		return
	}
	s.reply(c, EvBookingSuccess, bookingSuccess{SlotID: uint(req.SlotID)})
}

func bookingMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "Login required"
	case errors.Is(err, domain.ErrConflict):
		return "Slot already booked"
	case errors.Is(err, domain.ErrNotFound):
		return "Slot not found"
	default:
		return "Booking failed, try again"
	}
}

func (s *Server) reply(c *Client, event string, data any) {
	frame, err := encode(event, data)
	if err != nil {
		logrus.WithError(err).WithField("event", event).Error("realtime encode failed")
		return
	}
	if !c.enqueue(frame) {
		logrus.WithField("client", c.id).Warn("realtime reply dropped")
	}
}
