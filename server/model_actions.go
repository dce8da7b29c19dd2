package server

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/grid"
	"github.com/madwhistler/artsite/input"
	"github.com/madwhistler/artsite/model"
	"github.com/madwhistler/artsite/navigate"
	"github.com/madwhistler/artsite/quadrant"
)

func (s *TileServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("HandleHttpCall - connection received")

		scas := make(chan SessionContextAwaiting, 1)
		select {
		case s.SessionRequests <- SessionRequest{SessionContextAwaiting: scas}:
		case <-time.After(s.timeout):
			log.Warn("SessionRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var sca SessionContextAwaiting
		select {
		case sca = <-scas:
			if sca.ResponseCode != SESSION_READY {
				log.Warnf("HandleHttpCall session refused code:%d", sca.ResponseCode)
				w.WriteHeader(sca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(s.timeout):
			log.Warn("HandleHttpCall SessionContextAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		vs := sca.ViewerSession

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied to the client
			log.WithError(err).Warn("HandleHttpCall websocket upgrade failed")
			vs.cancel()
			s.sessionDone(vs.Id)
			return
		}
		defer con.Close()

		vs.Run(con)
		s.sessionDone(vs.Id)
	}
}

func (s *TileServer) sessionDone(id string) {
	select {
	case s.SessionsDone <- id:
	case <-time.After(s.timeout):
		log.WithField("session", id).Warn("SessionsDone TIMEOUTED")
	}
}

func (s *TileServer) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan Stats, 1)
		select {
		case s.StatsRequests <- reply:
		case <-time.After(s.timeout):
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		var stats Stats
		select {
		case stats = <-reply:
		case <-time.After(s.timeout):
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			log.WithError(err).Warn("HandleHealth encode")
		}
	}
}

// Loop owns the session registry until ctx is cancelled.
func (s *TileServer) Loop(ctx context.Context) {
	log.Info("TileServer.Loop starting")
	defer log.Info("TileServer.Loop ended")
	for {
		select {
		case <-ctx.Done():
			for _, vs := range s.Sessions {
				vs.cancel()
			}
			return
		case req := <-s.SessionRequests:
			vs := s.newViewerSession(ctx)
			s.Sessions[vs.Id] = vs
			log.WithFields(log.Fields{"session": vs.Id, "live": len(s.Sessions)}).Info("session created")
			req.SessionContextAwaiting <- SessionContextAwaiting{
				ResponseCode:  SESSION_READY,
				ViewerSession: vs,
			}
		case id := <-s.SessionsDone:
			if vs, found := s.Sessions[id]; found {
				vs.cancel()
				delete(s.Sessions, id)
				log.WithFields(log.Fields{"session": id, "live": len(s.Sessions)}).Info("session removed")
			}
		case reply := <-s.StatsRequests:
			reply <- Stats{Sessions: len(s.Sessions), Tiles: len(s.Grid.Tiles())}
		}
	}
}

func (s *TileServer) newViewerSession(parent context.Context) *ViewerSession {
	ctx, cancel := context.WithCancel(parent)
	buffer := s.Config.Server.SendBuffer
	if buffer < 1 {
		buffer = 1
	}
	vs := &ViewerSession{
		Id:             uuid.NewString(),
		State:          VS_NEW,
		Server:         s,
		Device:         input.Device{},
		Adapter:        input.NewAdapter(input.Device{}),
		Scheduler:      anim.NewScheduler(s.Config.Animation.Budget),
		Guard:          navigate.NewGuard(s.Clock, s.hold),
		Events:         make(chan model.ClientMessage),
		Errors:         make(chan error, 2),
		MessagesToSend: make(chan model.ServerMessage, buffer),
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
	vs.Scheduler.OnEvict = func(anim.Slot) { vs.DebugEvictions++ }
	vs.Controller = quadrant.NewController(s.Grid, vs.Scheduler, vs)
	backgrounds := make([]quadrant.Background, 0, len(s.Config.Animation.Backgrounds))
	for _, source := range s.Config.Animation.Backgrounds {
		backgrounds = append(backgrounds, quadrant.Background{Source: source})
	}
	vs.Controller.SetBackgrounds(backgrounds)
	return vs
}

// Run serves the session on con until the connection fails or the session is
// cancelled.
func (vs *ViewerSession) Run(con *websocket.Conn) {
	vs.Conn = con
	con.SetPingHandler(func(message string) error {
		err := con.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
		if err == websocket.ErrCloseSent {
			return nil
		} else if e, ok := err.(net.Error); ok && e.Temporary() {
			return nil
		}
		return err
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		vs.LoopChannelRead()
	}()
	go func() {
		defer wg.Done()
		vs.LoopChannelWrite()
	}()

	vs.Loop()
	close(vs.done)
	vs.cancel()
	_ = con.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	con.Close()
	wg.Wait()
	log.WithFields(log.Fields{
		"session":   vs.Id,
		"state":     vs.State.Name(),
		"in":        vs.DebugInMessages,
		"out":       vs.DebugOutMessages,
		"evictions": vs.DebugEvictions,
		"dropped":   vs.DebugDropped,
	}).Info("session ended")
}

// Loop is the single goroutine that mutates the session's engine state.
func (vs *ViewerSession) Loop() {
	for {
		select {
		case <-vs.ctx.Done():
			vs.State = VS_OVER
			// fail queues the error before it cancels
			select {
			case err := <-vs.Errors:
				vs.failed(err)
			default:
			}
			return
		case err := <-vs.Errors:
			vs.failed(err)
			return
		case cm := <-vs.Events:
			vs.Handle(cm)
		}
	}
}

// Handle applies one client message and queues the resulting state.
func (vs *ViewerSession) Handle(cm model.ClientMessage) {
	vs.DebugInMessages++
	vs.DebugLastMessage = time.Now()

	for _, hello := range cm.Hello {
		vs.hello(hello)
	}
	if !vs.greeted {
		// input before the handshake is treated as coming from a desktop
		vs.hello(model.Hello{})
	}
	if cm.Reset {
		vs.Controller.Reset()
	}
	for _, p := range cm.Pointers {
		ev := input.PointerEvent{Action: input.PointerAction(p.Action), Tile: grid.TileID(p.Tile)}
		for _, intent := range vs.Adapter.Pointer(ev) {
			vs.Controller.Dispatch(intent)
		}
	}
	for _, source := range cm.Ended {
		vs.Controller.OnContractionEnd(source)
	}
	vs.sendSnapshot()
}

func (vs *ViewerSession) hello(h model.Hello) {
	cfg := vs.Server.Config
	if vs.greeted {
		log.WithField("session", vs.Id).Debug("repeated hello ignored")
		return
	}
	vs.greeted = true
	vs.Device = input.Classify(input.Signal{
		ViewportWidth: h.ViewportWidth,
		Touch:         h.Touch,
		UserAgent:     h.UserAgent,
	}, cfg.Thresholds())
	vs.Adapter = input.NewAdapter(vs.Device)
	vs.Scheduler.SetBudget(cfg.BudgetFor(vs.Device))
	vs.Controller.StartBackground()
	vs.State = VS_PLAY

	log.WithFields(log.Fields{
		"session": vs.Id,
		"device":  vs.Device.Name(),
		"budget":  vs.Scheduler.Budget(),
	}).Info("session classified")

	vs.send(model.ServerMessage{
		Setup: []model.Setup{model.NewSetup(vs.Server.Grid, vs.Id, vs.Device.Mobile, cfg.Durations())},
	})
}

func (vs *ViewerSession) sendSnapshot() {
	vs.version++
	snap := model.NewSnapshot(vs.version, vs.Controller.ActiveSet(), vs.Controller.Cursor(), vs.Controller.Slots())
	vs.send(model.ServerMessage{Snapshots: []model.Snapshot{snap}})
}

// Navigate implements quadrant.Navigator. The guard collapses a burst of
// taps into one navigation.
func (vs *ViewerSession) Navigate(tile grid.TileID, page string) {
	if !vs.Guard.Begin() {
		log.WithFields(log.Fields{"session": vs.Id, "page": page}).Debug("navigation already in progress")
		return
	}
	vs.send(model.ServerMessage{Navigations: []model.Navigation{{Tile: string(tile), Page: page}}})
}

func (vs *ViewerSession) send(msg model.ServerMessage) {
	select {
	case vs.MessagesToSend <- msg:
	case <-vs.done:
		vs.DebugDropped++
	case <-vs.ctx.Done():
		vs.DebugDropped++
	}
}

// fail reports a transport error from the read or write loop. It also
// cancels the session, so a Loop blocked in send gets out.
func (vs *ViewerSession) fail(err error) {
	select {
	case vs.Errors <- err:
	default:
	}
	vs.cancel()
}

func (vs *ViewerSession) failed(err error) {
	log.WithError(err).WithField("session", vs.Id).Warn("session transport failed")
	vs.State = VS_ERR
}

func (vs *ViewerSession) LoopChannelRead() {
	log.WithField("session", vs.Id).Debug("LoopChannelRead STARTED")
	defer log.WithField("session", vs.Id).Debug("LoopChannelRead ENDED")
	for {
		_, r, err := vs.Conn.NextReader()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				vs.cancel()
			} else {
				vs.fail(err)
			}
			return
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.WithError(err).Warn("LoopChannelRead cant decode")
			vs.fail(err)
			return
		}
		select {
		case vs.Events <- cm:
		case <-vs.done:
			return
		}
	}
}

// LoopChannelWrite only consumes, so a full buffer never blocks the read side.
func (vs *ViewerSession) LoopChannelWrite() {
	log.WithField("session", vs.Id).Debug("LoopChannelWrite STARTED")
	defer log.WithField("session", vs.Id).Debug("LoopChannelWrite ENDED")
	for {
		select {
		case <-vs.done:
			return
		case mes := <-vs.MessagesToSend:
			w, err := vs.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				log.WithError(err).Warn("LoopChannelWrite cant get writer")
				vs.fail(err)
				return
			}
			if err := gob.NewEncoder(w).Encode(mes); err != nil {
				log.WithError(err).Warn("LoopChannelWrite cant encode")
				vs.fail(err)
				return
			}
			if err := w.Close(); err != nil {
				log.WithError(err).Warn("LoopChannelWrite cant flush")
				vs.fail(err)
				return
			}
			vs.DebugOutMessages++
		}
	}
}
