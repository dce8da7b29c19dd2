package server

import (
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/madwhistler/artsite/anim"
	"github.com/madwhistler/artsite/config"
	"github.com/madwhistler/artsite/grid"
	"github.com/madwhistler/artsite/input"
	"github.com/madwhistler/artsite/model"
	"github.com/madwhistler/artsite/navigate"
	"github.com/madwhistler/artsite/quadrant"
)

// TileServer hands out viewer sessions and keeps track of the live ones.
type TileServer struct {
	Config          *config.Config
	Grid            *grid.Model
	Sessions        map[string]*ViewerSession
	SessionRequests chan SessionRequest
	SessionsDone    chan string
	StatsRequests   chan chan Stats
	Upgrader        *websocket.Upgrader
	Clock           navigate.Clock

	timeout time.Duration
	hold    time.Duration
}

type ViewerSessionState int

const (
	VS_NEW ViewerSessionState = iota + 1
	VS_PLAY
	VS_OVER
	VS_ERR
)

// ViewerSession is one connected renderer. Its Loop goroutine owns the
// controller and scheduler; the read and write loops only move messages.
type ViewerSession struct {
	Id     string
	State  ViewerSessionState
	Server *TileServer
	Conn   *websocket.Conn

	Device     input.Device
	Adapter    *input.Adapter
	Scheduler  *anim.Scheduler
	Controller *quadrant.Controller
	Guard      *navigate.Guard

	Events         chan model.ClientMessage
	Errors         chan error
	MessagesToSend chan model.ServerMessage

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	version uint64
	greeted bool

	DebugInMessages  int
	DebugOutMessages int
	DebugEvictions   int
	DebugDropped     int
	DebugLastMessage time.Time
}
