package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/play"
const URI_HEALTH = "/healthz"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.TileServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_HEALTH, s.TileServer.HandleHealth())
}
