package server

import (
	"fmt"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	SESSION_READY ResponseCode = iota
	SESSION_REFUSED
	SESSION_INVALID
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case SESSION_READY:
		return HTTP_SUCCESS
	case SESSION_REFUSED:
		return HTTP_SERVER_ERR
	case SESSION_INVALID:
		return HTTP_BAD_REQUEST
	default:
		return HTTP_SERVER_ERR
	}
}

func (vs ViewerSessionState) Name() string {
	switch vs {
	case VS_NEW:
		return "NEW"
	case VS_PLAY:
		return "PLAY"
	case VS_OVER:
		return "OVER"
	case VS_ERR:
		return "ERR"
	default:
		return fmt.Sprintf("n/a:%d", vs)
	}
}

type SessionContextAwaiting struct {
	ResponseCode  ResponseCode
	ViewerSession *ViewerSession
}

type SessionRequest struct {
	SessionContextAwaiting chan SessionContextAwaiting
}

// Stats is what /healthz reports.
type Stats struct {
	Sessions int `json:"sessions"`
	Tiles    int `json:"tiles"`
}
