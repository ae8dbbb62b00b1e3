/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package smppserver

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/smpp-go/smpp/pdu"
)

// Server is the reference MC: one listener, one goroutine per accepted
// ESME connection (ptp4u/server.Server's goroutine-per-role shape,
// adapted to TCP accept-per-client since SMPP is connection-oriented
// where PTP unicast is not).
type Server struct {
	Config  Config
	Log     log.FieldLogger
	Metrics *Metrics

	nextMessageID uint64

	mu sync.Mutex
	wg sync.WaitGroup
	ln net.Listener
}

// NewServer builds a Server from cfg, applying defaults.
func NewServer(cfg Config) *Server {
	return &Server{
		Config: cfg.withDefaults(),
		Log:    log.StandardLogger(),
	}
}

// Listen binds Config.ListenAddr. Splitting it out from Serve lets a
// caller (or a test) learn the bound address — useful when ListenAddr
// asks for an ephemeral port.
func (s *Server) Listen() error {
	if s.Log == nil {
		s.Log = log.StandardLogger()
	}
	ln, err := net.Listen("tcp", s.Config.ListenAddr)
	if err != nil {
		return fmt.Errorf("smppserver: listen %s: %w", s.Config.ListenAddr, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.Log.WithField("addr", ln.Addr().String()).Info("smppserver: listening")
	return nil
}

// Addr returns the bound listener address, or "" before Listen runs.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Start listens on Config.ListenAddr and serves connections until ctx
// is canceled or Stop is called. It returns once the listener closes
// and every in-flight connection handler has returned.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve runs the accept loop against a listener already created by
// Listen. It returns once the listener closes and every in-flight
// connection handler has returned.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				s.wg.Wait()
				return nil
			default:
				s.wg.Wait()
				return fmt.Errorf("smppserver: accept: %w", err)
			}
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// Stop closes the listener, causing Start to return once connections
// already accepted finish draining.
func (s *Server) Stop() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return nil
	}
	return ln.Close()
}

func (s *Server) nextMsgID() string {
	id := atomic.AddUint64(&s.nextMessageID, 1)
	return strconv.FormatUint(id, 16)
}

// handleConn runs the MC side of one ESME connection: await bind,
// authenticate, then serve requests until the ESME unbinds, a frame
// error occurs, or the connection is idle past session_timeout.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	s.Metrics.connOpen()
	defer s.Metrics.connClosed()
	defer conn.Close()

	log := s.Log.WithField("remote", conn.RemoteAddr().String())
	framer := pdu.NewFramer(s.Config.MaxFrameBytes)

	bound := false
	deadline := s.Config.SessionTimeout

	buf := make([]byte, 4096)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(deadline))
		n, err := conn.Read(buf)
		if err != nil {
			if bound {
				s.Metrics.sessionEnd("disconnect")
			}
			log.WithError(err).Debug("smppserver: connection ended")
			return
		}
		cmds, ferr := framer.Feed(buf[:n])
		for _, cmd := range cmds {
			s.Metrics.received(cmd.Header.ID.String())
			if !bound {
				ok := s.handleBind(conn, cmd, log)
				if !ok {
					s.Metrics.sessionEnd("bind_rejected")
					return
				}
				bound = true
				continue
			}
			if !s.handleCommand(conn, cmd, log) {
				s.Metrics.sessionEnd("unbind")
				return
			}
		}
		if ferr != nil {
			log.WithError(ferr).Warn("smppserver: frame error")
			s.Metrics.sessionEnd("frame_error")
			return
		}
	}
}

// handleBind authenticates the first PDU on a connection, which must
// be one of the three bind requests, and writes the matching response.
func (s *Server) handleBind(conn net.Conn, cmd *pdu.Command, log log.FieldLogger) bool {
	var systemID, password string
	var ifVersion pdu.InterfaceVersion
	var resp pdu.Body
	switch b := cmd.Body.(type) {
	case *pdu.BindTransmitter:
		systemID, password, ifVersion = b.SystemID, b.Password, b.InterfaceVersion
		resp = &pdu.BindTransmitterResp{}
	case *pdu.BindReceiver:
		systemID, password, ifVersion = b.SystemID, b.Password, b.InterfaceVersion
		resp = &pdu.BindReceiverResp{}
	case *pdu.BindTransceiver:
		systemID, password, ifVersion = b.SystemID, b.Password, b.InterfaceVersion
		resp = &pdu.BindTransceiverResp{}
	default:
		s.writeResponse(conn, pdu.EsmeRinvbndsts, cmd.Header.Sequence, &pdu.GenericNack{})
		return false
	}

	if !s.Config.acceptInterfaceVersion(ifVersion) {
		s.Metrics.bindFailure()
		log.WithField("interface_version", ifVersion.String()).Warn("smppserver: interface_version out of configured bounds")
		s.writeResponse(conn, pdu.EsmeRinvbndsts, cmd.Header.Sequence, resp)
		return false
	}

	if !s.Config.authenticate(systemID, password) {
		s.Metrics.bindFailure()
		s.writeResponse(conn, pdu.EsmeRinvpaswd, cmd.Header.Sequence, resp)
		return false
	}

	s.Metrics.bind(cmd.Header.ID.String())
	log.WithField("system_id", systemID).Info("smppserver: bound")
	return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, resp)
}

// handleCommand answers one post-bind PDU. It returns false when the
// connection should end (unbind, or a write failure).
func (s *Server) handleCommand(conn net.Conn, cmd *pdu.Command, log log.FieldLogger) bool {
	switch cmd.Header.ID {
	case pdu.IDEnquireLink:
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, &pdu.EnquireLinkResp{})
	case pdu.IDUnbind:
		s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, &pdu.UnbindResp{})
		return false
	case pdu.IDSubmitSm:
		resp := &pdu.SubmitSmResp{}
		resp.MessageID = s.nextMsgID()
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, resp)
	case pdu.IDDataSm:
		resp := &pdu.DataSmResp{}
		resp.MessageID = s.nextMsgID()
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, resp)
	case pdu.IDSubmitMulti:
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, &pdu.SubmitMultiResp{MessageID: s.nextMsgID()})
	case pdu.IDQuerySm:
		return s.writeResponse(conn, pdu.EsmeRinvmsgid, cmd.Header.Sequence, &pdu.QuerySmResp{})
	case pdu.IDCancelSm:
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, &pdu.CancelSmResp{})
	case pdu.IDReplaceSm:
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, &pdu.ReplaceSmResp{})
	case pdu.IDBroadcastSm:
		resp := &pdu.BroadcastSmResp{}
		resp.MessageID = s.nextMsgID()
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, resp)
	case pdu.IDQueryBroadcastSm:
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, &pdu.QueryBroadcastSmResp{})
	case pdu.IDCancelBroadcastSm:
		return s.writeResponse(conn, pdu.EsmeRok, cmd.Header.Sequence, &pdu.CancelBroadcastSmResp{})
	default:
		log.WithField("command_id", cmd.Header.ID.String()).Warn("smppserver: unhandled command")
		return s.writeResponse(conn, pdu.EsmeRinvcmdid, cmd.Header.Sequence, &pdu.GenericNack{})
	}
}

func (s *Server) writeResponse(conn net.Conn, status pdu.CommandStatus, seq uint32, body pdu.Body) bool {
	raw, err := pdu.NewCommand(status, seq, body).MarshalBinary()
	if err != nil {
		s.Log.WithError(err).Error("smppserver: encode response")
		return false
	}
	if _, err := conn.Write(raw); err != nil {
		s.Log.WithError(err).Debug("smppserver: write response")
		return false
	}
	return true
}
