// SPDX-License-Identifier: Apache-2.0
// Copyright 2020,2021 Marcus Soll
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

const (
	spectateWriteTimeout = 250 * time.Millisecond
	// spectateQueue is the number of messages buffered per spectator before it is dropped.
	spectateQueue = 64
)

// spectateCell is a single drawn cell as seen by spectators.
type spectateCell struct {
	Cell
	Glyph string `json:"glyph"`
}

// spectateMessage is sent to spectators as JSON.
// "snapshot" is sent once after connecting, "draw" after every tick with changes and "over" at the end.
type spectateMessage struct {
	Type   string         `json:"type"`
	Field  *Playfield     `json:"field,omitempty"`
	Tick   int            `json:"tick"`
	Cells  []spectateCell `json:"cells,omitempty"`
	Result *Result        `json:"result,omitempty"`
}

// spectateUI streams all draws to websocket clients connected to Addr and forwards everything to UI.
// Every spectator gets its own writer; the game loop never waits for a network write.
type spectateUI struct {
	Addr string
	UI   UI
	Log  zerolog.Logger

	upgrader websocket.Upgrader
	server   *http.Server
	writers  sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	field   Playfield
	shown   map[Cell]GlyphKind
	pending []spectateCell
	tick    int
	clients map[*spectator]struct{}
}

// spectator is a connected client. Messages queued in send are written by writePump.
type spectator struct {
	conn *websocket.Conn
	send chan spectateMessage
}

func (s *spectateUI) Initialise(field Playfield) error {
	s.mu.Lock()
	s.field = field
	s.shown = make(map[Cell]GlyphKind)
	s.clients = make(map[*spectator]struct{})
	s.mu.Unlock()

	if s.Addr != "" {
		ln, err := net.Listen("tcp", s.Addr)
		if err != nil {
			return err
		}
		s.server = &http.Server{Handler: s.handler()}
		go func() {
			err := s.server.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				s.Log.Error().Err(err).Msg("spectator server stopped")
			}
		}()
		s.Log.Info().Str("addr", ln.Addr().String()).Msg("waiting for spectators")
	}

	if s.UI != nil {
		return s.UI.Initialise(field)
	}
	return nil
}

func (s *spectateUI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.Log.Warn().Err(err).Msg("spectator upgrade failed")
			return
		}
		sp := &spectator{conn: conn, send: make(chan spectateMessage, spectateQueue)}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		field := s.field
		msg := spectateMessage{Type: "snapshot", Field: &field, Tick: s.tick}
		for c, k := range s.shown {
			msg.Cells = append(msg.Cells, spectateCell{Cell: c, Glyph: k.String()})
		}
		sp.send <- msg
		s.clients[sp] = struct{}{}
		s.writers.Add(1)
		s.mu.Unlock()

		go s.writePump(sp)
		s.Log.Info().Str("remote", r.RemoteAddr).Msg("spectator connected")

		// Spectators only listen. Reading detects when they go away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				s.drop(sp)
				s.mu.Unlock()
				return
			}
		}
	})
	return mux
}

// writePump writes queued messages until the queue is closed, then says goodbye.
func (s *spectateUI) writePump(sp *spectator) {
	defer s.writers.Done()
	defer sp.conn.Close()

	for msg := range sp.send {
		sp.conn.SetWriteDeadline(time.Now().Add(spectateWriteTimeout))
		if err := sp.conn.WriteJSON(msg); err != nil {
			s.Log.Warn().Err(err).Msg("writing to spectator failed")
			return
		}
	}
	err := sp.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"), time.Now().Add(spectateWriteTimeout))
	if err != nil {
		s.Log.Debug().Err(err).Msg("closing spectator")
	}
}

// drop forgets sp and ends its writer. s.mu must be held.
func (s *spectateUI) drop(sp *spectator) {
	if _, ok := s.clients[sp]; !ok {
		return
	}
	delete(s.clients, sp)
	close(sp.send)
}

// broadcast queues msg for every spectator. Spectators with a full queue are dropped. s.mu must be held.
func (s *spectateUI) broadcast(msg spectateMessage) {
	for sp := range s.clients {
		select {
		case sp.send <- msg:
		default:
			s.Log.Warn().Msg("dropping slow spectator")
			s.drop(sp)
		}
	}
}

func (s *spectateUI) Draw(c Cell, k GlyphKind) error {
	s.mu.Lock()
	if k == GlyphBackground {
		delete(s.shown, c)
	} else {
		s.shown[c] = k
	}
	s.pending = append(s.pending, spectateCell{Cell: c, Glyph: k.String()})
	s.mu.Unlock()

	if s.UI != nil {
		return s.UI.Draw(c, k)
	}
	return nil
}

func (s *spectateUI) Flush(tick int) {
	s.mu.Lock()
	s.tick = tick
	if len(s.pending) > 0 {
		s.broadcast(spectateMessage{Type: "draw", Tick: tick, Cells: s.pending})
		s.pending = nil
	}
	s.mu.Unlock()

	if s.UI != nil {
		s.UI.Flush(tick)
	}
}

func (s *spectateUI) Finish(r Result) error {
	var result *multierror.Error

	s.mu.Lock()
	s.closed = true
	s.broadcast(spectateMessage{Type: "over", Tick: s.tick, Result: &r})
	for sp := range s.clients {
		s.drop(sp)
	}
	s.mu.Unlock()

	s.writers.Wait()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if s.UI != nil {
		if err := s.UI.Finish(r); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (s *spectateUI) Wait() {
	if s.UI != nil {
		s.UI.Wait()
	}
}
