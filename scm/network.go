/*
Copyright (C) 2023-2026  Carl-Philip Hänsch

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import "fmt"
import "sync"
import "time"
import "net/http"
import "github.com/google/uuid"
import "github.com/gorilla/websocket"

// ReplServer is a REPL over websockets. Every text message is read as a
// sequence of expressions; results, output and error messages are sent
// back as text messages. Each connection gets its own Interp, all of them
// share one symbol table.
type ReplServer struct {
	Symbols *SymbolTable
	Setup   func(in *Interp) // called for every new session, may be nil
}

// websocket messages as an io.Writer
type wsWriter struct {
	ws *websocket.Conn
	m  sync.Mutex
}

func (w *wsWriter) Write(b []byte) (int, error) {
	w.m.Lock()
	defer w.m.Unlock()
	if err := w.ws.WriteMessage(websocket.TextMessage, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *ReplServer) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	ws, err := upgrader.Upgrade(res, req, nil)
	if err != nil {
		PrintError("websocket upgrade from " + req.RemoteAddr + ": " + err.Error())
		return
	}
	defer ws.Close()
	WithSession(uuid.NewString()[:8], func() {
		defer func() {
			if r := recover(); r != nil {
				PrintError("error in websocket session: " + fmt.Sprint(r))
			}
		}()
		in := NewInterp(s.Symbols)
		out := NewOutputPort("websocket", &wsWriter{ws: ws})
		in.Out = out
		in.In = NewStringPort("websocket", "")
		if s.Setup != nil {
			s.Setup(in)
		}
		for {
			// websocket read loop
			messageType, msg, err := ws.ReadMessage()
			if err != nil {
				if _, ok := err.(*websocket.CloseError); !ok {
					PrintError("error in websocket receive: " + err.Error())
				}
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}
			if err := in.Run(NewStringPort("websocket", string(msg)), out); err != nil {
				PrintError("error in websocket session: " + err.Error())
				return
			}
		}
	})
}

// ServeWebsocket listens on addr and serves the websocket REPL on every path
func ServeWebsocket(addr string, symbols *SymbolTable, setup func(in *Interp)) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           &ReplServer{symbols, setup},
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	fmt.Println("listening on " + addr)
	return server.ListenAndServe()
}
