package sshserv

import (
	"bufio"
	"crypto/rand"
	"crypto/rsa"
	"encoding/binary"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
)

// HandlerFunc answers a non-SCP exec command with output and an exit code.
type HandlerFunc func(cmd string) (output string, exit int)

// Server is a test SSH endpoint that accepts any user without authentication.
// Exec channels are handled two ways: commands beginning with "scp" run a
// minimal SCP sink that records uploaded files in memory, and any other
// command is answered by Handler (default: "ok" with exit 0). Every executed
// command line is recorded for assertions.
type Server struct {
	Handler HandlerFunc

	ln   net.Listener
	stop chan struct{}
	done chan struct{}

	mu       sync.Mutex
	files    map[string][]byte
	commands []string
}

// Start launches the server listening on listenAddr (e.g., 127.0.0.1:0).
func Start(listenAddr string, handler HandlerFunc) (*Server, error) {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, err
	}
	if handler == nil {
		handler = func(string) (string, int) { return "ok\n", 0 }
	}
	s := &Server{
		Handler: handler,
		ln:      ln,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		files:   make(map[string][]byte),
	}

	go func() {
		defer close(s.done)
		priv, _ := rsa.GenerateKey(rand.Reader, 2048)
		signer, _ := ssh.NewSignerFromKey(priv)
		cfg := &ssh.ServerConfig{NoClientAuth: true}
		cfg.AddHostKey(signer)

		for {
			_ = ln.(*net.TCPListener).SetDeadline(time.Now().Add(500 * time.Millisecond))
			conn, err := ln.Accept()
			select {
			case <-s.stop:
				if conn != nil {
					_ = conn.Close()
				}
				return
			default:
			}
			if err != nil {
				if ne, ok := err.(net.Error); ok && ne.Timeout() {
					continue
				}
				continue
			}
			go s.handleConn(conn, cfg)
		}
	}()
	return s, nil
}

// Addr reports the listener's address, useful with port 0.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Stop closes the listener and waits for shutdown.
func (s *Server) Stop() {
	close(s.stop)
	_ = s.ln.Close()
	<-s.done
}

// File returns the contents of an uploaded file by name.
func (s *Server) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[name]
	return b, ok
}

// FileNames returns the names of all uploaded files.
func (s *Server) FileNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	return names
}

// Commands returns every exec command line received so far.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *Server) handleConn(raw net.Conn, cfg *ssh.ServerConfig) {
	sc, chans, reqs, err := ssh.NewServerConn(raw, cfg)
	if err != nil {
		_ = raw.Close()
		return
	}
	_ = sc
	go ssh.DiscardRequests(reqs)
	for ch := range chans {
		if ch.ChannelType() != "session" {
			_ = ch.Reject(ssh.UnknownChannelType, "")
			continue
		}
		c, chReqs, err := ch.Accept()
		if err != nil {
			continue
		}
		go s.handleSession(c, chReqs)
	}
}

func (s *Server) handleSession(ch ssh.Channel, in <-chan *ssh.Request) {
	for req := range in {
		switch req.Type {
		case "exec":
			cmd := parseExecPayload(req.Payload)
			req.Reply(true, nil)
			s.mu.Lock()
			s.commands = append(s.commands, cmd)
			s.mu.Unlock()
			s.runExec(ch, cmd)
			return
		case "pty-req", "shell":
			req.Reply(true, nil)
		default:
			req.Reply(false, nil)
		}
	}
}

func (s *Server) runExec(ch ssh.Channel, cmd string) {
	defer ch.Close()
	if cmd == "scp" || strings.HasPrefix(cmd, "scp ") {
		s.runSCPSink(ch)
		sendExitStatus(ch, 0)
		return
	}
	out, code := s.Handler(cmd)
	_, _ = ch.Write([]byte(out))
	sendExitStatus(ch, code)
}

// runSCPSink speaks just enough of the SCP sink protocol to accept uploads:
// ack, read a "C<mode> <size> <name>" record, ack, read the data plus the
// trailing NUL, ack. Directory records and timestamps are acked and ignored.
func (s *Server) runSCPSink(ch ssh.Channel) {
	br := bufio.NewReader(ch)
	ack := func() { _, _ = ch.Write([]byte{0}) }
	ack()
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			continue
		}
		switch line[0] {
		case 'C':
			parts := strings.SplitN(line, " ", 3)
			if len(parts) != 3 {
				return
			}
			size, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return
			}
			name := parts[2]
			ack()
			buf := make([]byte, size)
			if _, err := io.ReadFull(br, buf); err != nil {
				return
			}
			if _, err := br.ReadByte(); err != nil {
				return
			}
			s.mu.Lock()
			s.files[name] = buf
			s.mu.Unlock()
			ack()
		case 'D', 'T':
			ack()
		case 'E':
			ack()
			return
		default:
			return
		}
	}
}

func parseExecPayload(payload []byte) string {
	if len(payload) < 4 {
		return ""
	}
	n := binary.BigEndian.Uint32(payload)
	if int(n) > len(payload)-4 {
		return ""
	}
	return string(payload[4 : 4+n])
}

func sendExitStatus(ch ssh.Channel, code int) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(code))
	_, _ = ch.SendRequest("exit-status", false, b[:])
}
