// Command toolpathd is a small live-decode daemon: it accepts a G-code
// file path over a WebSocket connection, streams decode progress back to
// the caller, and issues a JWT bearer token that gates a follow-up REST
// call for the finished vertex count. It is a supplemental front-end
// around the same core package used by the batch gcode2obj/gcode2svg
// tools, and the only user of the websocket and JWT dependencies.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/printforge/toolpath/internal/authtoken"
	"github.com/printforge/toolpath/internal/livedecode"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type server struct {
	store  *livedecode.Store
	issuer *authtoken.Issuer
}

type decodeRequest struct {
	Path string `json:"path"`
}

func (s *server) handleDecode(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("toolpathd: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req decodeRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Printf("toolpathd: reading request: %v", err)
		return
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		conn.WriteJSON(livedecode.Progress{Done: true, Error: err.Error()})
		return
	}
	lines := strings.Split(string(data), "\n")

	jobID, err := newJobID()
	if err != nil {
		conn.WriteJSON(livedecode.Progress{Done: true, Error: err.Error()})
		return
	}

	s.store.Run(jobID, lines, func(p livedecode.Progress) {
		if err := conn.WriteJSON(p); err != nil {
			log.Printf("toolpathd: writing progress: %v", err)
		}
	})

	token, err := s.issuer.Issue(jobID)
	if err != nil {
		log.Printf("toolpathd: issuing token: %v", err)
		return
	}
	conn.WriteJSON(struct {
		JobID string `json:"job_id"`
		Token string `json:"token"`
	}{jobID, token})
}

func (s *server) handleResult(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	tokenString := strings.TrimPrefix(auth, "Bearer ")
	if tokenString == auth {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	jobID, err := s.issuer.Verify(tokenString)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	job, ok := s.store.Get(jobID)
	if !ok {
		http.Error(w, "job not found or still running", http.StatusNotFound)
		return
	}
	if job.Err != nil {
		http.Error(w, job.Err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		JobID       string `json:"job_id"`
		VertexCount int    `json:"vertex_count"`
		ObjectCount int    `json:"object_count"`
	}{job.ID, len(job.Model.Vertices), len(job.Model.ObjectOrder)})
}

func newJobID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("toolpathd: generating job id: %v", err)
	}
	return hex.EncodeToString(buf), nil
}

func main() {
	addr := flag.String("addr", ":8089", "listen address")
	secretHex := flag.String("secret", "", "hex-encoded HMAC secret for result tokens (random if empty)")
	ttl := flag.Duration("ttl", 15*time.Minute, "result token lifetime")
	flag.Parse()

	secret, err := resolveSecret(*secretHex)
	if err != nil {
		log.Fatalf("toolpathd: %v", err)
	}

	s := &server{
		store:  livedecode.NewStore(),
		issuer: authtoken.NewIssuer(secret, *ttl),
	}

	http.HandleFunc("/decode", s.handleDecode)
	http.HandleFunc("/result", s.handleResult)

	log.Printf("toolpathd: listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatalf("toolpathd: %v", err)
	}
}

func resolveSecret(hexSecret string) ([]byte, error) {
	if hexSecret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generating random secret: %v", err)
		}
		return buf, nil
	}
	secret, err := hex.DecodeString(hexSecret)
	if err != nil {
		return nil, fmt.Errorf("decoding -secret as hex: %v", err)
	}
	return secret, nil
}
