package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"encoder-host/driver"
	"encoder-host/nibble"
	"encoder-host/sender"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebRequest struct {
	Command string `json:"command"` // "SEND", "DEMO", "PORTS"
	Text    string `json:"text"`
}

type WebResponse struct {
	Status  string      `json:"status"` // "success", "error", "progress"
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ByteEvent is one per-byte progress notification.
type ByteEvent struct {
	Index int    `json:"index"`
	Byte  byte   `json:"byte"`
	High  byte   `json:"high"`
	Low   byte   `json:"low"`
	Char  string `json:"char"`
}

type Handler struct {
	Sender   *sender.Sender
	Detector *driver.Detector
	mu       sync.Mutex // one send at a time per server instance
}

func NewHandler(snd *sender.Sender) *Handler {
	return &Handler{
		Sender:   snd,
		Detector: driver.NewDetector(snd.Config.BaudRate),
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var req WebRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			h.sendJSON(conn, "error", "Invalid JSON", nil)
			continue
		}

		h.handleRequest(conn, req)
	}
}

func (h *Handler) sendJSON(conn *websocket.Conn, status, message string, data interface{}) {
	resp := WebResponse{
		Status:  status,
		Message: message,
		Data:    data,
	}
	conn.WriteJSON(resp)
}

func (h *Handler) handleRequest(conn *websocket.Conn, req WebRequest) {
	switch req.Command {
	case "SEND":
		h.handleSend(conn, req.Text)
	case "DEMO":
		var buf bytes.Buffer
		nibble.WriteDemo(&buf)
		h.sendJSON(conn, "success", "Nibble demonstration", buf.String())
	case "PORTS":
		ports := h.Detector.ListPorts()
		if ports == nil {
			ports = []string{}
		}
		h.sendJSON(conn, "success", "Candidate ports", ports)
	default:
		h.sendJSON(conn, "error", "Unknown Command", nil)
	}
}

func (h *Handler) handleSend(conn *websocket.Conn, text string) {
	if text == "" {
		h.sendJSON(conn, "error", "Empty text", nil)
		return
	}

	// Try to lock for transmission
	if !h.mu.TryLock() {
		h.sendJSON(conn, "error", "Sender is busy", nil)
		return
	}
	defer h.mu.Unlock()

	h.Sender.OnProgress = func(p sender.Progress) {
		h.sendJSON(conn, "progress", "Byte transmitted", ByteEvent{
			Index: p.Index,
			Byte:  p.Pair.Byte,
			High:  p.Pair.High,
			Low:   p.Pair.Low,
			Char:  nibble.DisplayChar(p.Pair.Byte),
		})
	}
	defer func() { h.Sender.OnProgress = nil }()

	err := h.Sender.Send(text)
	if err != nil {
		h.sendJSON(conn, "error", err.Error(), nil)
		return
	}

	h.sendJSON(conn, "success", "Batch sent", h.Sender.Machine.GetStatusInfo())
}
