package sse

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	EventSnapshot = "snapshot"
)

// Write одно событие в формате text/event-stream
func Write(w io.Writer, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}

// Ping комментарий для поддержания соединения
func Ping(w io.Writer) error {
	_, err := io.WriteString(w, ": ping\n\n")
	return err
}
