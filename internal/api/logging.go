package api

import (
	"encoding/json"
	"log"
	"time"
)

type logEntry struct {
	Time      string `json:"time"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Duration  string `json:"duration"`
	RequestID string `json:"request_id"`
	Error     string `json:"error,omitempty"`
}

func logRequest(start time.Time, method, path string, status int, requestID string, err error) {
	entry := logEntry{
		Time:      start.Format(time.RFC3339),
		Method:    method,
		Path:      path,
		Status:    status,
		Duration:  time.Since(start).String(),
		RequestID: requestID,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, merr := json.Marshal(entry)
	if merr != nil {
		log.Printf("error marshaling log entry: %v", merr)
		return
	}
	log.Println(string(data))
}
