// Copyright AssistJur.IA. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability times pipeline stages and emits structured
// JSON events when debugging is enabled. It stays silent in normal
// runs; set ASSISTJUR_DEBUG=1 to see every stage.
package observability

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// Level controls how much an observer emits.
type Level int

const (
	LevelOff   Level = 0
	LevelDebug Level = 1
)

// Event is one timed pipeline operation.
type Event struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	SourceFile string                 `json:"source_file,omitempty"`
	DurationMs int64                  `json:"duration_ms"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	RowCount   int                    `json:"row_count,omitempty"`
	IssueCount int                    `json:"issue_count,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Observer times operations across pipeline components.
type Observer struct {
	level  Level
	writer io.Writer
}

// New creates an observer writing JSON events to writer.
func New(level Level, writer io.Writer) *Observer {
	return &Observer{level: level, writer: writer}
}

// NewFromEnv enables debug output when ASSISTJUR_DEBUG is set to
// anything but empty or "0".
func NewFromEnv(writer io.Writer) *Observer {
	level := LevelOff
	if v := os.Getenv("ASSISTJUR_DEBUG"); v != "" && v != "0" {
		level = LevelDebug
	}
	return New(level, writer)
}

// Enabled reports whether events are being emitted.
func (o *Observer) Enabled() bool {
	return o != nil && o.level > LevelOff
}

// StartTiming returns a completion function that logs the elapsed
// event. A nil observer is safe and does nothing.
func (o *Observer) StartTiming(component, operation, sourceFile string) func(success bool, metadata map[string]interface{}) {
	if !o.Enabled() {
		return func(bool, map[string]interface{}) {}
	}
	start := time.Now()
	return func(success bool, metadata map[string]interface{}) {
		o.Log(Event{
			Component:  component,
			Operation:  operation,
			SourceFile: sourceFile,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// Log emits one event.
func (o *Observer) Log(ev Event) {
	if !o.Enabled() {
		return
	}
	json.NewEncoder(o.writer).Encode(ev)
}
