// servs/s_huff/huff_api/api.go
package huff_api

import (
	"context"
	"time"

	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/pkg/x_report"
)

const (
	SubjectEncode   = constant.SubjectEncode
	SubjectRunEvent = constant.SubjectRunEvent
)

// IHuff is the encode service as seen by its transports.
type IHuff interface {
	Encode(ctx context.Context, req EncodeRequest) (*EncodeResponse, error)
	Runs(ctx context.Context, limit int) ([]RunInfo, error)
	Run(ctx context.Context, id string) (*RunInfo, error)
}

// EncodeRequest carries the input either as text or as raw bytes.
// Data wins when both are set.
type EncodeRequest struct {
	Text      string `json:"text,omitempty"`
	Data      []byte `json:"data,omitempty"`
	DumpBytes int    `json:"dump_bytes,omitempty"`
	Store     bool   `json:"store,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Input returns the bytes to encode.
func (r EncodeRequest) Input() []byte {
	if len(r.Data) > 0 {
		return r.Data
	}
	return []byte(r.Text)
}

type EncodeResponse struct {
	ID     string           `json:"id,omitempty"`
	Digest string           `json:"digest,omitempty"`
	Cached bool             `json:"cached"`
	Stored bool             `json:"stored"`
	Report *x_report.Report `json:"report,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// RunInfo summarizes one encoding run.
type RunInfo struct {
	ID         string    `json:"id"`
	Digest     string    `json:"digest"`
	Source     string    `json:"source"`
	Bytes      int       `json:"bytes"`
	Bits       uint64    `json:"bits"`
	Distinct   int       `json:"distinct"`
	MaxCodeLen int       `json:"max_code_len"`
	Ratio      float64   `json:"ratio"`
	Cached     bool      `json:"cached"`
	CreatedAt  time.Time `json:"created_at"`
}

// Event is pushed to websocket and bus listeners.
type Event struct {
	Type string   `json:"type"`
	Run  *RunInfo `json:"run,omitempty"`
}

type RunsResponse struct {
	Runs []RunInfo `json:"runs"`
}
