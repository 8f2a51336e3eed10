package huff_serv

import (
	"time"

	"github.com/rskv-p/huff/servs/s_huff/huff_api"
)

// Run is the stored record of an encoding run. Codes and packed bytes are
// not kept.
type Run struct {
	ID         string `gorm:"primaryKey;size:32"`
	Digest     string `gorm:"index;size:64"`
	Source     string `gorm:"size:64"`
	Bytes      int
	Bits       uint64
	Distinct   int
	MaxCodeLen int
	Ratio      float64
	CreatedAt  time.Time `gorm:"index"`
}

func (r Run) Info() huff_api.RunInfo {
	return huff_api.RunInfo{
		ID:         r.ID,
		Digest:     r.Digest,
		Source:     r.Source,
		Bytes:      r.Bytes,
		Bits:       r.Bits,
		Distinct:   r.Distinct,
		MaxCodeLen: r.MaxCodeLen,
		Ratio:      r.Ratio,
		CreatedAt:  r.CreatedAt,
	}
}
