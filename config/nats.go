package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rskv-p/huff/constant"
)

// NATSSettings configures the bus transport and the optional embedded server.
type NATSSettings struct {
	Name           string        `json:"name"`
	URL            string        `json:"url"`
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	Embedded       bool          `json:"embedded"`
	Subject        string        `json:"subject"`
	QueueGroup     string        `json:"queue_group"`
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DefaultNATS returns settings for a local embedded server.
func DefaultNATS() NATSSettings {
	return NATSSettings{
		Name:           "huff",
		Host:           "127.0.0.1",
		Port:           4222,
		Embedded:       true,
		Subject:        constant.SubjectEncode,
		QueueGroup:     constant.DefaultQueueName,
		RequestTimeout: 5 * time.Second,
	}
}

// Validate checks subject and connectivity settings.
func (n NATSSettings) Validate() error {
	if n.Subject == "" {
		return errors.New("subject required")
	}
	if n.Embedded {
		if n.Port < -1 || n.Port > 65535 {
			return fmt.Errorf("port(%d)", n.Port)
		}
		return nil
	}
	if n.URL == "" {
		return errors.New("url required when not embedded")
	}
	return nil
}

// ClientURL returns the URL a client should dial.
func (n NATSSettings) ClientURL() string {
	if n.URL != "" {
		return n.URL
	}
	return fmt.Sprintf("nats://%s:%d", n.Host, n.Port)
}
