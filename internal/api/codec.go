// Package api defines the InvoiceService wire surface: request and response
// messages, the JSON codec that carries them over Connect, and the handler
// and client constructors.
package api

import (
	"encoding/json"
	"fmt"
)

// CodecName replaces Connect's protojson codec so handlers accept
// "application/json" bodies made of plain Go structs.
const CodecName = "json"

// Codec marshals messages with encoding/json.
type Codec struct{}

func (Codec) Name() string {
	return CodecName
}

func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
