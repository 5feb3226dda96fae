// Package com contains connection primitives shared by every part of the hub.
//
// Each message on the wire is a JSON-encoded "packet" of the following structure:
//
//	t - (required) one of the predefined unique packet types;
//	p - (optional) packet payload with arbitrary data.
//
// Packets differentiate by their predefined types with which it is possible
// to unwrap the payload into distinct request/response data structures.
// The hub relays most payloads without looking inside them.
package com

import "github.com/goccy/go-json"

type In struct {
	T       uint8           `json:"t"`
	Payload json.RawMessage `json:"p,omitempty"` // should be json.RawMessage for 2-pass unmarshal
}

type Out struct {
	T       uint8 `json:"t"`
	Payload any   `json:"p,omitempty"`
}
