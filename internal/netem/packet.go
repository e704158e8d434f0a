// Simulated packets and the embedded origination-time tag.
package netem

import (
	"encoding/binary"
	"fmt"
	"math"
)

// TagSize is the serialized size of a timestamp tag in bytes.
const TagSize = 8

// Packet is a unit of simulated traffic. The tag travels alongside the
// payload and is opaque to the transport.
type Packet struct {
	Payload []byte
	tag     []byte
}

// NewPacket returns a packet with a zero-filled payload of size bytes.
func NewPacket(size int) *Packet {
	return &Packet{Payload: make([]byte, size)}
}

// Size returns the payload length in bytes.
func (p *Packet) Size() int { return len(p.Payload) }

// AttachTimestamp serializes the origination time (virtual seconds) into the
// packet's tag as a fixed 8-byte float.
func (p *Packet) AttachTimestamp(t float64) {
	buf := make([]byte, TagSize)
	binary.BigEndian.PutUint64(buf, math.Float64bits(t))
	p.tag = buf
}

// Timestamp deserializes the origination time. The second return value is
// false when no tag is attached. A tag decoding to NaN or Inf means the
// binary contract was broken.
func (p *Packet) Timestamp() (float64, bool, error) {
	if p.tag == nil {
		return 0, false, nil
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(p.tag))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("netem: corrupt timestamp tag value %v", v)
	}
	return v, true, nil
}

// HasTimestamp reports whether a tag is attached.
func (p *Packet) HasTimestamp() bool { return p.tag != nil }
