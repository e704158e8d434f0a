package netem

// MACHeaderBytes approximates the 802.11 MAC framing added to every payload
// on the air. It only matters for the frame sizes seen by subscribers.
const MACHeaderBytes = 36

// FrameObserver receives the size of every transmitted link-layer frame.
type FrameObserver func(frameSize int)

// LinkLayer fans transmitted frame sizes out to subscribers. It decouples
// measurement from the transport: the overhead classifier registers here and
// never touches channels or the control plane directly.
type LinkLayer struct {
	observers []FrameObserver
}

// NewLinkLayer returns an empty link layer.
func NewLinkLayer() *LinkLayer {
	return &LinkLayer{}
}

// Subscribe registers an observer for all subsequent transmissions.
func (l *LinkLayer) Subscribe(obs FrameObserver) {
	l.observers = append(l.observers, obs)
}

// Transmit publishes one frame of the given payload size. MAC framing is
// added before observers see the size.
func (l *LinkLayer) Transmit(payloadSize int) {
	size := payloadSize + MACHeaderBytes
	for _, obs := range l.observers {
		obs(size)
	}
}

// TransmitRaw publishes a frame whose on-air size is already known, such as
// control frames emitted by the routing protocol model.
func (l *LinkLayer) TransmitRaw(frameSize int) {
	for _, obs := range l.observers {
		obs(frameSize)
	}
}
