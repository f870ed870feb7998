package state

import "slices"

type PacketKind uint8

const (
	KindTraceroute PacketKind = iota + 1
	KindRouting
)

func (k PacketKind) String() string {
	switch k {
	case KindTraceroute:
		return "TRACEROUTE"
	case KindRouting:
		return "ROUTING"
	}
	return "UNKNOWN"
}

// Packet is the envelope delivered between nodes. Body is either *Traceroute or *Advertisement.
type Packet struct {
	Src  Addr
	Dst  Addr // empty for advertisements
	Body PacketBody
}

type PacketBody interface {
	Kind() PacketKind
	clone() PacketBody
}

// Traceroute is forwardable data traffic. Route lists every node the packet visited.
type Traceroute struct {
	Route []Addr
}

func (t *Traceroute) Kind() PacketKind {
	return KindTraceroute
}

func (t *Traceroute) clone() PacketBody {
	return &Traceroute{Route: slices.Clone(t.Route)}
}

// Advertisement carries an encoded distance vector from a neighbour
type Advertisement struct {
	Content []byte
}

func (a *Advertisement) Kind() PacketKind {
	return KindRouting
}

func (a *Advertisement) clone() PacketBody {
	return &Advertisement{Content: slices.Clone(a.Content)}
}

func (p *Packet) Kind() PacketKind {
	if p.Body == nil {
		return 0
	}
	return p.Body.Kind()
}

func (p *Packet) IsTraceroute() bool {
	return p.Kind() == KindTraceroute
}

// Clone deep copies the packet so that a sender and its receivers never share a body
func (p *Packet) Clone() *Packet {
	np := &Packet{Src: p.Src, Dst: p.Dst}
	if p.Body != nil {
		np.Body = p.Body.clone()
	}
	return np
}

func NewTraceroute(src, dst Addr) *Packet {
	return &Packet{
		Src:  src,
		Dst:  dst,
		Body: &Traceroute{Route: []Addr{src}},
	}
}
