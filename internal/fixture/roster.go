package fixture

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Roster is an id-keyed player set that remembers first-insertion order.
// A nil *Roster behaves as empty.
type Roster struct {
	order   []int
	players map[int]Player
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{players: make(map[int]Player)}
}

// Put stores p, replacing any player with the same id. A replaced player
// keeps its original position.
func (r *Roster) Put(p Player) {
	if _, ok := r.players[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.players[p.ID] = p
}

// Get returns the player with the given id.
func (r *Roster) Get(id int) (Player, bool) {
	if r == nil {
		return Player{}, false
	}
	p, ok := r.players[id]
	return p, ok
}

// Len returns the number of players.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Players returns the players in insertion order.
func (r *Roster) Players() []Player {
	if r == nil {
		return nil
	}
	out := make([]Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// Filter returns a new roster with the players matching keep, in order.
func (r *Roster) Filter(keep func(Player) bool) *Roster {
	out := NewRoster()
	for _, p := range r.Players() {
		if keep(p) {
			out.Put(p)
		}
	}
	return out
}

// MarshalJSON encodes the roster as an object keyed by player id, in
// insertion order.
func (r *Roster) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(id)))
		buf.WriteByte(':')
		b, err := json.Marshal(r.players[id])
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
