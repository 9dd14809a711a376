package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Envelope wraps every successful read and create
//
//	single:     {"data":{"attributes":{"id":1,"name":"Yern",...}}}
//	collection: {"data":{"attributes":{"0":{"attributes":{...}},"1":{"attributes":{...}}}}}
type Envelope struct {
	Data Data `json:"data"`
}

// Data holds either a Robot or a Collection under attributes
type Data struct {
	Attributes any `json:"attributes"`
}

// Item is one collection entry
type Item struct {
	Attributes Robot `json:"attributes"`
}

// Collection is a list of robots rendered as an object keyed by position
// keys follow store order ("0", "1", ...), which a Go map would not keep
type Collection []Robot

// MarshalJSON writes the positional object
func (c Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`":`)
		b, err := json.Marshal(Item{Attributes: r})
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Single wraps one robot
func Single(r Robot) Envelope { return Envelope{Data: Data{Attributes: r}} }

// Many wraps robots in store order; nil renders as an empty object
func Many(rs []Robot) Envelope { return Envelope{Data: Data{Attributes: Collection(rs)}} }

// Robot returns the wrapped robot of a single envelope
func (e Envelope) Robot() (Robot, bool) {
	r, ok := e.Data.Attributes.(Robot)
	return r, ok
}

// Robots returns the wrapped robots of a collection envelope
func (e Envelope) Robots() ([]Robot, bool) {
	c, ok := e.Data.Attributes.(Collection)
	return c, ok
}
