package models

import (
	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgPackContentType is the media type clients send in Accept to receive
// API responses as MessagePack instead of JSON.
const MsgPackContentType = "application/x-msgpack"

// View is everything a client needs to draw the widget: the session state,
// what to show, and the cards of the filtered view in grid order.
type View struct {
	Session      Snapshot     `json:"session" msgpack:"session"`
	Presentation Presentation `json:"presentation" msgpack:"presentation"`
	Cards        []Card       `json:"cards" msgpack:"cards"`
}

// NewView assembles the view of snap under dropdownMode.
func NewView(snap Snapshot, dropdownMode string) View {
	cards := make([]Card, len(snap.Filtered))
	for i, uni := range snap.Filtered {
		cards[i] = NewCard(uni)
	}
	return View{
		Session:      snap,
		Presentation: Present(snap, dropdownMode),
		Cards:        cards,
	}
}

// EncodeMsgPack serializes v. The models carry msgpack tags equal to their
// json tags, so both encodings use the same keys.
func EncodeMsgPack(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, serr.Wrap(err, "failed to msgpack encode response")
	}
	return data, nil
}

// DecodeMsgPack is the inverse of EncodeMsgPack.
func DecodeMsgPack(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return serr.Wrap(err, "failed to msgpack decode")
	}
	return nil
}
