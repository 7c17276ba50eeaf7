package lane

import "encoding/json"

// Meta describes a lane for collaborators that render or list lanes.
type Meta struct {
	ID       ID     `json:"id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// Metas returns metadata for every lane in display order.
func Metas() []Meta {
	all := All()
	metas := make([]Meta, 0, len(all))
	for i, id := range all {
		metas = append(metas, Meta{ID: id, Title: id.Title(), Position: i})
	}
	return metas
}

// MarshalList serialises a metadata slice.
func MarshalList(metas []Meta) ([]byte, error) {
	return json.MarshalIndent(metas, "", "  ")
}
