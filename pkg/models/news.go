package models

import "encoding/json"

// WarTime carries the war clock. The server only advances it every few seconds.
type WarTime struct {
	Time int64 `json:"time"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a WarTime, keeping unmodeled members in Extra.
func (t *WarTime) UnmarshalJSON(data []byte) error {
	type plain WarTime
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*t = WarTime(v)
	t.Extra = extra
	return nil
}

// MarshalJSON encodes a WarTime, writing Extra members back out.
func (t WarTime) MarshalJSON() ([]byte, error) {
	type plain WarTime
	return encodeWithExtra(plain(t), t.Extra)
}

// NewsItem is one entry of a war's news feed. Message is localized.
type NewsItem struct {
	ID        int64    `json:"id"`
	Published int64    `json:"published"`
	Type      int64    `json:"type"`
	TagIDs    []string `json:"tagIds"`
	Message   string   `json:"message"`

	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes a NewsItem, keeping unmodeled members in Extra.
// A missing tagIds member decodes as an empty list.
func (n *NewsItem) UnmarshalJSON(data []byte) error {
	type plain NewsItem
	var v plain
	extra, err := decodeWithExtra(data, &v)
	if err != nil {
		return err
	}
	*n = NewsItem(v)
	if n.TagIDs == nil {
		n.TagIDs = []string{}
	}
	n.Extra = extra
	return nil
}

// MarshalJSON encodes a NewsItem, writing Extra members back out.
func (n NewsItem) MarshalJSON() ([]byte, error) {
	type plain NewsItem
	return encodeWithExtra(plain(n), n.Extra)
}
