package models

import "encoding/json"

// Rich text node types.
const (
	NodeDocument      = "document"
	NodeParagraph     = "paragraph"
	NodeHeading1      = "heading-1"
	NodeHeading2      = "heading-2"
	NodeHeading3      = "heading-3"
	NodeHeading4      = "heading-4"
	NodeULList        = "unordered-list"
	NodeOLList        = "ordered-list"
	NodeListItem      = "list-item"
	NodeQuote         = "blockquote"
	NodeHR            = "hr"
	NodeEmbeddedAsset = "embedded-asset-block"
	NodeHyperlink     = "hyperlink"
	NodeText          = "text"
)

// Text marks.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkCode      = "code"
)

// RichText is a node of a structured rich text document.
type RichText struct {
	NodeType string       `json:"nodeType"`
	Value    string       `json:"value,omitempty"`
	Marks    []Mark       `json:"marks,omitempty"`
	Data     RichTextData `json:"data"`
	Content  []RichText   `json:"content,omitempty"`
}

type Mark struct {
	Type string `json:"type"`
}

type RichTextData struct {
	URI    string          `json:"uri,omitempty"`
	Target json.RawMessage `json:"target,omitempty"`
}

// TargetAsset decodes the embedded asset of an embedded-asset-block node.
func (d RichTextData) TargetAsset() *Asset {
	if isNull(d.Target) {
		return nil
	}
	var a Asset
	if err := json.Unmarshal(d.Target, &a); err != nil || a.URL == "" {
		return nil
	}
	return &a
}

func (n RichText) HasMark(mark string) bool {
	for _, m := range n.Marks {
		if m.Type == mark {
			return true
		}
	}
	return false
}
