package export

import (
	"encoding/json"
	"encoding/xml"
	"io"

	"gopkg.in/yaml.v3"
)

func EncodeYAML(w io.Writer, t *Tree) error {
	var enc = yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}

func DecodeYAML(r io.Reader) (*Tree, error) {
	var t Tree
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func EncodeJSON(w io.Writer, t *Tree) error {
	var enc = json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func DecodeJSON(r io.Reader) (*Tree, error) {
	var t Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// EncodeXML writes one element per node, named after the node. Text leaves
// hold their text as character data.
func EncodeXML(w io.Writer, t *Tree) error {
	var enc = xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(t); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	var _, err = io.WriteString(w, "\n")
	return err
}

func (t *Tree) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	var start = xml.StartElement{Name: xml.Name{Local: t.Name}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if t.Name == TextName {
		if err := e.EncodeToken(xml.CharData(t.Text)); err != nil {
			return err
		}
	}
	for _, child := range t.Children {
		if err := e.Encode(child); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
