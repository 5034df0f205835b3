package model

// NodeSpec is the input description of one wireless node: a unique id
// and a fixed planar position. Specs carry no algorithm state; the
// topology engine builds its own nodes from them.
type NodeSpec struct {
	ID int     `json:"id" yaml:"id" toml:"id"`
	X  float64 `json:"x" yaml:"x" toml:"x"`
	Y  float64 `json:"y" yaml:"y" toml:"y"`
}
