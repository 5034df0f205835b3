package model

// Placement asks for Count nodes placed uniformly at random inside a
// square of side AreaSize. Seed makes the placement reproducible.
type Placement struct {
	Count    int     `json:"count" yaml:"count" toml:"count"`
	AreaSize float64 `json:"area_size" yaml:"area_size" toml:"area_size"`
	Seed     uint64  `json:"seed" yaml:"seed" toml:"seed"`
}

// ScenarioDefinition describes one topology-control run: the node set
// (explicit or generated) and the run-wide parameters.
//
// Nodes takes precedence over Placement when both are present.
type ScenarioDefinition struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Title string `json:"title" yaml:"title" toml:"title"`

	ConeAngle         float64 `json:"cone_angle" yaml:"cone_angle" toml:"cone_angle"`
	InitialPower      float64 `json:"initial_power" yaml:"initial_power" toml:"initial_power"`
	MaxPower          float64 `json:"max_power" yaml:"max_power" toml:"max_power"`
	GrowthFactor      float64 `json:"growth_factor" yaml:"growth_factor" toml:"growth_factor"`
	ShrinkBack        bool    `json:"shrink_back" yaml:"shrink_back" toml:"shrink_back"`
	AsymmetricRemoval bool    `json:"asymmetric_removal" yaml:"asymmetric_removal" toml:"asymmetric_removal"`

	Nodes     []NodeSpec `json:"nodes,omitempty" yaml:"nodes,omitempty" toml:"nodes,omitempty"`
	Placement *Placement `json:"placement,omitempty" yaml:"placement,omitempty" toml:"placement,omitempty"`
}
