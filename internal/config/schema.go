package config

// fileSchema is the raw shape of icemos.hcl.
type fileSchema struct {
	OutputRoot  string        `hcl:"output_root,optional"`
	Tolerance   *float64      `hcl:"tolerance,optional"`
	PDKRoot     string        `hcl:"pdk_root,optional"`
	Corner      string        `hcl:"corner,optional"`
	Simulator   string        `hcl:"simulator,optional"`
	Temperature *temperatures `hcl:"temperature,block"`
	Libraries   []*library    `hcl:"library,block"`
	Sweeps      []*sweepBlock `hcl:"sweep,block"`
}

// temperatures sets the .temp of the two netlist variants.
type temperatures struct {
	Original *float64 `hcl:"original,optional"`
	Modified *float64 `hcl:"modified,optional"`
}

// library points a polarity at its vendor model file.
type library struct {
	Polarity string `hcl:"polarity,label"`
	Path     string `hcl:"path"`
}

// sweepBlock is one named render plan. The bin is given directly or via
// width and length in micrometres.
type sweepBlock struct {
	Name     string     `hcl:"name,label"`
	Polarity string     `hcl:"polarity"`
	Family   string     `hcl:"family,optional"`
	Bin      *int       `hcl:"bin,optional"`
	Width    *float64   `hcl:"width,optional"`
	Length   *float64   `hcl:"length,optional"`
	Gate     *axisBlock `hcl:"gate,block"`
	Output   *axisBlock `hcl:"output,block"`
	Simulate bool       `hcl:"simulate,optional"`
}

type axisBlock struct {
	Start float64 `hcl:"start"`
	Stop  float64 `hcl:"stop"`
	Step  float64 `hcl:"step"`
}
