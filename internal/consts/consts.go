package consts

const (
	KELVIN = 273.15 // Kelvin temperature offset (K)

	ROOM_TEMP = 27.0   // Temperature declared by original-model netlists (C)
	CRYO_TEMP = -269.0 // Temperature declared by modified-model netlists (C), about 4 K

	VDD = 1.8 // Supply rail of the 01v8 devices (V)

	TOLERANCE = 1e-6 // Dimension match tolerance (um)

	OUTPUT_ROOT = "circuits"
	PDK_ROOT    = "/foss/pdks/sky130A"
	CORNER      = "tt"
	SIMULATOR   = "ngspice"
)
