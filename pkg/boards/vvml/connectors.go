package vvml

import "github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"

// Connectors returns the external connector pinouts of the board.
//
// The MIPI_DPHY key "DPĤY1_DP1" is the name the board vendor published for
// lane 1 positive. It is kept as-is; Platform.Lint reports it.
func Connectors() []platform.Connector {
	return []platform.Connector{
		{
			Name: "MIPI_DPHY",
			Keyed: map[string]string{
				"DPHY1_CKP":     "A4",
				"DPĤY1_DP1":     "A5",
				"DPHY1_CKN":     "B4",
				"DPHY1_DN1":     "B5",
				"DPHY1_DP0":     "A3",
				"DPHY1_DP2":     "A2",
				"DPHY1_DN0":     "B3",
				"DPHY1_DN2":     "B2",
				"I2C_DPHY1_SCL": "T17",
				"DPHY1_DP3":     "A6",
				"I2C_DPHY1_SDA": "T16",
				"DPHY1_DN3":     "B6",
			},
		},
		// PMOD signals 1-4 and 7-10, in that order.
		{Name: "PMOD0", Pins: pins("D7 D6 E7 E6 D4 D5 E5 E4")},
		{Name: "PMOD1", Pins: pins("F7 F6 H3 H4 G7 G6 H7 H8")},
		{Name: "PMOD2", Pins: pins("L13 L12 L11 L10 K11 K10 K17 K16")},
		{Name: "PMOD3", Pins: pins("J17 J16 J15 J14 J13 J12 J11 J10")},
	}
}
