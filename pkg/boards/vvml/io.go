package vvml

import "github.com/OpenTraceLab/OpenTraceBoards/pkg/platform"

// Shorthands keep the pin table readable.
var pins = platform.Pins

func res(name string, number int, locs, iostd string, misc ...platform.Misc) platform.Resource {
	return platform.Resource{Name: name, Number: number, Pins: pins(locs), IOStandard: iostd, Misc: misc}
}

func sub(name, locs string) platform.Subsignal {
	return platform.Subsignal{Name: name, Pins: pins(locs)}
}

func subStd(name, locs, iostd string) platform.Subsignal {
	return platform.Subsignal{Name: name, Pins: pins(locs), IOStandard: iostd}
}

func hyperRAM(number int, dq, rwds, csN, rstN, clk string) platform.Resource {
	return platform.Resource{
		Name:   "hyperram",
		Number: number,
		Subsignals: []platform.Subsignal{
			subStd("dq", dq, "LVCMOS18H"),
			subStd("rwds", rwds, "LVCMOS18H"),
			subStd("cs_n", csN, "LVCMOS18H"),
			subStd("rst_n", rstN, "LVCMOS18H"),
			// Differential clock; the complement pin is implied by the LVDS buffer.
			subStd("clk", clk, "LVDS"),
		},
		Misc: []platform.Misc{"SLEWRATE=FAST"},
	}
}

// IO returns the package pin table of the board. Each call returns a fresh
// copy.
func IO() []platform.Resource {
	return []platform.Resource{
		// Clocks
		res("clk27", 0, "R11", "LVCMOS18H"),
		res("clk24", 0, "N14", "LVCMOS18"),

		// Switches and buttons
		res("user_dip_btn", 0, "R5", "LVCMOS18"),
		res("user_dip_btn", 1, "T4", "LVCMOS18"),
		res("user_dip_btn", 2, "R7", "LVCMOS18"),
		res("user_dip_btn", 3, "T8", "LVCMOS18"),
		res("user_btn", 0, "K2", "LVCMOS33"),
		res("user_btn", 1, "L1", "LVCMOS33"),
		res("gsrn", 0, "L2", "LVCMOS33"),
		res("program", 0, "D13", "LVCMOS33"),
		res("cam_reset", 0, "N15", "LVCMOS18H", "PULLMODE=UP"), // SW1

		// LEDs
		res("user_led", 0, "H1", "LVCMOS33"),
		res("user_led", 1, "J1", "LVCMOS33"),
		res("user_led", 2, "H5", "LVCMOS33"),
		res("user_led", 3, "H6", "LVCMOS33"),
		res("user_led_rgb", 0, "J7 J6 J2", "LVCMOS33"),
		res("user_led_rgb", 1, "J3 J4 J5", "LVCMOS33"),

		// HyperRAM
		hyperRAM(0, "U5 U6 T6 N6 P6 U7 U8 T7", "U4", "N5", "P5", "R4"),
		hyperRAM(1, "P8 N8 U9 U10 T10 R10 P9 N9", "N7", "T9", "P7", "T11"),

		// SPI flash
		{
			Name: "spiflash",
			Subsignals: []platform.Subsignal{
				sub("cs_n", "C14"),
				sub("clk", "D16"),
				sub("mosi", "C13"),
				sub("miso", "C16"),
				sub("wp", "C17"),
				sub("hold", "B16"),
			},
			IOStandard: "LVCMOS33",
		},
		{
			Name: "spiflash4x",
			Subsignals: []platform.Subsignal{
				sub("cs_n", "C14"),
				sub("clk", "D16"),
				sub("dq", "C13 C16 C17 B16"),
			},
			IOStandard: "LVCMOS33",
		},

		// Camera I2C
		{
			Name: "i2c",
			Subsignals: []platform.Subsignal{
				sub("scl", "R15"),
				sub("sda", "U15"),
			},
			IOStandard: "LVCMOS18H",
		},

		// High resolution camera
		res("camera_mclk", 0, "M14", "LVCMOS18H"),
		{
			Name: "camera",
			Subsignals: []platform.Subsignal{
				sub("clkp", "D1"),
				sub("clkn", "E2"),
				sub("dp", "E1 C1 F1 B1"),
				sub("dn", "F2 D2 G2 C2"),
			},
		},
		{
			Name: "cam_ctrl",
			Subsignals: []platform.Subsignal{
				sub("cam_reset", "N15"),
				sub("cam_frame_sync", "P15"),
			},
			IOStandard: "LVCMOS18",
		},

		// Serial
		{
			Name: "serial",
			Subsignals: []platform.Subsignal{
				subStd("rx", "B17", "LVCMOS33"),
				subStd("tx", "A16", "LVCMOS33"),
			},
		},
	}
}
