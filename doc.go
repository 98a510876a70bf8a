// Package max7219 drives a daisy-chain of MAX7219/MAX7221 LED display
// controllers sharing one serial bus.
//
// The MAX7219 drives up to 8 digits of a 7-segment display, or one 8x8 LED
// matrix. Chips are chained by wiring DOUT of one chip to DIN of the next;
// every chip shifts 16 bits per command, and all of them load the command
// sitting in their shift register on the same rising edge of LOAD (CS on
// the MAX7221).
//
// # Wire Format
//
// Every command is one framed bus transaction carrying one (address, data)
// byte pair per chip of the chain, address first:
//
//	device:   0            1            ...  N-1
//	bytes:    addr  data   addr  data   ...  addr  data
//
// To write a register of a single chip, every other chip receives the
// no-op pair (0x00, 0x00) and keeps its state:
//
//	// 4 chips, shut down device 2
//	00 00  00 00  0C 00  00 00
//
// # Hardware Connection
//
//	Chip Pin   → System Pin
//	GND        → GND
//	V+         → 5V
//	CLK        → SPI Clock (SCLK)
//	DIN        → SPI Data (MOSI)
//	LOAD/CS    → SPI Chip Select, or any GPIO
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/flavioheleno/max7219"
//		"github.com/flavioheleno/max7219/spibus"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		p, _ := spireg.Open("")
//		defer p.Close()
//
//		// nil latch: the SPI chip select frames each transaction.
//		bus, _ := spibus.New(p, nil, nil)
//
//		dev, _ := max7219.New(bus).WithDeviceCount(4)
//		dev.Init(nil)
//
//		dev.SetIntensityAll(0x03)
//		dev.WriteDigit(2, 0, 0xFF) // top row of the third module
//		dev.PowerOffDevice(3)
//	}
//
// # Validation
//
// Device indexes, intensities (0-15), scan limits (1-8), digits (0-7) and
// registers are checked before anything is sent. A rejected call never
// touches the bus. Failures of the transport are returned as *BusError.
//
// # Scan Limit
//
// SetScanLimitAll and SetDeviceScanLimit take the number of scanned digits,
// 1 to 8. The chip stores that count minus one.
//
// # Concurrency
//
// A Dev owns its bus and is meant to be used from a single goroutine. Each
// call returns once its transactions are done.
//
// # Matrix Modules
//
// Package matrix draws images across a chain of 8x8 modules and only sends
// the rows that changed.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/MAX7219-MAX7221.pdf
package max7219
