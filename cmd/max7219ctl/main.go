// Command max7219ctl sends one command to a chain of MAX7219 displays.
//
// Usage:
//
//	max7219ctl [-config config.yaml] [-device N] command [args]
//
// Commands:
//
//	init                 power-up sequence from the chain section of the config
//	on | off             leave or enter shutdown mode
//	test on|off          display test mode (all LEDs lit)
//	clear                zero every digit register
//	intensity 0-15       brightness
//	scanlimit 1-8        number of scanned digits
//	decode none|b|MASK   Code B decoding per digit
//	row DIGIT VALUE      write VALUE to digit register DIGIT (0-7)
//
// Without -device, or with -device -1, the command goes to every device of
// the chain.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/flavioheleno/max7219"
	"github.com/flavioheleno/max7219/gpiodlatch"
	"github.com/flavioheleno/max7219/internal/config"
	"github.com/flavioheleno/max7219/internal/logging"
	"github.com/flavioheleno/max7219/spibus"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

var version = "dev"

var (
	configPath = flag.String("config", "", "Path to the YAML configuration (defaults if empty)")
	device     = flag.Int("device", -1, "Device index in the chain, -1 for all devices")
)

var errUsage = errors.New("usage: max7219ctl [-config file] [-device N] command [args]")

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logging.Default().Error("failed to load configuration", "error", err)
			os.Exit(1)
		}
	}
	log := logging.New(cfg.Logging, version)

	if err := open(cfg, log, func(d *max7219.Dev) error {
		return run(d, cfg, *device, flag.Args(), log)
	}); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// open sets up the host, the SPI port and the latch, then calls fn with the
// chain.
func open(cfg *config.Config, log *logging.Logger, fn func(d *max7219.Dev) error) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph.io: %w", err)
	}

	p, err := spireg.Open(cfg.SPI.Port)
	if err != nil {
		return fmt.Errorf("failed to open SPI port: %w", err)
	}
	defer p.Close()

	var load spibus.Latch
	switch strings.ToLower(cfg.Latch.Kind) {
	case config.LatchPeriph:
		pin := gpioreg.ByName(cfg.Latch.Pin)
		if pin == nil {
			return fmt.Errorf("GPIO pin %s not found", cfg.Latch.Pin)
		}
		load = pin
	case config.LatchGPIOD:
		l, err := gpiodlatch.Open(cfg.Latch.Chip, cfg.Latch.Offset)
		if err != nil {
			return err
		}
		defer l.Close()
		load = l
	}

	bus, err := spibus.New(p, load, &spibus.Opts{
		Hz:   physic.Frequency(cfg.SPI.Hz) * physic.Hertz,
		Mode: spi.Mode(cfg.SPI.Mode),
	})
	if err != nil {
		return err
	}

	d, err := max7219.New(bus).WithDeviceCount(cfg.Chain.Devices)
	if err != nil {
		return err
	}
	log.Debug("chain opened", "bus", bus.String(), "devices", d.DeviceCount())
	return fn(d)
}

// run executes one command on the chain. device < 0 targets every device.
func run(d *max7219.Dev, cfg *config.Config, device int, args []string, log *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	all := device < 0
	log = log.With("command", cmd, "device", device)

	var err error
	switch cmd {
	case "init":
		err = runInit(d, cfg, args)
	case "on", "off":
		if err = wantArgs(args, 0); err == nil {
			err = power(d, all, device, cmd == "on")
		}
	case "test":
		var on bool
		if on, err = parseOnOff(args); err == nil {
			if all {
				err = d.TestAll(on)
			} else {
				err = d.TestDevice(device, on)
			}
		}
	case "clear":
		if err = wantArgs(args, 0); err == nil {
			if all {
				err = d.ClearAll()
			} else {
				err = d.ClearDisplay(device)
			}
		}
	case "intensity":
		var v byte
		if v, err = parseByteArg(args); err == nil {
			if all {
				err = d.SetIntensityAll(v)
			} else {
				err = d.SetIntensity(device, v)
			}
		}
	case "scanlimit":
		var n int
		if n, err = parseIntArg(args); err == nil {
			if all {
				err = d.SetScanLimitAll(n)
			} else {
				err = d.SetDeviceScanLimit(device, n)
			}
		}
	case "decode":
		if err = wantArgs(args, 1); err == nil {
			var m byte
			if m, err = config.ParseDecode(args[0]); err == nil {
				if all {
					err = d.SetDecodeModeAll(max7219.Decode(m))
				} else {
					err = d.SetDecodeMode(device, max7219.Decode(m))
				}
			}
		}
	case "row":
		err = writeRow(d, all, device, args)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		return err
	}
	log.Info("command sent")
	return nil
}

func runInit(d *max7219.Dev, cfg *config.Config, args []string) error {
	if err := wantArgs(args, 0); err != nil {
		return err
	}
	decode, err := config.ParseDecode(cfg.Chain.Decode)
	if err != nil {
		return err
	}
	return d.Init(&max7219.Opts{
		Intensity: byte(cfg.Chain.Intensity),
		ScanLimit: cfg.Chain.ScanLimit,
		Decode:    max7219.Decode(decode),
	})
}

func power(d *max7219.Dev, all bool, device int, on bool) error {
	switch {
	case all && on:
		return d.PowerOn()
	case all:
		return d.PowerOff()
	case on:
		return d.PowerOnDevice(device)
	default:
		return d.PowerOffDevice(device)
	}
}

func writeRow(d *max7219.Dev, all bool, device int, args []string) error {
	if err := wantArgs(args, 2); err != nil {
		return err
	}
	digit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid digit %q", args[0])
	}
	v, err := parseByte(args[1])
	if err != nil {
		return err
	}
	if all {
		return d.WriteDigitAll(digit, v)
	}
	return d.WriteDigit(device, digit, v)
}

func wantArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

func parseOnOff(args []string) (bool, error) {
	if err := wantArgs(args, 1); err != nil {
		return false, err
	}
	switch args[0] {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", args[0])
}

func parseByteArg(args []string) (byte, error) {
	if err := wantArgs(args, 1); err != nil {
		return 0, err
	}
	return parseByte(args[0])
}

func parseIntArg(args []string) (int, error) {
	if err := wantArgs(args, 1); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return n, nil
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte value %q", s)
	}
	return byte(v), nil
}

// usage is printed by -h.
func usage(w io.Writer) {
	fmt.Fprintln(w, errUsage)
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}

func init() {
	flag.Usage = func() { usage(os.Stderr) }
}
