// Package config loads the max7219ctl configuration.
//
// Configuration is read from a YAML file on top of built-in defaults, then
// overridden by MAX7219_* environment variables, then validated.
//
// Example config.yaml:
//
//	spi:
//	  port: "/dev/spidev0.0"
//	  hz: 5000000
//	latch:
//	  kind: gpiod
//	  chip: gpiochip0
//	  offset: 8
//	chain:
//	  devices: 4
//	  intensity: 3
//	  scan_limit: 8
//	  decode: none
//	logging:
//	  level: debug
//	  format: text
package config
