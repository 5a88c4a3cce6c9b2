package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultBaud matches the controller firmware.
const DefaultBaud = 115200

// ReadTimeout bounds a single serial read so reader goroutines notice a
// closed port.
const ReadTimeout = 100 * time.Millisecond

// OpenSerial opens name at baud, 8N1.
func OpenSerial(name string, baud int) (serial.Port, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	if err := port.SetReadTimeout(ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}
	log().Info("serial port open", "port", name, "baud", baud)
	return port, nil
}

// Ports lists the serial ports present on the host.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
