package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

type Config struct {
	Port     string // Serial port name (e.g. COM5, /dev/ttyUSB0, tcp://host:port)
	BaudRate int    // Must match the MCU's UART configuration
	WSAddr   string
	Mock     bool
	LogDir   string

	SettleAfterOpen time.Duration // hardware settling time after open
	DelayPerByte    time.Duration // MCU needs this to finish both nibble cycles
}

func Load() *Config {
	// Default port based on OS
	defaultPort := "/dev/ttyUSB0"
	if runtime.GOOS == "windows" {
		defaultPort = "COM5"
	}

	port := flag.String("port", defaultPort, "Serial port (e.g. COM5, /dev/ttyUSB0)")
	baud := flag.Int("baud", 9600, "Baud rate (must match the MCU)")
	wsAddr := flag.String("ws", "", "WebSocket server address (empty: interactive shell)")
	mock := flag.Bool("mock", false, "Talk to the mock MCU at localhost:9610 instead of a serial port")
	logDir := flag.String("logdir", defaultLogDir(), "Log directory")
	flag.Parse()

	// Allow environment variable override
	if envPort := os.Getenv("ENCODER_SERIAL_PORT"); envPort != "" {
		*port = envPort
	}

	return &Config{
		Port:            *port,
		BaudRate:        *baud,
		WSAddr:          *wsAddr,
		Mock:            *mock,
		LogDir:          *logDir,
		SettleAfterOpen: 2 * time.Second,
		DelayPerByte:    10 * time.Millisecond,
	}
}

func defaultLogDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "encoder-host")
	}
	return "logs"
}
