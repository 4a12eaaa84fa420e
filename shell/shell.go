// Package shell provides the operator's interactive loop on ishell.
package shell

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"encoder-host/driver"
	"encoder-host/h1"
	"encoder-host/nibble"
	"encoder-host/sender"
)

const shellKey = "$shell"

// Shell wraps an ishell instance bound to one Sender.
type Shell struct {
	Shell    *ishell.Shell
	Sender   *sender.Sender
	Detector *driver.Detector
}

var commands = []*ishell.Cmd{
	&SendCmd,
	&DemoCmd,
	&PortsCmd,
	&DetectCmd,
	&TraceCmd,
}

// New creates the interactive shell.
func New(snd *sender.Sender) *Shell {
	s := &Shell{
		Shell:    ishell.New(),
		Sender:   snd,
		Detector: driver.NewDetector(snd.Config.BaudRate),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("Enter text: ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}

	// A bare line that is not a command is text to send.
	s.Shell.NotFound(func(c *ishell.Context) {
		s.sendLine(c, strings.Join(c.Args, " "))
	})

	// Interrupt at the prompt exits cleanly; an in-flight send is never
	// interrupted mid-character.
	s.Shell.Interrupt(func(c *ishell.Context, count int, input string) {
		c.Println("\nExiting.")
		c.Stop()
	})

	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Run prints the banner and runs the loop until interrupted.
func (s *Shell) Run() {
	cfg := s.Sender.Config
	s.Shell.Println(strings.Repeat("=", 60))
	s.Shell.Println("H1-Type Bus Encoder Host")
	s.Shell.Println(strings.Repeat("=", 60))
	s.Shell.Printf("Port: %s, Baudrate: %d\n", cfg.Port, cfg.BaudRate)
	s.Shell.Println("Enter text to send. Press Ctrl+C to exit.")
	s.Shell.Println()
	s.Shell.Run()
	s.Shell.Close()
}

func (s *Shell) sendLine(c *ishell.Context, text string) {
	if text == "" {
		return
	}
	if err := s.Sender.Send(text); err != nil {
		// Report and keep the loop alive; the next prompt follows.
		c.Err(err)
	}
	c.Println()
}

var (
	// SendCmd sends one batch of text to the MCU.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "TEXT",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			s.sendLine(c, strings.Join(c.Args, " "))
		},
	}

	// DemoCmd reprints the nibble split demonstration.
	DemoCmd = ishell.Cmd{
		Name: "demo",
		Help: "",
		Func: func(c *ishell.Context) {
			var buf bytes.Buffer
			nibble.WriteDemo(&buf)
			c.Print(buf.String())
		},
	}

	// PortsCmd lists candidate serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"list"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			ports := s.Detector.ListPorts()
			if len(ports) == 0 {
				c.Println("No candidate ports found")
				return
			}
			for _, p := range ports {
				c.Println(p)
			}
		},
	}

	// DetectCmd probes candidate ports and reports the first openable one.
	DetectCmd = ishell.Cmd{
		Name: "detect",
		Help: "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			// Configuration is fixed at startup; this only reports the
			// candidate so the operator can restart with -port.
			port := s.Detector.Detect()
			if port == "" {
				c.Println("No openable port found")
				return
			}
			c.Printf("Openable port: %s (restart with -port %s)\n", port, port)
		},
	}

	// TraceCmd previews the bus states the MCU will drive for TEXT.
	TraceCmd = ishell.Cmd{
		Name: "trace",
		Help: "TEXT",
		Func: func(c *ishell.Context) {
			text := strings.Join(c.Args, " ")
			if text == "" {
				c.Err(fmt.Errorf("text expected"))
				return
			}
			for _, step := range h1.Trace(text) {
				c.Printf("S_new=0x%X  w=%015b  bus=%015b\n",
					step.Nibble, step.W, step.Bus)
			}
		},
	}
)
