// mock-mcu stands in for the ADuC841 over TCP. It consumes the host's raw
// byte stream, splits each byte into nibbles, and runs the same H1 encode
// cycles the firmware would, printing each bus transition.
package main

import (
	"fmt"
	"net"

	"encoder-host/h1"
	"encoder-host/nibble"
)

func main() {
	listener, err := net.Listen("tcp", ":9610")
	if err != nil {
		fmt.Println("Failed to start mock MCU:", err)
		return
	}
	defer listener.Close()

	fmt.Println("=== Mock MCU (H1 Bus Encoder) ===")
	fmt.Println("Listening on TCP :9610")
	fmt.Println("Waiting for connections...")

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}
		fmt.Println("[MockMCU] Host connected:", conn.RemoteAddr())
		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	var enc h1.Encoder
	buf := make([]byte, 256)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			fmt.Println("[MockMCU] Host disconnected")
			return
		}

		for _, b := range buf[:n] {
			if nibble.IsTerminator(b) {
				// Batch boundary: the firmware sets its buffer flag but
				// keeps the bus state, the encoder is stateful across
				// batches.
				fmt.Println("[MockMCU] Batch terminator received")
				continue
			}

			steps := enc.EncodeByte(b)
			fmt.Printf("[MockMCU] Byte %s (0x%02X)\n", nibble.DisplayChar(b), b)
			for _, step := range steps {
				fmt.Printf("[MockMCU]   S_new=0x%X w=%015b bus=%015b\n",
					step.Nibble, step.W, step.Bus)
			}
		}
	}
}
