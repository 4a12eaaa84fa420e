package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"encoder-host/api"
	"encoder-host/config"
	"encoder-host/logger"
	"encoder-host/nibble"
	"encoder-host/sender"
	"encoder-host/shell"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	if err := logger.Init(cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
	}
	defer logger.Close()

	if cfg.Mock {
		fmt.Println("Starting in MOCK MODE (connecting to mock MCU at localhost:9610)")
		cfg.Port = "tcp://localhost:9610"
	}

	// 2. Show nibble split demonstration
	nibble.WriteDemo(os.Stdout)

	// 3. Initialize Sender
	snd := sender.New(cfg)

	// 4. WebSocket mode or interactive shell
	if cfg.WSAddr != "" {
		handler := api.NewHandler(snd)
		http.HandleFunc("/ws", handler.ServeWS)

		fmt.Printf("Server listening on %s\n", cfg.WSAddr)
		if err := http.ListenAndServe(cfg.WSAddr, nil); err != nil {
			log.Fatal("ListenAndServe:", err)
		}
		return
	}

	shell.New(snd).Run()
}
