package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/cbodonnell/swipeduel/pkg/journal"
	"github.com/cbodonnell/swipeduel/pkg/messages"
)

// A raw line console that speaks the event protocol to a game peer.
// Lines typed on stdin are validated and sent; received lines are printed.
// With -replay it prints a recorded journal instead.
func main() {
	addr := flag.String("addr", fmt.Sprintf("127.0.0.1:%d", constants.DefaultPort), "Address of the host to dial")
	listen := flag.Bool("listen", false, "Listen for a client instead of dialing a host")
	replay := flag.String("replay", "", "Print the events of a journal file and exit")
	flag.Parse()

	if *replay != "" {
		if err := replayJournal(*replay); err != nil {
			fmt.Println("Error replaying journal:", err)
		}
		return
	}

	conn, err := connect(*addr, *listen)
	if err != nil {
		fmt.Println("Error connecting to peer:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func(conn net.Conn, cancel context.CancelFunc) {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			line := scanner.Text()
			if _, err := messages.DecodeEvent(line); err != nil {
				fmt.Printf("Peer (invalid): %q\n", line)
				continue
			}
			fmt.Println("Peer:", line)
		}

		fmt.Println("Peer disconnected.")
		cancel()
	}(conn, cancel)

	go func(conn net.Conn, cancel context.CancelFunc) {
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("Enter event (type 'exit' to quit): ")
			if !scanner.Scan() {
				cancel()
				return
			}
			line := scanner.Text()

			if line == "exit" {
				fmt.Println("Received exit command, exiting.")
				cancel()
				return
			}

			event, err := messages.DecodeEvent(line)
			if err != nil {
				fmt.Println("Not sending:", err)
				continue
			}
			payload, err := messages.MarshalEvent(event)
			if err != nil {
				fmt.Println("Not sending:", err)
				continue
			}
			if _, err := conn.Write(payload); err != nil {
				fmt.Println("Error sending event to peer:", err)
				cancel()
				return
			}
		}
	}(conn, cancel)

	// Gracefully handle Ctrl+C to stop the program
	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stopSignal:
		fmt.Println("Received stop signal, exiting.")
	case <-ctx.Done():
	}

	fmt.Println("Exiting peer console.")
}

func connect(addr string, listen bool) (net.Conn, error) {
	if !listen {
		return net.Dial("tcp", addr)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	defer listener.Close()
	fmt.Println("Waiting for a client on", listener.Addr())
	return listener.Accept()
}

func replayJournal(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	entries, err := journal.ReadAll(file)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Printf("%s %-8s %s\n", entry.Timestamp.Format("15:04:05.000"), entry.Direction, entry.Literal)
	}
	fmt.Printf("%d events\n", len(entries))
	return nil
}
