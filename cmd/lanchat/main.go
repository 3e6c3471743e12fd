package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lanchat/internal/chat"
	"lanchat/internal/client"
	"lanchat/internal/config"
	"lanchat/internal/netutil"
	"lanchat/internal/protocol"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if Opts.Server {
		err = runServer(cfg)
	} else {
		err = runClient(cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cfg *config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	host := cfg.Host
	if host == "" {
		ip, err := netutil.LocalIPv4()
		if err != nil {
			return fmt.Errorf("cannot pick a bindable address, set LANCHAT_HOST: %w", err)
		}
		host = ip
	}
	node := net.JoinHostPort(host, fmt.Sprintf("%d", cfg.Port))
	listener, err := net.Listen("tcp", node)
	if err != nil {
		return fmt.Errorf("unable to listen TCP: %w", err)
	}

	server, err := chat.New(
		chat.WithLogger(logger),
		chat.WithReadTimeout(cfg.ReadTimeout),
		chat.WithWriteTimeout(cfg.WriteTimeout),
		chat.WithOutboxSize(cfg.OutboxSize),
		chat.WithMaxPseudonymLength(cfg.MaxPseudonymLength),
	)
	if err != nil {
		listener.Close()
		return err
	}

	fmt.Printf("Server listening on %s\n", listener.Addr())
	fmt.Printf("To join the chat: %s -s %s -p <pseudonym>\n", BinaryName, listener.Addr())
	fmt.Printf("Running version %s, press Ctrl-C to stop\n", Version)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go server.Serve(listener)
	logger.Info("chat server started", "addr", fmt.Sprint(listener.Addr()))

	<-sig
	logger.Info("got stop signal")
	logger.Info("chat server stopped",
		"in", server.Shutdown(10*time.Second),
		"dropped_deliveries", server.DroppedDeliveries(),
	)
	return nil
}

func runClient(cfg *config.Config) error {
	pseudonym := strings.TrimSpace(Opts.Pseudonym)
	if pseudonym == "" || len([]rune(pseudonym)) > cfg.MaxPseudonymLength {
		var err error
		pseudonym, err = promptPseudonym(cfg.MaxPseudonymLength)
		if err != nil {
			return err
		}
	}

	if cfg.Debug {
		f, err := tea.LogToFile("lanchat-debug.log", "client")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	address := Opts.ServerAddr
	if !strings.Contains(address, ":") {
		address = net.JoinHostPort(address, fmt.Sprintf("%d", cfg.Port))
	}

	conn, err := client.Dial(address)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Send(protocol.Join(pseudonym)); err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}

	return client.Run(conn, pseudonym, cfg.ScrollbackCap)
}

func promptPseudonym(maxLength int) (string, error) {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Enter your pseudonym (1..%d characters): ", maxLength)
		line, err := in.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read pseudonym: %w", err)
		}
		pseudonym := strings.TrimSpace(line)
		switch {
		case pseudonym == "":
			fmt.Println("Pseudonym cannot be empty.")
		case len([]rune(pseudonym)) > maxLength:
			fmt.Printf("Pseudonym too long (currently %d characters).\n", len([]rune(pseudonym)))
		default:
			return pseudonym, nil
		}
	}
}
