package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	clientgame "github.com/cbodonnell/swipeduel/client/game"
	"github.com/cbodonnell/swipeduel/client/input"
	"github.com/cbodonnell/swipeduel/pkg/api"
	"github.com/cbodonnell/swipeduel/pkg/game"
	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/journal"
	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/messages"
	"github.com/cbodonnell/swipeduel/pkg/network"
	"github.com/cbodonnell/swipeduel/pkg/queue"
	"github.com/cbodonnell/swipeduel/pkg/repositories"
	"github.com/cbodonnell/swipeduel/pkg/state"
	"github.com/cbodonnell/swipeduel/pkg/version"
	"github.com/cbodonnell/swipeduel/pkg/workers"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
)

func main() {
	role := flag.String("role", "host", "Role to play (host or client)")
	host := flag.String("host", "127.0.0.1", "Host address to dial as client")
	port := flag.Int("port", constants.DefaultPort, "Port to listen on as host or dial as client")
	transport := flag.String("transport", "tcp", "Transport to use (tcp or ws)")
	logLevel := flag.String("log-level", "info", "Log level")
	apiPort := flag.Int("api-port", 0, "Port for the status API (0 disables it)")
	journalPath := flag.String("journal", "", "Path of the event journal (empty disables it)")
	headless := flag.Bool("headless", false, "Run without a window")
	debug := flag.Bool("debug", false, "Show debug overlay")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	parsedRole, err := types.ParseRole(*role)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse role: %v", err))
	}

	parsedTransport, err := network.ParseTransport(*transport)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse transport: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel).With("role", parsedRole.String())
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting swipeduel version %s as %s", version.Get(), parsedRole)

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	repository := newRepository(ctx)
	defer repository.Close(context.Background())

	saveRoundResultChannelSize := 16
	saveRoundResultChan := make(chan workers.SaveRoundResultRequest, saveRoundResultChannelSize)
	saveRoundResultWorker := workers.NewSaveRoundResultWorker(workers.NewSaveRoundResultWorkerOptions{
		Repository:          repository,
		SaveRoundResultChan: saveRoundResultChan,
	})
	go saveRoundResultWorker.Start(ctx)

	stateManager := state.NewInMemoryStateManager()

	if *apiPort > 0 {
		apiServer := api.NewAPIServer(api.NewAPIServerOptions{
			Port:         *apiPort,
			StateManager: stateManager,
			Repository:   repository,
		})
		go apiServer.Start()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			if err := apiServer.Stop(stopCtx); err != nil {
				log.Error("Failed to stop API server: %v", err)
			}
		}()
	}

	var recorder journal.Recorder
	if *journalPath != "" {
		journalWriter, err := journal.Open(*journalPath)
		if err != nil {
			panic(fmt.Sprintf("Failed to open journal: %v", err))
		}
		defer journalWriter.Close()
		recorder = journalWriter
	}

	log.Info("Connecting over %s on port %d", parsedTransport, *port)
	conn, err := network.Connect(ctx, network.ConnectOptions{
		Role:      parsedRole,
		Host:      *host,
		Port:      *port,
		Transport: parsedTransport,
	})
	if err != nil {
		log.Error("Failed to connect: %v", err)
		return
	}
	log.Info("Connected to %s", conn.RemoteAddr())

	inboundQueue := queue.NewInMemoryQueue[messages.Event](constants.InboundQueueSize)
	peer := network.NewPeer(network.NewPeerOptions{
		Conn:         conn,
		InboundQueue: inboundQueue,
		Journal:      recorder,
	})
	defer peer.Close()

	var pointer game.PointerProvider
	if !*headless {
		pointer = input.NewCursorPointer()
	}

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		Role:                parsedRole,
		Sender:              peer,
		InboundQueue:        inboundQueue,
		Pointer:             pointer,
		StateManager:        stateManager,
		SaveRoundResultChan: saveRoundResultChan,
		ViewportWidth:       constants.ScreenWidth,
		ViewportHeight:      constants.ScreenHeight,
	})

	go func() {
		err := peer.HandleEvents(ctx)
		log.Info("Stopped receiving events: %v", err)
		gameManager.Disconnect(err)
	}()

	gameManager.Begin(time.Now())

	if *headless {
		log.Info("Starting game manager")
		if err := gameManager.Start(ctx); err != nil {
			panic(fmt.Sprintf("Failed to start game manager: %v", err))
		}
		return
	}

	ebiten.SetWindowSize(int(constants.ScreenWidth), int(constants.ScreenHeight))
	ebiten.SetWindowTitle(fmt.Sprintf("Swipe Duel (%s)", parsedRole))
	ebiten.SetTPS(constants.TicksPerSecond)
	g := clientgame.NewGame(clientgame.NewGameOptions{
		Debug:        *debug,
		GameManager:  gameManager,
		StateManager: stateManager,
	})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}

func newRepository(ctx context.Context) repositories.Repository {
	connStr := os.Getenv("SWIPEDUEL_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://swipeduel.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse connection string: %v", err))
	}

	var repository repositories.Repository
	switch u.Scheme {
	case "sqlite":
		repository, err = repositories.NewSQLiteRepository(ctx, u.Host, "./migrations/sqlite")
		if err != nil {
			panic(fmt.Sprintf("Failed to create SQLite repository: %v", err))
		}
	case "postgresql", "postgres":
		repository, err = repositories.NewPostgresRepository(ctx, u.String(), "./migrations/postgres")
		if err != nil {
			panic(fmt.Sprintf("Failed to create Postgres repository: %v", err))
		}
	default:
		panic(fmt.Sprintf("Unknown database type %s", u.Scheme))
	}
	return repository
}
