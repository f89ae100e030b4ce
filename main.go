package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/themeparkify/bot-telegram/api/http/ops"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/config"
	"github.com/themeparkify/bot-telegram/service"
	"github.com/themeparkify/bot-telegram/service/attractions"
	"github.com/themeparkify/bot-telegram/service/destinations"
	"github.com/themeparkify/bot-telegram/service/messages"
	"github.com/themeparkify/bot-telegram/service/notify"
	"github.com/themeparkify/bot-telegram/service/resolver"
	"github.com/themeparkify/bot-telegram/service/tracker"
	"github.com/themeparkify/bot-telegram/storage"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/telebot.v3"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const logFileSizeMax = 100 // MB
const logFileBackupsMax = 3
const logFileAgeMax = 28 // days
const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load(".env")
	root := &cobra.Command{
		Use:           "themeparkify-bot",
		Short:         "Telegram bot notifying when theme park attraction wait times reach the thresholds",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the bot, the poll loop and the ops endpoint",
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the pending database migrations and exit",
			RunE:  migrate,
		},
		&cobra.Command{
			Use:   "poll",
			Short: "Run a single poll cycle, print its report and exit",
			RunE:  pollOnce,
		},
	)
	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// app holds everything the subcommands share.
type app struct {
	cfg       config.Config
	log       *slog.Logger
	svcParks  themeparks.Service
	stor      storage.Storage
	fmtMsg    messages.Format
	bot       *telebot.Bot
	notifier  notify.Notifier
	tracker   tracker.Tracker
	logCloser io.Closer
}

func newApp(ctx context.Context) (a app, err error) {

	// init config and logger
	slog.Info("starting...")
	a.cfg, err = config.NewConfigFromEnv()
	if err != nil {
		err = fmt.Errorf("failed to load the config: %w", err)
		return
	}
	a.log = newLogger(a.cfg, &a.logCloser)

	// init themeparks.wiki client
	clientHttp := http.Client{
		Timeout: a.cfg.Api.ThemeParks.Timeout,
	}
	a.svcParks = themeparks.NewService(&clientHttp, a.cfg.Api.ThemeParks.Uri)
	a.svcParks = themeparks.NewServiceLogging(a.svcParks, a.log)

	// init storage
	a.stor, err = storage.NewStorage(ctx, a.cfg.Db, a.log)
	if err != nil {
		err = fmt.Errorf("failed to init the storage: %w", err)
		return
	}
	a.stor = storage.NewStorageLogging(a.stor, a.log)

	// init the message format, see https://core.telegram.org/bots/api#html-style for details
	a.fmtMsg = messages.Format{
		HtmlPolicy: messages.NewHtmlPolicy(),
	}

	// init Telegram bot
	s := telebot.Settings{
		Poller: &telebot.LongPoller{
			Timeout: a.cfg.Api.Telegram.PollTimeout,
		},
		Token: a.cfg.Api.Telegram.Token,
	}
	a.bot, err = telebot.NewBot(s)
	if err != nil {
		err = fmt.Errorf("failed to init the Telegram bot: %w", err)
		return
	}

	// init the poll-and-notify loop
	a.notifier = notify.NewNotifier(a.bot, a.fmtMsg, ratelimit.New(a.cfg.Notify.RateLimit), a.log)
	a.notifier = notify.NewNotifierLogging(a.notifier, a.log)
	a.tracker = tracker.NewTracker(a.svcParks, a.stor, a.notifier, a.cfg.Tracker.FetchConcurrency, a.log)
	return
}

func (a app) Close() {
	if a.stor != nil {
		_ = a.stor.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

func newLogger(cfg config.Config, closer *io.Closer) *slog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Log.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    logFileSizeMax,
			MaxBackups: logFileBackupsMax,
			MaxAge:     logFileAgeMax,
			Compress:   true,
		}
		*closer = lj
		w = io.MultiWriter(os.Stdout, lj)
	}
	opts := slog.HandlerOptions{
		Level: slog.Level(cfg.Log.Level),
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

func serve(cmd *cobra.Command, _ []string) (err error) {

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var a app
	a, err = newApp(ctx)
	defer a.Close()
	if err != nil {
		return
	}
	log := a.log
	cfg := a.cfg

	err = a.bot.SetCommands(service.Commands)
	if err != nil {
		err = fmt.Errorf("failed to set the bot commands: %w", err)
		return
	}

	// init handlers
	res := resolver.NewResolver(a.svcParks, cfg.Tracker.FetchConcurrency)
	res = resolver.NewResolverLogging(res, log)
	dstHandlers := destinations.Handlers{
		Resolver:    res,
		Storage:     a.stor,
		ThemeParks:  a.svcParks,
		Format:      a.fmtMsg,
		Concurrency: cfg.Tracker.FetchConcurrency,
	}
	attHandlers := attractions.Handlers{
		Resolver:    res,
		Storage:     a.stor,
		ThemeParks:  a.svcParks,
		Format:      a.fmtMsg,
		Concurrency: cfg.Tracker.FetchConcurrency,
	}
	callbackHandlers := map[string]service.ArgHandlerFunc{
		attractions.CmdUntrackCallback: attHandlers.UntrackById,
	}
	txtHandlers := map[string]telebot.HandlerFunc{
		service.LabelTracks: attHandlers.List,
		service.LabelDests:  dstHandlers.List,
	}
	kbd := service.MakeReplyKeyboard()

	// assign handlers
	b := a.bot
	b.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return service.LoggingHandlerFunc(next, log)
	})
	b.Handle(service.CmdStart, service.ErrorHandlerFunc(service.StartHandlerFunc(kbd)))
	b.Handle(service.CmdHelp, func(tgCtx telebot.Context) error {
		return tgCtx.Send(service.HelpText(), kbd)
	})
	b.Handle(service.CmdDestAdd, service.ErrorHandlerFunc(dstHandlers.Add))
	b.Handle(service.CmdDestRemove, service.ErrorHandlerFunc(dstHandlers.Remove))
	b.Handle(service.CmdDestClear, service.ErrorHandlerFunc(dstHandlers.Clear))
	b.Handle(service.CmdDests, service.ErrorHandlerFunc(dstHandlers.List))
	b.Handle(service.CmdRide, service.ErrorHandlerFunc(attHandlers.Ride))
	b.Handle(service.CmdTrack, service.ErrorHandlerFunc(attHandlers.Track))
	b.Handle(service.CmdUntrack, service.ErrorHandlerFunc(attHandlers.Untrack))
	b.Handle(service.CmdTracks, service.ErrorHandlerFunc(attHandlers.List))
	b.Handle(service.CmdTracksClear, service.ErrorHandlerFunc(attHandlers.Clear))
	b.Handle(telebot.OnCallback, service.ErrorHandlerFunc(service.Callback(callbackHandlers)))
	b.Handle(telebot.OnText, service.ErrorHandlerFunc(service.TextHandlerFunc(txtHandlers)))
	go b.Start()
	defer b.Stop()
	log.Info("started the Telegram bot")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		log.Info(fmt.Sprintf("starting the poll loop, interval %s...", cfg.Tracker.Interval))
		err = a.tracker.Run(gCtx, cfg.Tracker.Interval)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		return
	})
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Api.Ops.Port),
		Handler: ops.NewRouter(ops.NewHandler(a.stor, a.tracker)),
	}
	g.Go(func() (err error) {
		log.Info(fmt.Sprintf("starting to listen the ops API @ port #%d...", cfg.Api.Ops.Port))
		err = srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	err = g.Wait()
	return
}

func migrate(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		err = fmt.Errorf("failed to load the config: %w", err)
		return
	}
	var logCloser io.Closer
	log := newLogger(cfg, &logCloser)
	if logCloser != nil {
		defer logCloser.Close()
	}
	cfg.Db.Migrate = true
	var stor storage.Storage
	stor, err = storage.NewStorage(cmd.Context(), cfg.Db, log)
	if err == nil {
		log.Info("database is up to date")
		err = stor.Close()
	}
	return
}

func pollOnce(cmd *cobra.Command, _ []string) (err error) {
	var a app
	a, err = newApp(cmd.Context())
	defer a.Close()
	var r tracker.Report
	if err == nil {
		r, err = a.tracker.Poll(cmd.Context())
	}
	var out []byte
	if err == nil {
		out, err = sonic.Marshal(r)
	}
	if err == nil {
		fmt.Println(string(out))
	}
	return
}
