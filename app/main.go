package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	"github.com/sashabaranov/go-openai"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/guardbot/tg-guard/app/filter"
	"github.com/guardbot/tg-guard/app/server"
	"github.com/guardbot/tg-guard/app/storage"
	"github.com/guardbot/tg-guard/app/storage/engine"
	"github.com/guardbot/tg-guard/lib/check"
	"github.com/guardbot/tg-guard/lib/moderation"
)

type options struct {
	Server struct {
		Listen     string `long:"listen" env:"LISTEN" default:":8080" description:"listen address"`
		AuthPasswd string `long:"auth-passwd" env:"AUTH_PASSWD" description:"basic auth password for user 'guard', disabled if empty"`
	} `group:"server" namespace:"server" env-namespace:"SERVER"`

	DB struct {
		Type string `long:"type" env:"TYPE" default:"sqlite" choice:"sqlite" choice:"postgres" description:"database type"`
		File string `long:"file" env:"FILE" default:"data/tg-guard.db" description:"sqlite database file"`
		DSN  string `long:"dsn" env:"DSN" description:"postgres connection string"`
	} `group:"db" namespace:"db" env-namespace:"DB"`

	Blocklist struct {
		API     string        `long:"api" env:"API" default:"https://api.cas.chat" description:"blocklist API, disabled if empty"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"2s" description:"blocklist timeout"`
	} `group:"blocklist" namespace:"blocklist" env-namespace:"BLOCKLIST"`

	RuSpam struct {
		API     string        `long:"api" env:"API" description:"russian classifier inference API, disabled if empty"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"5s" description:"russian classifier timeout"`
	} `group:"ruspam" namespace:"ruspam" env-namespace:"RUSPAM"`

	OpenAI struct {
		Token             string `long:"token" env:"TOKEN" description:"openai token, disabled if not set"`
		Prompt            string `long:"prompt" env:"PROMPT" default:"" description:"openai system prompt, if empty uses builtin default"`
		Model             string `long:"model" env:"MODEL" default:"gpt-4" description:"openai model"`
		Veto              bool   `long:"veto" env:"VETO" description:"veto mode, llm can override other detectors"`
		HistorySize       int    `long:"history-size" env:"HISTORY_SIZE" default:"5" description:"clean messages passed to llm as context"`
		MaxTokensResponse int    `long:"max-tokens-response" env:"MAX_TOKENS_RESPONSE" default:"1024" description:"openai max tokens in response"`
		MaxTokensRequest  int    `long:"max-tokens-request" env:"MAX_TOKENS_REQUEST" default:"2048" description:"openai max tokens in request"`
		MaxSymbolsRequest int    `long:"max-symbols-request" env:"MAX_SYMBOLS_REQUEST" default:"16000" description:"openai max symbols in request, failback if tokenizer failed"`
	} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`

	Files struct {
		SamplesSpamFile  string        `long:"samples-spam" env:"SAMPLES_SPAM" default:"data/spam-samples.txt" description:"spam samples"`
		SamplesHamFile   string        `long:"samples-ham" env:"SAMPLES_HAM" default:"data/ham-samples.txt" description:"ham samples"`
		ExcludeTokenFile string        `long:"exclude-tokens" env:"EXCLUDE_TOKENS" default:"data/exclude-tokens.txt" description:"exclude tokens file"`
		PhrasesFile      string        `long:"phrases" env:"PHRASES" default:"data/spam-phrases.txt" description:"spam phrases file"`
		PatternsFile     string        `long:"patterns" env:"PATTERNS" default:"data/spam-patterns.txt" description:"spam patterns file"`
		WatchInterval    time.Duration `long:"watch-interval" env:"WATCH_INTERVAL" default:"5s" description:"watch interval"`
	} `group:"files" namespace:"files" env-namespace:"FILES"`

	SpamThreshold      float64 `long:"spam-threshold" env:"SPAM_THRESHOLD" default:"0.6" description:"confidence to classify a message as spam"`
	MaxEmoji           int     `long:"max-emoji" env:"MAX_EMOJI" default:"3" description:"max emoji count in message"`
	MaxCapsRatio       float64 `long:"max-caps-ratio" env:"MAX_CAPS_RATIO" default:"0.7" description:"max ratio of uppercase characters"`
	MaxLinks           int     `long:"max-links" env:"MAX_LINKS" default:"2" description:"max links in message"`
	MaxMentions        int     `long:"max-mentions" env:"MAX_MENTIONS" default:"3" description:"max mentions in message"`
	MinMsgLen          int     `long:"min-msg-len" env:"MIN_MSG_LEN" default:"10" description:"messages shorter than this are penalized"`
	MinSpamProbability float64 `long:"min-probability" env:"MIN_PROBABILITY" default:"50" description:"min spam probability percent for the classifier"`
	MaxDailySpam       int     `long:"max-daily-spam" env:"MAX_DAILY_SPAM" default:"3" description:"daily spam events forcing a permanent ban"`
	NewUserMessages    int     `long:"new-user-messages" env:"NEW_USER_MESSAGES" default:"10" description:"messages below this mark the user as new"`
	SkipDetected       bool    `long:"skip-detected" env:"SKIP_DETECTED" description:"skip extra classifiers when spam already detected"`

	Logger struct {
		Enabled    bool   `long:"enabled" env:"ENABLED" description:"enable rotated audit log of detections"`
		FileName   string `long:"file" env:"FILE"  default:"tg-guard.log" description:"location of audit log"`
		MaxSize    string `long:"max-size" env:"MAX_SIZE" default:"100M" description:"maximum size before it gets rotated"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"10" description:"maximum number of old log files to retain"`
	} `group:"logger" namespace:"logger" env-namespace:"LOGGER"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "local"

func main() {
	fmt.Printf("tg-guard %s\n", revision)
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	p.SubcommandsOptional = true
	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			log.Printf("[ERROR] cli error: %v", err)
		}
		os.Exit(2)
	}

	setupLog(opts.Dbg, opts.OpenAI.Token, opts.Server.AuthPasswd)
	log.Printf("[DEBUG] options: %+v", opts)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		// catch signal and invoke graceful termination
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("[WARN] interrupt signal")
		cancel()
	}()

	if err := execute(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, opts options) error {
	db, err := makeDB(ctx, opts)
	if err != nil {
		return fmt.Errorf("can't make database: %w", err)
	}
	defer db.Close()

	approved, err := storage.NewApprovedUsers(ctx, db)
	if err != nil {
		return fmt.Errorf("can't make approved users store: %w", err)
	}
	counters, err := storage.NewSpamCounters(ctx, db, 24*time.Hour)
	if err != nil {
		return fmt.Errorf("can't make spam counters store: %w", err)
	}
	detections, err := storage.NewDetections(ctx, db)
	if err != nil {
		return fmt.Errorf("can't make detections store: %w", err)
	}

	eng, err := makeEngine(ctx, opts)
	if err != nil {
		return fmt.Errorf("can't make detection engine: %w", err)
	}
	eng.WithWhitelist(approved)
	eng.WithEscalation(counters)

	auditWr, err := makeAuditWriter(opts)
	if err != nil {
		return fmt.Errorf("can't make audit log writer: %w", err)
	}
	defer auditWr.Close()
	eng.WithSink(teeSink{detections, auditSink{wr: auditWr}})

	srv := server.NewServer(server.Config{
		ListenAddr:      opts.Server.Listen,
		Version:         revision,
		AuthPasswd:      opts.Server.AuthPasswd,
		NewUserMessages: opts.NewUserMessages,
		Detector:        eng,
		Detections:      detections,
		Approved:        approved,
		Counters:        counters,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeDB opens the database connection for the configured engine type
func makeDB(ctx context.Context, opts options) (*engine.SQL, error) {
	switch opts.DB.Type {
	case "postgres":
		if opts.DB.DSN == "" {
			return nil, errors.New("postgres requires --db.dsn")
		}
		return engine.NewPostgres(ctx, opts.DB.DSN)
	default:
		return engine.NewSqlite(opts.DB.File)
	}
}

// makeEngine creates the detection engine with all configured detectors
func makeEngine(ctx context.Context, opts options) (*moderation.Engine, error) {
	eng, err := moderation.NewEngine(moderation.Config{
		SpamThreshold:    opts.SpamThreshold,
		MaxEmoji:         opts.MaxEmoji,
		MaxCapsRatio:     opts.MaxCapsRatio,
		MaxLinks:         opts.MaxLinks,
		MaxMentions:      opts.MaxMentions,
		MinMsgLen:        opts.MinMsgLen,
		MaxDailySpam:     opts.MaxDailySpam,
		LLMVeto:          opts.OpenAI.Veto,
		SkipDetected:     opts.SkipDetected,
		LLMHistorySize:   opts.OpenAI.HistorySize,
		BlocklistTimeout: opts.Blocklist.Timeout,
		RuSpamTimeout:    opts.RuSpam.Timeout,
	})
	if err != nil {
		return nil, err
	}

	if opts.Blocklist.API != "" {
		httpClient := &http.Client{Timeout: opts.Blocklist.Timeout}
		eng.WithBlocklist(moderation.NewBlocklistClient(httpClient, moderation.BlocklistConfig{
			API: opts.Blocklist.API, UserAgent: "tg-guard/" + revision}))
		log.Printf("[INFO] blocklist enabled, api: %s", opts.Blocklist.API)
	}

	if opts.RuSpam.API != "" {
		httpClient := &http.Client{Timeout: opts.RuSpam.Timeout}
		eng.WithStatClassifier(moderation.NewRuSpamClient(httpClient, moderation.RuSpamConfig{API: opts.RuSpam.API}))
		log.Printf("[INFO] russian classifier enabled, api: %s", opts.RuSpam.API)
	}

	if opts.OpenAI.Token != "" {
		eng.WithLLM(moderation.NewOpenAIChecker(openai.NewClient(opts.OpenAI.Token), moderation.OpenAIConfig{
			SystemPrompt:      opts.OpenAI.Prompt,
			Model:             opts.OpenAI.Model,
			MaxTokensResponse: opts.OpenAI.MaxTokensResponse,
			MaxTokensRequest:  opts.OpenAI.MaxTokensRequest,
			MaxSymbolsRequest: opts.OpenAI.MaxSymbolsRequest,
		}))
		log.Printf("[INFO] openai detector enabled, model: %s, veto: %v", opts.OpenAI.Model, opts.OpenAI.Veto)
	}

	// bayes classifier trained from sample files, reloaded on change
	bayes := moderation.NewBayesClassifier(opts.MinSpamProbability)
	if _, err := filter.NewFiles(ctx, eng, bayes, filter.FilesConfig{
		SpamSamplesFile:    opts.Files.SamplesSpamFile,
		HamSamplesFile:     opts.Files.SamplesHamFile,
		ExcludedTokensFile: opts.Files.ExcludeTokenFile,
		PhrasesFile:        opts.Files.PhrasesFile,
		PatternsFile:       opts.Files.PatternsFile,
		WatchDelay:         opts.Files.WatchInterval,
	}); err != nil {
		return nil, fmt.Errorf("can't load filter files: %w", err)
	}
	eng.WithFallbackClassifier(bayes)

	return eng, nil
}

// teeSink fans a detection result out to multiple sinks
type teeSink []moderation.ResultSink

// Persist sends the result to every sink, collecting errors
func (t teeSink) Persist(ctx context.Context, req check.Request, v check.Verdict) error {
	errs := new(multierror.Error)
	for _, s := range t {
		errs = multierror.Append(errs, s.Persist(ctx, req, v))
	}
	return errs.ErrorOrNil()
}

// auditSink writes detection results as json lines, one per message
type auditSink struct {
	wr io.Writer
}

// Persist writes the verdict to the audit log
func (a auditSink) Persist(_ context.Context, req check.Request, v check.Verdict) error {
	rec := struct {
		MsgID      int64   `json:"msg_id"`
		UserID     int64   `json:"user_id"`
		ChatID     int64   `json:"chat_id"`
		Text       string  `json:"text"`
		Spam       bool    `json:"spam"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
		Ban        bool    `json:"ban"`
		Restrict   bool    `json:"restrict"`
		Delete     bool    `json:"delete"`
		Warn       bool    `json:"warn"`
		Timestamp  string  `json:"timestamp"`
	}{
		MsgID:      req.MsgID,
		UserID:     req.UserID,
		ChatID:     req.ChatID,
		Text:       strings.ReplaceAll(req.Text, "\n", " "),
		Spam:       v.Spam,
		Confidence: v.Confidence,
		Reason:     string(v.Reason),
		Ban:        v.Ban,
		Restrict:   v.Restrict,
		Delete:     v.Delete,
		Warn:       v.Warn,
		Timestamp:  time.Now().Format(time.RFC3339),
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("can't marshal audit record: %w", err)
	}
	if _, err := a.wr.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("can't write to audit log: %w", err)
	}
	return nil
}

// makeAuditWriter creates the audit log writer to keep records of detections.
// it parses options and makes lumberjack logger with rotation
func makeAuditWriter(opts options) (accessLog io.WriteCloser, err error) {
	if !opts.Logger.Enabled {
		return nopWriteCloser{io.Discard}, nil
	}

	sizeParse := func(inp string) (uint64, error) {
		if inp == "" {
			return 0, errors.New("empty value")
		}
		for i, sfx := range []string{"k", "m", "g", "t"} {
			if strings.HasSuffix(inp, strings.ToUpper(sfx)) || strings.HasSuffix(inp, strings.ToLower(sfx)) {
				val, err := strconv.Atoi(inp[:len(inp)-1])
				if err != nil {
					return 0, fmt.Errorf("can't parse %s: %w", inp, err)
				}
				return uint64(float64(val) * math.Pow(float64(1024), float64(i+1))), nil
			}
		}
		return strconv.ParseUint(inp, 10, 64)
	}

	maxSize, perr := sizeParse(opts.Logger.MaxSize)
	if perr != nil {
		return nil, fmt.Errorf("can't parse logger MaxSize: %w", perr)
	}

	maxSize /= 1048576

	log.Printf("[INFO] audit logger enabled for %s, max size %dM", opts.Logger.FileName, maxSize)
	return &lumberjack.Logger{
		Filename:   opts.Logger.FileName,
		MaxSize:    int(maxSize), // in MB
		MaxBackups: opts.Logger.MaxBackups,
		Compress:   true,
		LocalTime:  true,
	}, nil
}

type nopWriteCloser struct{ io.Writer }

func (n nopWriteCloser) Close() error { return nil }

func setupLog(dbg bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	for _, s := range secrets {
		if s != "" {
			logOpts = append(logOpts, lgr.Secret(s))
		}
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
