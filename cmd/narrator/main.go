package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/adrianliechti/narrator/pkg/client"
	"github.com/adrianliechti/narrator/pkg/recording"
	"github.com/adrianliechti/narrator/pkg/recording/badger"
	"github.com/adrianliechti/narrator/pkg/recording/file"
	"github.com/adrianliechti/narrator/pkg/recording/redis"

	"github.com/joho/godotenv"
)

const usage = `usage: narrator [flags] <command> [args]

commands:
  say [text]           synthesize text (reads lines from stdin without text)
  list                 list recordings, newest first, and mark them as read
  read <id>|all        mark recordings as read
  delete <id>          delete a recording
  clear                delete all recordings
  download <id> [file] save the audio of a recording and mark it as read

flags:
`

func main() {
	_ = godotenv.Load()

	urlFlag := flag.String("url", envOr("NARRATOR_URL", "http://localhost:3000"), "speech endpoint url")
	tokenFlag := flag.String("token", os.Getenv("API_TOKEN"), "bearer token")

	modelFlag := flag.String("model", "", "model id")
	speakerFlag := flag.String("speaker", "", "speaker voice")
	langFlag := flag.String("lang", "", "language")
	speedFlag := flag.Float64("speed", 0, "playback rate")

	keepUnreadFlag := flag.Bool("keep-unread", false, "do not mark recordings as read when listing")

	storeFlag := flag.String("store", envOr("NARRATOR_STORE", defaultStore()), "recordings store: file path, badger:<dir> or redis://...")

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	port, err := openStore(*storeFlag)

	if err != nil {
		fatal(err)
	}

	if c, ok := port.(io.Closer); ok {
		defer c.Close()
	}

	store := recording.New(port)
	store.Load(ctx)

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	if *modelFlag != "" {
		options = append(options, client.WithModel(*modelFlag))
	}

	if *speakerFlag != "" {
		options = append(options, client.WithSpeaker(*speakerFlag))
	}

	if *langFlag != "" {
		options = append(options, client.WithLanguage(*langFlag))
	}

	if *speedFlag > 0 {
		options = append(options, client.WithSpeed(float32(*speedFlag)))
	}

	c := client.New(*urlFlag, options...)

	args := flag.Args()[1:]

	switch flag.Arg(0) {
	case "say":
		err = say(ctx, client.NewRecorder(&c.Speech, store), args)

	case "list", "ls":
		list(ctx, os.Stdout, store, *keepUnreadFlag)

	case "read":
		err = read(ctx, store, args)

	case "delete", "rm":
		err = remove(ctx, store, args)

	case "clear":
		store.Clear(ctx)

	case "download":
		err = download(ctx, c, store, args)

	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func say(ctx context.Context, recorder *client.Recorder, args []string) error {
	if len(args) > 0 {
		return speak(ctx, recorder, strings.Join(args, " "))
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(">>> ")

		line, err := reader.ReadString('\n')

		if errors.Is(err, io.EOF) && line == "" {
			return nil
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		line = strings.TrimRight(line, "\r\n")

		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := speak(ctx, recorder, line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func speak(ctx context.Context, recorder *client.Recorder, text string) error {
	rec, err := recorder.Submit(ctx, text)

	if err != nil {
		return err
	}

	fmt.Printf("%s (%d ms)\n", rec.AudioURL, rec.LatencyMs)
	return nil
}

// list prints the recordings and marks them as read, unless keepUnread is set.
func list(ctx context.Context, out io.Writer, store *recording.Store, keepUnread bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tCREATED\tLATENCY\tREAD\tTEXT\n")

	for _, r := range store.List() {
		read := "no"

		if r.IsRead {
			read = "yes"
		}

		fmt.Fprintf(w, "%s\t%s\t%dms\t%s\t%s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.LatencyMs, read, truncate(r.Text, 48))
	}

	fmt.Fprintf(w, "\n%d unread\n", store.UnreadCount())

	if !keepUnread {
		store.MarkAllRead(ctx)
	}
}

func read(ctx context.Context, store *recording.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("read requires an id or \"all\"")
	}

	if args[0] == "all" {
		store.MarkAllRead(ctx)
		return nil
	}

	if _, ok := store.Get(args[0]); !ok {
		return errors.New("recording not found: " + args[0])
	}

	store.MarkRead(ctx, args[0])
	return nil
}

func remove(ctx context.Context, store *recording.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("delete requires an id")
	}

	store.Delete(ctx, args[0])
	return nil
}

func download(ctx context.Context, c *client.Client, store *recording.Store, args []string) error {
	if len(args) < 1 {
		return errors.New("download requires an id")
	}

	r, ok := store.Get(args[0])

	if !ok {
		return errors.New("recording not found: " + args[0])
	}

	path := r.ID + filepath.Ext(r.AudioURL)

	if len(args) > 1 {
		path = args[1]
	}

	f, err := os.Create(path)

	if err != nil {
		return err
	}

	defer f.Close()

	n, err := c.Audio.Download(ctx, r.AudioURL, f)

	if err != nil {
		return err
	}

	store.MarkRead(ctx, r.ID)

	fmt.Printf("%s (%d bytes)\n", path, n)
	return nil
}

func openStore(value string) (recording.Persistence, error) {
	switch {
	case strings.HasPrefix(value, "redis://"), strings.HasPrefix(value, "rediss://"):
		return redis.New(value)

	case strings.HasPrefix(value, "badger:"):
		return badger.New(strings.TrimPrefix(value, "badger:"))

	default:
		if err := os.MkdirAll(filepath.Dir(value), 0o700); err != nil {
			return nil, err
		}

		return file.New(value)
	}
}

func defaultStore() string {
	dir, err := os.UserConfigDir()

	if err != nil {
		return "recordings.json"
	}

	return filepath.Join(dir, "narrator", "recordings.json")
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")

	if len([]rune(s)) <= n {
		return s
	}

	return string([]rune(s)[:n-1]) + "…"
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
