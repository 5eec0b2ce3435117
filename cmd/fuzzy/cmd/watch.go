package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/corey/fuzzy/internal/adapters/fsnotify"
	"github.com/corey/fuzzy/internal/app"
	"github.com/corey/fuzzy/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchFile string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Evaluate stdin lines against a definition file, reloading it on change",
	Long: "Reads 'name=value ...' lines from stdin and prints one result per line.\n" +
		"Edits to the definition file take effect on the next line; a broken edit keeps the last good definition.",
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFile, "file", "f", "", "definition file")
	_ = watchCmd.MarkFlagRequired("file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.OnError = func(err error) { logger.Warn("watcher error", zap.Error(err)) }
	stderr := cmd.ErrOrStderr()

	opts := app.Options{
		Logger:  logger,
		Watcher: w,
		Record:  cfg.Record,
		Workers: cfg.Workers,
		OnReload: func(def *ports.Definition, err error) {
			if err != nil {
				fmt.Fprintf(stderr, "%s⚡ reload failed:%s %v\n", colorRed, colorReset, err)
				return
			}
			fmt.Fprintf(stderr, "%s⚡ reloaded %s%s\n", colorGreen, def.Name, colorReset)
		},
	}
	if cfg.Record {
		store, err := openStore()
		if err != nil {
			w.Stop()
			return err
		}
		opts.Store = store
	}
	svc := app.NewService(opts)
	defer svc.Close()

	if err := svc.Watch(watchFile); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "⚡ watching %s\n", watchFile)

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	out := cmd.OutOrStdout()
	for {
		select {
		case <-sigCh:
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			fmt.Fprintln(out, evalLine(svc, line))
		}
	}
}

// evalLine evaluates one stdin line. Failures are reported inline so the
// loop keeps running.
func evalLine(svc *app.Service, line string) string {
	inputs, err := parseInputs(strings.Fields(line))
	if err != nil {
		return "error: " + err.Error()
	}
	out, err := svc.Evaluate(inputs)
	if err != nil {
		return "error: " + err.Error()
	}
	return formatValue(out)
}
