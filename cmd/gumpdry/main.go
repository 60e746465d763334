// Command gumpdry runs dialog scripts against an in-memory host and prints
// every dialog they send.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"gumpkit"
	"gumpkit/host/memhost"
)

func main() {
	settings := flag.String("settings", "gumpkit.yaml", "settings file, created with defaults when missing")
	dir := flag.String("scripts", "", "scripts directory (overrides settings)")
	waits := flag.Int("waits", 20, "disconnect the fake host after this many waits")
	examples := flag.Bool("examples", false, "install the example scripts into an empty scripts directory")
	debug := flag.Bool("debug", false, "verbose/debug logging")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := memhost.New()
	h.DisconnectAfterWaits(*waits)
	kit, err := gumpkit.Open(ctx, *settings, h, gumpkit.WithConsole(func(owner, msg string) {
		fmt.Printf("[%s] %s\n", owner, msg)
	}))
	if err != nil {
		log.Fatalf("gumpdry: %v", err)
	}
	if *dir != "" {
		kit.Config.Scripts.Dir = *dir
	}
	if *debug {
		kit.Log.SetDebug(true)
	}
	if *examples {
		if _, err := kit.InstallExamples(); err != nil {
			log.Fatalf("gumpdry: %v", err)
		}
	}

	infos, err := kit.LoadScripts()
	if err != nil {
		log.Printf("gumpdry: %v", err)
	}
	for _, info := range infos {
		fmt.Printf("loaded %s by %s\n", info.Name, info.Author)
	}

	done := make(chan struct{})
	go func() {
		kit.Scripts.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
	if err := kit.Close(context.Background()); err != nil {
		log.Printf("gumpdry: %v", err)
	}

	sends := h.Sends()
	for _, s := range sends {
		fmt.Printf("%s at %d,%d after %s: %s\n", s.ID, s.X, s.Y, s.At,
			humanize.Bytes(uint64(len(s.Serial))))
	}
	fmt.Printf("%s dialogs sent\n", humanize.Comma(int64(len(sends))))
}
