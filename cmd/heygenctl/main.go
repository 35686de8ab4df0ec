package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"gateway/internal/infra"
	"gateway/internal/providers/heygen"
)

const usage = `usage: heygenctl <command> [flags]

commands:
  voices-count              print how many voices the workspace offers
  voices -locale <tag>      list voices able to speak a locale
  locales                   list voice locales enabled for the workspace
  streams                   list active streaming sessions
  stop-stream -session <id> stop one streaming session
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger("cli", "").With().Str("cmd", "heygenctl").Logger()
	client, err := heygen.NewClientFromConfig(cfg, &logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout*2)
	defer cancel()

	if err := run(ctx, client, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *heygen.Client, cmd string, args []string, out io.Writer) error {
	catalog := heygen.NewCatalog(client)
	sessions := heygen.NewSessions(client)

	switch cmd {
	case "voices-count":
		voices, err := catalog.ListVoices(ctx, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d voices\n", len(voices))
	case "voices":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		locale := fs.String("locale", "", "BCP-47 locale, e.g. pt-BR")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if strings.TrimSpace(*locale) == "" {
			return fmt.Errorf("-locale is required")
		}
		voices, err := catalog.ListVoices(ctx, *locale)
		if err != nil {
			return err
		}
		for _, v := range voices {
			fmt.Fprintf(out, "%s\t%s\t%s\n", v.ID, v.Name, v.Language)
		}
	case "locales":
		locales, err := catalog.ListVoiceLocales(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(locales, "\n"))
	case "streams":
		active, err := sessions.ListActive(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(active)
	case "stop-stream":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		session := fs.String("session", "", "streaming session id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := sessions.Stop(ctx, *session); err != nil {
			return err
		}
		fmt.Fprintf(out, "session %s stopped\n", *session)
	default:
		return fmt.Errorf("unknown command\n%s", usage)
	}
	return nil
}
