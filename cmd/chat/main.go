// The chat command is an interactive terminal client for the MUL
// chatbot's streaming API.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mulbot/mulchat/internal/client"
	"github.com/mulbot/mulchat/internal/config"
	"github.com/mulbot/mulchat/internal/service/transcript"
	"github.com/mulbot/mulchat/internal/session"
	"github.com/mulbot/mulchat/internal/ui"
)

var (
	serverURL      string
	timeoutSeconds int
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "mulchat",
	Short: "Chat with the MUL assistant from your terminal",
	Long: `An interactive client for the Minhaj University Lahore chatbot.

Messages are sent to the streaming chat endpoint; processing status
updates appear live while the agent works, followed by the answer.
Conversation context is kept for the whole session.`,
	RunE: runChat,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the chat backend is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := buildClient()
		if err != nil {
			return err
		}
		if err := c.Health(cmd.Context()); err != nil {
			return fmt.Errorf("backend unhealthy: %w", err)
		}
		fmt.Println("backend is healthy")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "chat backend base URL (defaults to $MULCHAT_BASE_URL)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "request timeout in seconds for non-streaming calls")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(healthCmd)
}

func buildClient() (*client.Client, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file, using system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.Client.BaseURL = serverURL
	}
	if timeoutSeconds > 0 {
		cfg.Client.Timeout = time.Duration(timeoutSeconds) * time.Second
	}

	return client.New(cfg.Client.BaseURL).
		WithTimeout(cfg.Client.Timeout).
		WithLogger(log.Logger), nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}

	console := ui.NewConsole(os.Stdout)
	store := transcript.NewStore()
	store.Subscribe(console)
	controller := session.NewController(c, store, console, log.Logger)

	fmt.Println("MUL chatbot. Ask about admissions, programs, fees. Ctrl-D to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		controller.Submit(cmd.Context(), scanner.Text())
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	cobra.OnInitialize(func() {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
