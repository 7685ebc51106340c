package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/reportsmith/ai/agent"
	"github.com/hrygo/reportsmith/ai/core/llm"
	"github.com/hrygo/reportsmith/ai/metrics"
	"github.com/hrygo/reportsmith/ai/research"
	"github.com/hrygo/reportsmith/ai/tools"
	"github.com/hrygo/reportsmith/internal/profile"
	"github.com/hrygo/reportsmith/internal/version"
	"github.com/hrygo/reportsmith/server"
)

var (
	rootCmd = &cobra.Command{
		Use:   "reportsmith",
		Short: `An AI research and report generator. Enter a topic, pick a depth level, and export a structured PDF report.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// Try to load .env file from current directory (ignore error if file doesn't exist)
			_ = godotenv.Load()
			return nil
		},
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile := &profile.Profile{
				Mode:        viper.GetString("mode"),
				Addr:        viper.GetString("addr"),
				Port:        viper.GetInt("port"),
				Data:        viper.GetString("data"),
				InstanceURL: viper.GetString("instance-url"),
				Version:     version.GetCurrentVersion(viper.GetString("mode")),
			}
			instanceProfile.FromEnv()
			if err := instanceProfile.Validate(); err != nil {
				panic(err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			llmService, err := llm.NewService(&llm.Config{
				Provider:    instanceProfile.LLMProvider,
				Model:       instanceProfile.LLMModel,
				APIKey:      instanceProfile.LLMAPIKey,
				BaseURL:     instanceProfile.LLMBaseURL,
				MaxTokens:   instanceProfile.LLMMaxTokens,
				Temperature: instanceProfile.LLMTemperature,
				Timeout:     instanceProfile.LLMTimeout,
			})
			if err != nil {
				slog.Error("failed to create LLM service", "error", err)
				return
			}

			if !instanceProfile.IsAIEnabled() {
				fmt.Fprintln(os.Stderr, "Warning: no LLM API key found. Set REPORTSMITH_LLM_API_KEY (or GROQ_API_KEY) in a .env file or environment variable.")
			}

			// Research tools are built once here and injected; there are no
			// package-level tool singletons.
			researchTools := []agent.ToolWithSchema{
				tools.NewWebSearchTool(tools.NewWebSearch()),
				tools.NewWikipediaTool(tools.NewWikipedia()),
			}

			exporter := metrics.NewPrometheusExporter(metrics.DefaultConfig())
			generator := research.NewGenerator(llmService, researchTools, instanceProfile.AgentMaxIterations, exporter)

			s, err := server.NewServer(ctx, instanceProfile, generator, exporter)
			if err != nil {
				slog.Error("failed to create server", "error", err)
				return
			}

			c := make(chan os.Signal, 1)
			// Trigger graceful shutdown on SIGINT or SIGTERM.
			signal.Notify(c, terminationSignals...)

			if err := s.Start(ctx); err != nil {
				slog.Error("failed to start server", "error", err)
				return
			}

			go llmService.Warmup(ctx)

			printGreetings(instanceProfile)

			go func() {
				<-c
				s.Shutdown(ctx)
				cancel()
			}()

			// Wait for CTRL-C.
			<-ctx.Done()
		},
	}
)

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("port", 28091)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 28091, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("instance-url", "", "the url of your reportsmith instance")

	for _, flag := range []string{"mode", "addr", "port", "data", "instance-url"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("reportsmith")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func printGreetings(profile *profile.Profile) {
	fmt.Printf("Reportsmith %s started successfully!\n", profile.Version)

	if profile.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
	}

	fmt.Printf("Mode: %s\n", profile.Mode)
	fmt.Printf("LLM provider: %s (%s)\n", profile.LLMProvider, profile.LLMModel)

	if len(profile.Addr) == 0 {
		fmt.Printf("Server running on port %d\n", profile.Port)
		fmt.Printf("Access Reportsmith at: http://localhost:%d\n", profile.Port)
	} else {
		fmt.Printf("Server running on %s:%d\n", profile.Addr, profile.Port)
		fmt.Printf("Access Reportsmith at: http://%s:%d\n", profile.Addr, profile.Port)
	}

	fmt.Println("\nHappy researching!")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
