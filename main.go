// haven TUI - A terminal client for the haven sentiment chatbot.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/auth"
	"github.com/jeranaias/haven-tui/internal/chat"
	"github.com/jeranaias/haven-tui/internal/config"
	"github.com/jeranaias/haven-tui/internal/mood"
	"github.com/jeranaias/haven-tui/internal/session"
	"github.com/jeranaias/haven-tui/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			fmt.Printf("haven %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "config":
			handleConfig(args[1:])
			return
		case "reset":
			handleReset()
			return
		case "help", "--help", "-h":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
			printUsage()
			os.Exit(1)
		}
	}

	if err := runTUI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`haven - a quiet place to talk

Usage:
  haven              start the chat interface
  haven config       show the config file path and contents
  haven config init  write a default config file
  haven reset        clear the saved conversation and sign out
  haven version      print version information`)
}

func handleConfig(args []string) {
	path, err := config.ConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(args) > 0 && args[0] == "init" {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "config already exists at %s\n", path)
			os.Exit(1)
		}
		if err := config.Save(config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	fmt.Println(path)
	if data, err := os.ReadFile(path); err == nil {
		fmt.Print(string(data))
	} else {
		fmt.Println("(not created yet; defaults in effect)")
	}
}

func handleReset() {
	dataDir, err := config.ConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := resetLocalData(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("conversation history cleared, signed out")
}

// resetLocalData wipes the archived conversation and the saved
// session token.
func resetLocalData(dataDir string) error {
	store, err := storage.Open(filepath.Join(dataDir, "haven.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearMessages(); err != nil {
		return err
	}
	return session.NewStore(store, nil).Clear()
}

func runTUI() error {
	lipgloss.SetColorProfile(termenv.ColorProfile())

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)

	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	dataDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	store, err := storage.Open(filepath.Join(dataDir, "haven.db"))
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer store.Close()

	sealer, err := session.NewSealer(filepath.Join(dataDir, "haven.key"))
	if err != nil {
		return fmt.Errorf("failed to initialize token sealing: %w", err)
	}

	sessions := session.NewStore(store, sealer)
	if err := sessions.Load(); err != nil {
		return err
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Server.BaseURL,
		Timeout: time.Duration(cfg.Server.TimeoutSecs) * time.Second,
	})

	authCtrl := auth.NewController(client, sessions)

	chatCtrl := chat.NewController(store)
	if err := chatCtrl.LoadHistory(cfg.Chat.HistoryLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load chat history: %v\n", err)
	}
	moodCtrl := mood.NewController()

	app := newApp(cfg, client, sessions, authCtrl, chatCtrl, moodCtrl)
	program := tea.NewProgram(app, tea.WithAltScreen())

	// Feed config file changes into the running program
	if path, err := config.ConfigPath(); err == nil {
		watcher, err := config.NewWatcher(path, func(reloaded *config.Config) {
			program.Send(configReloadedMsg{cfg: reloaded})
		})
		if err == nil {
			if err := watcher.Watch(); err == nil {
				defer watcher.Close()
			}
		}
	}

	_, err = program.Run()
	return err
}
