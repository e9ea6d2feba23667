package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-effects-mcp/internal/config"
	"github.com/ironsheep/image-effects-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-effects-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-effects-mcp - MCP server for image compositing and text effects")
			fmt.Println()
			fmt.Println("Usage: image-effects-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_EFFECTS_LOG_LEVEL=debug           Enable debug logging")
			fmt.Println("  IMAGE_EFFECTS_FONT=/path/font.ttf       Default TrueType font")
			fmt.Println("  IMAGE_EFFECTS_MAX_SCRATCH_PIXELS=N      Limit blend buffers to N pixels")
			fmt.Println("  IMAGE_EFFECTS_DISABLE_TEXT=true         Turn text rendering off")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Image Effects MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		if !cfg.Capabilities.Text {
			log.Printf("Text rendering unavailable: %s", cfg.Capabilities.Reason)
		}
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
