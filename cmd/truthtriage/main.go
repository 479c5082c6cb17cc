// Package main is the TruthTriage CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/truthtriage/truthtriage/internal/config"
	"github.com/truthtriage/truthtriage/internal/embedding"
	"github.com/truthtriage/truthtriage/internal/extract"
	"github.com/truthtriage/truthtriage/internal/generation"
	"github.com/truthtriage/truthtriage/internal/geo"
	"github.com/truthtriage/truthtriage/internal/ingest"
	"github.com/truthtriage/truthtriage/internal/keyword"
	"github.com/truthtriage/truthtriage/internal/models"
	"github.com/truthtriage/truthtriage/internal/pipeline"
	"github.com/truthtriage/truthtriage/internal/retrieval"
	"github.com/truthtriage/truthtriage/internal/server"
	"github.com/truthtriage/truthtriage/internal/storage"
	"github.com/truthtriage/truthtriage/internal/synthesis"
	"github.com/truthtriage/truthtriage/internal/vector"
	"github.com/truthtriage/truthtriage/internal/watcher"
	"github.com/truthtriage/truthtriage/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/truthtriage/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory wins if it exists, so running from the project dir
// picks up the project's config. Returns the config and the path actually used.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "doctors":
		runDoctors()
	case "ingest":
		runIngest()
	case "delete":
		runDelete()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("truthtriage version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (corpus changes, retrieval scoring, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	ing := components.Ingester
	startupCtx := context.Background()
	n, err := ing.IngestDirectory(startupCtx, cfg.Corpus.Directory, cfg.Corpus.Extensions)
	if err != nil {
		if errors.Is(err, ingest.ErrNoDocuments) {
			logger.Fatal("corpus directory has no ingestable documents",
				zap.String("directory", cfg.Corpus.Directory))
		}
		logger.Fatal("corpus ingest failed", zap.Error(err))
	}
	logger.Info("corpus ingested", zap.Int("files", n), zap.String("directory", cfg.Corpus.Directory))

	var watchSvc *watcher.Watcher
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Corpus.WatchOrDefault() {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(
			cfg.Corpus.Directory,
			cfg.Corpus.Extensions,
			func(path string) {
				if err := ing.IngestFile(context.Background(), path, cfg.Corpus.Extensions); err != nil {
					logger.Warn("watch ingest failed", zap.String("path", path), zap.Error(err))
				}
			},
			func(path string) {
				if err := ing.DeleteByPath(context.Background(), path); err != nil {
					logger.Warn("watch delete failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(components.Pipeline, components.Storage, cfg, logger, components.VectorIndex.Size)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if cfg.Storage.VectorIndexPath != "" {
		if err := components.VectorIndex.Save(cfg.Storage.VectorIndexPath); err != nil {
			logger.Warn("vector index save failed",
				zap.String("path", cfg.Storage.VectorIndexPath), zap.Error(err))
		}
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = run the pipeline directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: truthtriage ask [flags] <query>")
		os.Exit(1)
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Println("Usage: truthtriage ask [flags] <query>")
		os.Exit(1)
	}

	var response *models.ChatResponse
	if *serverURL != "" {
		res, err := askViaHTTP(*serverURL, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ask failed: %v\n", err)
			os.Exit(1)
		}
		response = res
	} else {
		components, cleanup := mustInitialize(*configPath)
		defer cleanup()
		response = components.Pipeline.Answer(context.Background(), query)
	}

	if *outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(response.Answer)
	fmt.Println()
	fmt.Printf("specialist: %s\n", response.SpecialistType)
	if len(response.Medicines) > 0 {
		fmt.Println("medicines:")
		for _, m := range response.Medicines {
			fmt.Printf("  %s — %s (%s)\n", m.Name, m.Usage, m.Source)
		}
	}
	if len(response.Sources) > 0 {
		fmt.Println("sources:")
		for _, src := range response.Sources {
			name := "unknown"
			if v, ok := src.Metadata["source"].(string); ok && v != "" {
				name = v
			}
			if src.SimilarityScore != nil {
				fmt.Printf("  %.4f  %s\n", *src.SimilarityScore, name)
			} else {
				fmt.Printf("  -       %s\n", name)
			}
		}
	}
}

func askViaHTTP(serverURL, query string) (*models.ChatResponse, error) {
	body, err := json.Marshal(&models.ChatRequest{Query: query})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runDoctors() {
	fs := flag.NewFlagSet("doctors", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = run the resolver directly)")
	location := fs.String("location", "", "free-text location (required)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if *location == "" {
		fmt.Println("Usage: truthtriage doctors --location <place> [flags] [symptom query]")
		os.Exit(1)
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))

	var response *models.DoctorResponse
	if *serverURL != "" {
		res, err := doctorsViaHTTP(*serverURL, query, *location)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Doctor lookup failed: %v\n", err)
			os.Exit(1)
		}
		response = res
	} else {
		components, cleanup := mustInitialize(*configPath)
		defer cleanup()
		response = components.Pipeline.FindFacilities(context.Background(), query, *location)
	}

	if *outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(response); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("specialization: %s\n", response.Specialization)
	fmt.Printf("location:       %s\n", response.Location)
	if len(response.Doctors) == 0 {
		fmt.Println("no facilities found")
		return
	}
	for _, d := range response.Doctors {
		fmt.Printf("  %s (%s)\n", d.Name, d.Specialization)
		if d.Address != "" {
			fmt.Printf("    %s\n", d.Address)
		}
		if d.Phone != "" {
			fmt.Printf("    %s\n", d.Phone)
		}
		fmt.Printf("    %.5f, %.5f\n", d.Latitude, d.Longitude)
	}
}

func doctorsViaHTTP(serverURL, query, location string) (*models.DoctorResponse, error) {
	body, err := json.Marshal(&models.DoctorRequest{Query: query, Location: location})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/doctors", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.DoctorResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: truthtriage ingest [flags] <file-or-directory>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	components, cleanup := mustInitialize(*configPath)
	defer cleanup()

	ctx := context.Background()
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Failed to stat path: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		n, err := components.Ingester.IngestDirectory(ctx, path, components.Config.Corpus.Extensions)
		if err != nil {
			fmt.Printf("Ingesting directory failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Ingested %d file(s) from %s\n", n, path)
	} else {
		// Single file: no extension filter
		if err := components.Ingester.IngestFile(ctx, path, nil); err != nil {
			fmt.Printf("Ingesting failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Ingested %s\n", path)
	}
	saveVectorIndex(components)
}

func runDelete() {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: truthtriage delete [flags] <file-path>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	components, cleanup := mustInitialize(*configPath)
	defer cleanup()

	if err := components.Ingester.DeleteByPath(context.Background(), path); err != nil {
		fmt.Printf("Deletion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Document deleted: %s\n", path)
	saveVectorIndex(components)
}

// statusResponse is the shape of GET /api/v1/status.
type statusResponse struct {
	Documents       int64                  `json:"documents"`
	Chunks          int64                  `json:"chunks"`
	VectorIndexSize int                    `json:"vector_index_size"`
	DiskUsageBytes  *int64                 `json:"disk_usage_bytes,omitempty"`
	Config          map[string]interface{} `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8000", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		components, cleanup := mustInitialize(*configPath)
		defer cleanup()
		ctx := context.Background()
		docCount, err := components.Storage.CountDocuments(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count documents failed: %v\n", err)
			os.Exit(1)
		}
		chunkCount, err := components.Storage.CountChunks(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count chunks failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Documents:       docCount,
			Chunks:          chunkCount,
			VectorIndexSize: components.VectorIndex.Size(),
		}
		cfg := components.Config
		diskBytes, err := storage.DiskUsageBytes(cfg.Storage.DatabasePath, cfg.Storage.BleveIndexPath, cfg.Storage.VectorIndexPath)
		if err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("documents:          %d\n", status.Documents)
		fmt.Printf("chunks:             %d\n", status.Chunks)
		fmt.Printf("vector_index_size:  %d\n", status.VectorIndexSize)
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes:   %d\n", *status.DiskUsageBytes)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Config       *config.Config
	Storage      storage.Storage
	Embedder     embedding.Embedder
	VectorIndex  *vector.MemoryIndex
	KeywordIndex *keyword.BleveIndex
	Ingester     *ingest.Ingester
	Pipeline     *pipeline.Service
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
	if c.VectorIndex != nil {
		_ = c.VectorIndex.Close()
	}
	if c.KeywordIndex != nil {
		_ = c.KeywordIndex.Close()
	}
}

// mustInitialize loads config, builds a logger, and initializes components,
// exiting on failure. Used by the one-shot subcommands.
func mustInitialize(configPath string) (*Components, func()) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return components, func() {
		components.Close()
		_ = logger.Sync()
	}
}

func saveVectorIndex(c *Components) {
	if c.Config.Storage.VectorIndexPath == "" {
		return
	}
	if err := c.VectorIndex.Save(c.Config.Storage.VectorIndexPath); err != nil {
		fmt.Fprintf(os.Stderr, "Vector index save failed: %v\n", err)
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var embedder embedding.Embedder
	httpEmbedder, err := embedding.NewHTTPEmbedder(embedding.HTTPConfig{
		BaseURL:    cfg.Embedding.BaseURL,
		APIKeyEnv:  cfg.Embedding.APIKeyEnv,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Warn("embedding service unavailable, using deterministic local embeddings", zap.Error(err))
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = embedding.NewCachedEmbedder(httpEmbedder, cfg.Embedding.CacheSize)
	}

	vectorIndex, err := vector.NewMemoryIndex(cfg.Embedding.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector index: %w", err)
	}
	if cfg.Storage.VectorIndexPath != "" {
		if loadErr := vectorIndex.Load(cfg.Storage.VectorIndexPath); loadErr != nil {
			logger.Warn("vector index load skipped",
				zap.String("path", cfg.Storage.VectorIndexPath), zap.Error(loadErr))
		}
	}

	keywordIndex, err := keyword.NewBleveIndex(cfg.Storage.BleveIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyword index: %w", err)
	}

	var generator generation.Generator
	httpGenerator, err := generation.NewHTTPGenerator(generation.HTTPConfig{
		BaseURL:     cfg.Generation.BaseURL,
		APIKeyEnv:   cfg.Generation.APIKeyEnv,
		Model:       cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		Timeout:     time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Warn("generation service unavailable, answers will report the failure", zap.Error(err))
		generator = &generation.MockGenerator{Err: err}
	} else {
		generator = httpGenerator
	}

	ingOpts := []ingest.Option{}
	rankOpts := []retrieval.Option{}
	if debug {
		ingOpts = append(ingOpts, ingest.WithLogger(logger))
		rankOpts = append(rankOpts, retrieval.WithLogger(logger))
	}
	ing := ingest.NewIngester(
		store, embedder, vectorIndex, keywordIndex,
		cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap,
		extract.NewExtractor(), ingOpts...,
	)
	ranker := retrieval.NewRanker(
		embedder, vectorIndex, keywordIndex, store,
		cfg.Retrieval.TopK, cfg.Retrieval.PreviewLength, cfg.Retrieval.RescorePrefixLength,
		rankOpts...,
	)
	synthesizer := synthesis.NewSynthesizer(generator, synthesis.WithLogger(logger))

	geoClient := geo.NewClient(geo.ClientConfig{
		NominatimURL: cfg.Geo.NominatimURL,
		OverpassURL:  cfg.Geo.OverpassURL,
		UserAgent:    cfg.Geo.UserAgent,
		Timeout:      time.Duration(cfg.Geo.TimeoutSeconds) * time.Second,
	}, geo.WithLogger(logger))
	resolver := geo.NewResolver(geoClient, geo.ResolverConfig{
		RadiusMeters:    cfg.Geo.RadiusMeters,
		MaxFacilities:   cfg.Geo.MaxFacilities,
		MaxTextFallback: cfg.Geo.MaxTextFallback,
	}, logger)

	svc := pipeline.NewService(ranker, synthesizer, resolver, pipeline.WithLogger(logger))

	return &Components{
		Config:       cfg,
		Storage:      store,
		Embedder:     embedder,
		VectorIndex:  vectorIndex,
		KeywordIndex: keywordIndex,
		Ingester:     ing,
		Pipeline:     svc,
	}, nil
}

func printUsage() {
	fmt.Println(`truthtriage - Medical RAG assistant with specialist lookup

Usage:
  truthtriage server [flags]                Start the HTTP server
  truthtriage ask [flags] <query>           Answer a medical query
  truthtriage doctors --location <place>    Find specialist facilities
  truthtriage ingest [flags] <path>         Ingest a file or directory
  truthtriage delete [flags] <file-path>    Remove an ingested file
  truthtriage status [flags]                Show corpus/index status
  truthtriage version                       Show version
  truthtriage help                          Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/truthtriage/config.yaml)
  --debug            Enable debug logging (corpus changes, retrieval scoring, etc.)

Ask Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (empty = run the pipeline directly)
  --output string    Output format: text or json (default: text)

Doctors Flags:
  --location string  Free-text location, e.g. "Indiranagar, Bengaluru" (required)
  --server string    Server URL (empty = run the resolver directly)
  --output string    Output format: text or json (default: text)

Examples:
  truthtriage server
  truthtriage ask "what should I take for a persistent dry cough"
  truthtriage ask --output json "fever and body ache"
  truthtriage doctors --location "Koramangala, Bengaluru" chest pain
  truthtriage ingest ./corpus
  truthtriage status`)
}
