package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = []string{
			"http://localhost:5173",
			"http://localhost:5174",
			"http://localhost:3000",
		}
	}
	if cfg.Corpus.Directory == "" {
		cfg.Corpus.Directory = "/usr/local/var/truthtriage/data"
	}
	if cfg.Corpus.Extensions == nil {
		cfg.Corpus.Extensions = []string{".pdf", ".txt", ".md", ".docx", ".xlsx"}
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/truthtriage/db/documents.db"
	}
	if cfg.Storage.BleveIndexPath == "" {
		cfg.Storage.BleveIndexPath = "/usr/local/var/truthtriage/indices/bleve"
	}
	if cfg.Storage.VectorIndexPath == "" {
		cfg.Storage.VectorIndexPath = "/usr/local/var/truthtriage/indices/vectors"
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.TimeoutSeconds == 0 {
		cfg.Embedding.TimeoutSeconds = 30
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Generation.BaseURL == "" {
		cfg.Generation.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Generation.APIKeyEnv == "" {
		cfg.Generation.APIKeyEnv = "GROQ_API_KEY"
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = "llama-3.1-8b-instant"
	}
	if cfg.Generation.MaxTokens == 0 {
		cfg.Generation.MaxTokens = 2048
	}
	if cfg.Generation.TimeoutSeconds == 0 {
		cfg.Generation.TimeoutSeconds = 60
	}
	if cfg.Retrieval.ChunkSize == 0 {
		cfg.Retrieval.ChunkSize = 1000
	}
	if cfg.Retrieval.ChunkOverlap == 0 {
		cfg.Retrieval.ChunkOverlap = 100
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.PreviewLength == 0 {
		cfg.Retrieval.PreviewLength = 300
	}
	if cfg.Retrieval.RescorePrefixLength == 0 {
		cfg.Retrieval.RescorePrefixLength = 500
	}
	if cfg.Geo.NominatimURL == "" {
		cfg.Geo.NominatimURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geo.OverpassURL == "" {
		cfg.Geo.OverpassURL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Geo.RadiusMeters == 0 {
		cfg.Geo.RadiusMeters = 5000
	}
	if cfg.Geo.UserAgent == "" {
		cfg.Geo.UserAgent = "TruthTriageHealthApp/1.0"
	}
	if cfg.Geo.TimeoutSeconds == 0 {
		cfg.Geo.TimeoutSeconds = 20
	}
	if cfg.Geo.MaxFacilities == 0 {
		cfg.Geo.MaxFacilities = 15
	}
	if cfg.Geo.MaxTextFallback == 0 {
		cfg.Geo.MaxTextFallback = 5
	}
}
