package cli

import (
	"time"

	"codeberg.org/snonux/codewise/internal/classify"
	"codeberg.org/snonux/codewise/internal/export"
	"codeberg.org/snonux/codewise/internal/logging"
	"codeberg.org/snonux/codewise/internal/processor"
	"codeberg.org/snonux/codewise/internal/search"
	"codeberg.org/snonux/codewise/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Root       string
	LogFile    string
	LogLevel   string
	Head       int
	OnlyFile   string
	FailFast   bool
	Quiet      bool
	Archive    bool
	ListModels bool

	// Scan flags
	Extensions       []string
	CodePolicy       string
	FallbackEncoding string

	// Translation flags
	Translator         string
	SourceLang         string
	TargetLang         string
	OpenAIModel        string
	GeminiModel        string
	NoTranslationCache bool

	// Search flags
	SkipLinks        bool
	SearchEndpoint   string
	TargetSite       string
	QuerySuffix      string
	MaxResults       int
	SearchTimeout    time.Duration
	SearchPause      time.Duration
	BreakerThreshold int

	// Export flags
	JSONPath    string
	CSVPath     string
	SQLitePath  string
	PostgresDSN string
	S3Endpoint  string
	S3Bucket    string
	S3Prefix    string
	S3UseSSL    bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Root:             processor.DefaultRoot,
		LogFile:          logging.DefaultFile,
		LogLevel:         "info",
		Extensions:       append([]string(nil), classify.DefaultExtensions...),
		CodePolicy:       string(classify.PolicyAll),
		FallbackEncoding: "gb18030",
		Translator:       translation.ProviderOpenAI,
		SourceLang:       translation.DefaultSourceLanguage,
		TargetLang:       translation.DefaultTargetLanguage,
		OpenAIModel:      translation.DefaultOpenAIModel,
		GeminiModel:      translation.DefaultGeminiModel,
		TargetSite:       search.DefaultTarget,
		QuerySuffix:      search.DefaultQuerySuffix,
		MaxResults:       search.DefaultMaxResults,
		SearchTimeout:    5 * time.Second,
		SearchPause:      2 * time.Second,
		BreakerThreshold: 5,
		S3UseSSL:         true,
	}
}

// TranslationConfig returns the translator settings for the flags.
func (f *Flags) TranslationConfig() translation.Config {
	return translation.Config{
		Provider:     f.Translator,
		OpenAIKey:    GetOpenAIKey(),
		OpenAIModel:  f.OpenAIModel,
		GeminiKey:    GetGeminiKey(),
		GeminiModel:  f.GeminiModel,
		DisableCache: f.NoTranslationCache,
	}
}

// DuckDuckGoOptions returns the web search settings for the flags.
func (f *Flags) DuckDuckGoOptions() search.DuckDuckGoOptions {
	return search.DuckDuckGoOptions{
		Endpoint: f.SearchEndpoint,
		Timeout:  f.SearchTimeout,
		Pause:    f.SearchPause,
	}
}

// ResolverConfig returns the link resolver settings for the flags.
func (f *Flags) ResolverConfig() search.ResolverConfig {
	threshold := f.BreakerThreshold
	if threshold < 0 {
		threshold = 0
	}
	return search.ResolverConfig{
		Target:           f.TargetSite,
		QuerySuffix:      f.QuerySuffix,
		MaxResults:       f.MaxResults,
		BreakerThreshold: uint32(threshold),
	}
}

// ExportConfig returns the export targets for the flags.
func (f *Flags) ExportConfig() export.Config {
	accessKey, secretKey := GetS3Credentials()
	return export.Config{
		JSONPath:    f.JSONPath,
		CSVPath:     f.CSVPath,
		SQLitePath:  f.SQLitePath,
		PostgresDSN: f.PostgresDSN,
		S3: export.S3Config{
			Endpoint:  f.S3Endpoint,
			AccessKey: accessKey,
			SecretKey: secretKey,
			Bucket:    f.S3Bucket,
			Prefix:    f.S3Prefix,
			UseSSL:    f.S3UseSSL,
			Root:      f.Root,
		},
	}
}
