package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/codewise/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codewise [root]",
		Short: "LeetCode solution dataset extractor",
		Long: `codewise walks a tree of solved coding problems laid out as
<root>/<category>/<problem>/ and builds one record per problem from its
source code, its README (translated to English) and a LeetCode link found
by web search.

Examples:
  codewise                          # Scan ./LeetCode and print the table
  codewise ~/src/LeetCode --head 5  # Print only the first five records
  codewise --translator none --skip-links --json out.json`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.codewise.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.LogFile, "log-file", flags.LogFile, "Log file (appended to)")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().IntVarP(&flags.Head, "head", "n", 0, "Print only the first N records (0 prints all)")
	cmd.Flags().StringVar(&flags.OnlyFile, "only", "", "Process only the problems listed in file (key or category/key per line)")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop at the first directory that fails")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Do not print per-directory progress")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move previous export files to an archive directory before writing")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI chat models usable for translation")

	// Scan flags
	cmd.Flags().StringSliceVar(&flags.Extensions, "extensions", flags.Extensions, "Code file extensions")
	cmd.Flags().StringVar(&flags.CodePolicy, "code-policy", flags.CodePolicy, "Code files per problem: all or first")
	cmd.Flags().StringVar(&flags.FallbackEncoding, "fallback-encoding", flags.FallbackEncoding, "Encoding tried for non UTF-8 files: gb18030, gbk or none")

	// Translation flags
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "README translator: openai, gemini or none")
	cmd.Flags().StringVar(&flags.SourceLang, "source-lang", flags.SourceLang, "README source language")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", flags.TargetLang, "README target language")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for translation")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for translation")
	cmd.Flags().BoolVar(&flags.NoTranslationCache, "no-translation-cache", false, "Translate identical READMEs again")

	// Search flags
	cmd.Flags().BoolVar(&flags.SkipLinks, "skip-links", false, "Skip the LeetCode link lookup")
	cmd.Flags().StringVar(&flags.SearchEndpoint, "search-endpoint", "", "DuckDuckGo HTML endpoint (default https://html.duckduckgo.com/html/)")
	cmd.Flags().StringVar(&flags.TargetSite, "target-site", flags.TargetSite, "Substring a result URL must contain")
	cmd.Flags().StringVar(&flags.QuerySuffix, "query-suffix", flags.QuerySuffix, "Text appended to the problem key in search queries")
	cmd.Flags().IntVar(&flags.MaxResults, "max-results", flags.MaxResults, "Search results inspected per problem")
	cmd.Flags().DurationVar(&flags.SearchTimeout, "search-timeout", flags.SearchTimeout, "Timeout per search request")
	cmd.Flags().DurationVar(&flags.SearchPause, "search-pause", flags.SearchPause, "Pause between search result pages")
	cmd.Flags().IntVar(&flags.BreakerThreshold, "breaker-threshold", flags.BreakerThreshold, "Consecutive search failures before lookups are skipped")

	// Export flags
	cmd.Flags().StringVar(&flags.JSONPath, "json", "", "Write the dataset to a JSON file")
	cmd.Flags().StringVar(&flags.CSVPath, "csv", "", "Write the dataset to a CSV file")
	cmd.Flags().StringVar(&flags.SQLitePath, "sqlite", "", "Write the dataset to a SQLite database")
	cmd.Flags().StringVar(&flags.PostgresDSN, "postgres", "", "Write the dataset to a PostgreSQL database (DSN)")
	cmd.Flags().StringVar(&flags.S3Endpoint, "s3-endpoint", "", "S3 compatible endpoint for the JSON upload")
	cmd.Flags().StringVar(&flags.S3Bucket, "s3-bucket", "", "Bucket for the JSON upload")
	cmd.Flags().StringVar(&flags.S3Prefix, "s3-prefix", "", "Object key prefix for the JSON upload")
	cmd.Flags().BoolVar(&flags.S3UseSSL, "s3-ssl", flags.S3UseSSL, "Use TLS for the S3 endpoint")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// flagKeys maps flag names to their viper keys.
var flagKeys = map[string]string{
	"log-file":             "log.file",
	"log-level":            "log.level",
	"head":                 "output.head",
	"only":                 "scan.only",
	"fail-fast":            "scan.fail_fast",
	"quiet":                "output.quiet",
	"archive":              "output.archive",
	"extensions":           "scan.extensions",
	"code-policy":          "scan.code_policy",
	"fallback-encoding":    "scan.fallback_encoding",
	"translator":           "translation.provider",
	"source-lang":          "translation.source",
	"target-lang":          "translation.target",
	"openai-model":         "translation.openai_model",
	"gemini-model":         "translation.gemini_model",
	"no-translation-cache": "translation.no_cache",
	"skip-links":           "search.skip",
	"search-endpoint":      "search.endpoint",
	"target-site":          "search.target",
	"query-suffix":         "search.query_suffix",
	"max-results":          "search.max_results",
	"search-timeout":       "search.timeout",
	"search-pause":         "search.pause",
	"breaker-threshold":    "search.breaker_threshold",
	"json":                 "export.json",
	"csv":                  "export.csv",
	"sqlite":               "export.sqlite",
	"postgres":             "export.postgres",
	"s3-endpoint":          "export.s3.endpoint",
	"s3-bucket":            "export.s3.bucket",
	"s3-prefix":            "export.s3.prefix",
	"s3-ssl":               "export.s3.use_ssl",
}

func bindFlagsToViper(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			viper.BindPFlag(key, f)
		}
	})
}

// ApplyConfig copies the effective configuration into flags. Flags set on
// the command line win over environment variables, which win over the
// config file. args holds the optional root directory argument.
func ApplyConfig(flags *Flags, args []string) {
	flags.LogFile = viper.GetString("log.file")
	flags.LogLevel = viper.GetString("log.level")
	flags.Head = viper.GetInt("output.head")
	flags.OnlyFile = viper.GetString("scan.only")
	flags.FailFast = viper.GetBool("scan.fail_fast")
	flags.Quiet = viper.GetBool("output.quiet")
	flags.Archive = viper.GetBool("output.archive")

	flags.Extensions = viper.GetStringSlice("scan.extensions")
	flags.CodePolicy = viper.GetString("scan.code_policy")
	flags.FallbackEncoding = viper.GetString("scan.fallback_encoding")

	flags.Translator = viper.GetString("translation.provider")
	flags.SourceLang = viper.GetString("translation.source")
	flags.TargetLang = viper.GetString("translation.target")
	flags.OpenAIModel = viper.GetString("translation.openai_model")
	flags.GeminiModel = viper.GetString("translation.gemini_model")
	flags.NoTranslationCache = viper.GetBool("translation.no_cache")

	flags.SkipLinks = viper.GetBool("search.skip")
	flags.SearchEndpoint = viper.GetString("search.endpoint")
	flags.TargetSite = viper.GetString("search.target")
	flags.QuerySuffix = viper.GetString("search.query_suffix")
	flags.MaxResults = viper.GetInt("search.max_results")
	flags.SearchTimeout = viper.GetDuration("search.timeout")
	flags.SearchPause = viper.GetDuration("search.pause")
	flags.BreakerThreshold = viper.GetInt("search.breaker_threshold")

	flags.JSONPath = viper.GetString("export.json")
	flags.CSVPath = viper.GetString("export.csv")
	flags.SQLitePath = viper.GetString("export.sqlite")
	flags.PostgresDSN = viper.GetString("export.postgres")
	flags.S3Endpoint = viper.GetString("export.s3.endpoint")
	flags.S3Bucket = viper.GetString("export.s3.bucket")
	flags.S3Prefix = viper.GetString("export.s3.prefix")
	flags.S3UseSSL = viper.GetBool("export.s3.use_ssl")

	switch {
	case len(args) > 0:
		flags.Root = args[0]
	case viper.GetString("root") != "":
		flags.Root = viper.GetString("root")
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".codewise" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".codewise")
	}

	// Environment variables, nested keys use underscores: CODEWISE_SEARCH_SKIP
	viper.SetEnvPrefix("CODEWISE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("translation.gemini_key")
}

// GetS3Credentials retrieves the S3 access and secret key from environment
// or config.
func GetS3Credentials() (string, string) {
	access := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if access != "" && secret != "" {
		return access, secret
	}
	return viper.GetString("export.s3.access_key"), viper.GetString("export.s3.secret_key")
}
