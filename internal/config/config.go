package config

import (
	"fmt"
	"strings"
	"time"
)

const defaultTemperature = 0.3

const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	AI          AIConfig          `yaml:"ai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Summary     SummaryConfig     `yaml:"summary"`
	Mood        MoodConfig        `yaml:"mood"`
	Synthesis   SynthesisConfig   `yaml:"synthesis"`
	Cleanup     CleanupConfig     `yaml:"cleanup"`
	Timeouts    TimeoutsConfig    `yaml:"timeouts"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	MaxUploadMB   int64         `yaml:"max_upload_mb"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// AIConfig addresses the OpenAI-compatible service. With provider "azure" the
// model names are deployment names.
type AIConfig struct {
	Provider           string `yaml:"provider"`
	Endpoint           string `yaml:"endpoint"`
	APIVersion         string `yaml:"api_version"`
	APIKey             string `yaml:"api_key"`
	ChatModel          string `yaml:"chat_model"`
	TranscriptionModel string `yaml:"transcription_model"`
	SpeechModel        string `yaml:"speech_model"`
}

// GeminiConfig takes one key or a comma-separated list; calls rotate through
// the list when a key is rate limited.
type GeminiConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

// Keys splits APIKey into its non-empty entries.
func (g GeminiConfig) Keys() []string {
	var keys []string
	for _, k := range strings.Split(g.APIKey, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

type ExtractionConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	AudioFormat  string `yaml:"audio_format"`
	AudioQuality string `yaml:"audio_quality"`
}

// SummaryConfig controls the summary request. An unset temperature defaults
// to 0.3; an explicit 0 is kept.
type SummaryConfig struct {
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

type MoodConfig struct {
	Enabled     *bool    `yaml:"enabled"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

// IsEnabled reports whether mood classification runs; unset means enabled.
func (m MoodConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

type SynthesisConfig struct {
	FFmpegPath     string        `yaml:"ffmpeg_path"`
	FFprobePath    string        `yaml:"ffprobe_path"`
	ResponseFormat string        `yaml:"response_format"`
	Bitrate        string        `yaml:"bitrate"`
	LeadIn         time.Duration `yaml:"lead_in"`
}

type CleanupConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Interval    time.Duration `yaml:"interval"`
}

type TimeoutsConfig struct {
	Extract    time.Duration `yaml:"extract"`
	Transcribe time.Duration `yaml:"transcribe"`
	Summarize  time.Duration `yaml:"summarize"`
	Classify   time.Duration `yaml:"classify"`
	Synthesize time.Duration `yaml:"synthesize"`
}

type PathsConfig struct {
	Temp   string `yaml:"temp"`
	Inbox  string `yaml:"inbox"`
	Output string `yaml:"output"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if c.AI.Provider == "" {
		c.AI.Provider = ProviderAzure
	}

	switch c.AI.Provider {
	case ProviderAzure:
		if c.AI.Endpoint == "" {
			return fmt.Errorf("ai.endpoint is required for the azure provider")
		}
		if c.AI.APIVersion == "" {
			return fmt.Errorf("ai.api_version is required for the azure provider")
		}
		if c.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required")
		}
		if c.AI.ChatModel == "" {
			return fmt.Errorf("ai.chat_model is required for the azure provider")
		}
	case ProviderOpenAI:
		if c.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required")
		}
	case ProviderGemini:
		if len(c.Gemini.Keys()) == 0 {
			return fmt.Errorf("gemini.api_key is required for the gemini provider")
		}
		// Speech synthesis still goes through the OpenAI-compatible service.
		if c.AI.APIKey == "" {
			return fmt.Errorf("ai.api_key is required for speech synthesis")
		}
	default:
		return fmt.Errorf("ai.provider must be one of azure, openai, gemini; got %q", c.AI.Provider)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = 30 * time.Minute
	}
	if c.Server.SweepInterval == 0 {
		c.Server.SweepInterval = time.Minute
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 200
	}

	if c.AI.TranscriptionModel == "" {
		c.AI.TranscriptionModel = "whisper"
		if c.AI.Provider != ProviderAzure {
			c.AI.TranscriptionModel = "whisper-1"
		}
	}
	if c.AI.SpeechModel == "" {
		c.AI.SpeechModel = "tts"
		if c.AI.Provider != ProviderAzure {
			c.AI.SpeechModel = "tts-1"
		}
	}
	if c.AI.ChatModel == "" {
		c.AI.ChatModel = "gpt-4o"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	if c.Extraction.BinaryPath == "" {
		c.Extraction.BinaryPath = "yt-dlp"
	}
	if c.Extraction.AudioFormat == "" {
		c.Extraction.AudioFormat = "mp3"
	}
	if c.Extraction.AudioQuality == "" {
		c.Extraction.AudioQuality = "192K"
	}

	if c.Summary.MaxTokens == 0 {
		c.Summary.MaxTokens = 800
	}
	if c.Summary.Temperature == nil {
		c.Summary.Temperature = floatPtr(defaultTemperature)
	}
	if t := *c.Summary.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("summary.temperature must be between 0 and 2, got %g", t)
	}
	if c.Mood.MaxTokens == 0 {
		c.Mood.MaxTokens = 10
	}
	if c.Mood.Temperature == nil {
		c.Mood.Temperature = floatPtr(defaultTemperature)
	}
	if t := *c.Mood.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("mood.temperature must be between 0 and 2, got %g", t)
	}

	if c.Synthesis.FFmpegPath == "" {
		c.Synthesis.FFmpegPath = "ffmpeg"
	}
	if c.Synthesis.FFprobePath == "" {
		c.Synthesis.FFprobePath = "ffprobe"
	}
	if c.Synthesis.ResponseFormat == "" {
		c.Synthesis.ResponseFormat = "mp3"
	}
	if c.Synthesis.Bitrate == "" {
		c.Synthesis.Bitrate = "192k"
	}
	if c.Synthesis.LeadIn == 0 {
		c.Synthesis.LeadIn = 10 * time.Second
	}
	if c.Synthesis.LeadIn < 0 {
		return fmt.Errorf("synthesis.lead_in must not be negative")
	}

	if c.Cleanup.MaxAttempts == 0 {
		c.Cleanup.MaxAttempts = 5
	}
	if c.Cleanup.Interval == 0 {
		c.Cleanup.Interval = time.Second
	}

	if c.Timeouts.Extract == 0 {
		c.Timeouts.Extract = 30 * time.Minute
	}
	if c.Timeouts.Transcribe == 0 {
		c.Timeouts.Transcribe = 30 * time.Minute
	}
	if c.Timeouts.Summarize == 0 {
		c.Timeouts.Summarize = 5 * time.Minute
	}
	if c.Timeouts.Classify == 0 {
		c.Timeouts.Classify = 30 * time.Second
	}
	if c.Timeouts.Synthesize == 0 {
		c.Timeouts.Synthesize = 10 * time.Minute
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}
