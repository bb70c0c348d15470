package main

import (
	"github.com/joho/godotenv"

	"subtrans/internal/config"
	"subtrans/internal/llm"
	"subtrans/internal/translator"
)

// commandContext lazily loads configuration and builds the shared
// collaborators, so commands that never touch the endpoint (analyze,
// preview) do not need a reachable server or a valid LLM setup.
type commandContext struct {
	envFile *string
	cfg     *config.Config
}

func newCommandContext(envFile *string) *commandContext {
	return &commandContext{envFile: envFile}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	if c.envFile != nil && *c.envFile != "" {
		if err := godotenv.Load(*c.envFile); err != nil {
			return nil, err
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) newClient() (*llm.Client, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	llmConfig := cfg.LLMConfig()
	client, err := llm.NewClient(&llmConfig)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func (c *commandContext) newPipeline(opts translator.Options, stats *translator.Stats) (*translator.Pipeline, error) {
	client, _, err := c.newClient()
	if err != nil {
		return nil, err
	}
	return translator.NewPipeline(client, opts, stats)
}
