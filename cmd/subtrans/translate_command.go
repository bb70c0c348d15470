package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"subtrans/internal/config"
	"subtrans/internal/llm"
	"subtrans/internal/service"
	"subtrans/internal/subtitle"
	"subtrans/internal/translator"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var langFlag string
	var modelFlag string
	var apiURLFlag string
	var chunkSizeFlag int
	var contextWindowFlag int
	var concurrencyFlag int
	var bulkFlag bool
	var sceneFlag string
	var speakerFlag string

	cmd := &cobra.Command{
		Use:   "translate <input.srt>",
		Short: "Translate a subtitle file",
		Long:  "Translate a subtitle file. Pass \"-\" as the input to read SRT content from stdin and write to stdout.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := cfg.Translate.TargetLanguage
			if langFlag != "" {
				if target, err = language.Parse(langFlag); err != nil {
					return fmt.Errorf("invalid target language %q: %w", langFlag, err)
				}
			}

			llmConfig := cfg.LLMConfig()
			if modelFlag != "" {
				llmConfig.Model = modelFlag
			}
			if apiURLFlag != "" {
				llmConfig.APIURL = apiURLFlag
			}
			client, err := llm.NewClient(&llmConfig)
			if err != nil {
				return err
			}

			opts := cfg.TranslatorOptions()
			opts.TargetLanguage = config.LanguageName(target)
			opts.Bulk = bulkFlag
			opts.Scene = sceneFlag
			opts.Speaker = speakerFlag
			if chunkSizeFlag > 0 {
				opts.ChunkBudget = chunkSizeFlag
			}
			if cmd.Flags().Changed("context-window") {
				opts.ContextWindow = contextWindowFlag
				if contextWindowFlag == 0 {
					opts.ContextWindow = -1
				}
			}
			if concurrencyFlag > 0 {
				opts.MaxConcurrent = concurrencyFlag
			}

			stats := translator.NewStats()
			pipeline, err := translator.NewPipeline(client, opts, stats)
			if err != nil {
				return err
			}

			input := args[0]
			if input == "-" {
				return translateStream(cmd, pipeline)
			}

			entries, err := subtitle.ReadFile(input)
			if err != nil {
				return err
			}

			start := time.Now()
			translated, err := pipeline.Translate(cmd.Context(), entries)
			if err != nil {
				return err
			}

			output := outputFlag
			if output == "" {
				output = service.OutputPath(input, target)
			}
			if err := subtitle.WriteFile(output, translated); err != nil {
				return err
			}

			snapshot := stats.Snapshot()
			fmt.Fprintln(cmd.OutOrStdout(), renderKV("Translation", [][2]string{
				{"Input", input},
				{"Output", output},
				{"Target language", opts.TargetLanguage},
				{"Entries", fmt.Sprintf("%d", snapshot.Entries)},
				{"Translated", fmt.Sprintf("%d", snapshot.TranslatedEntries)},
				{"Kept original", fmt.Sprintf("%d", snapshot.FailedEntries)},
				{"Duration", time.Since(start).Round(time.Millisecond).String()},
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (default: <input>.<lang>.srt)")
	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "Target language tag, e.g. ja, de, fr")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Model name (default from LLM_MODEL)")
	cmd.Flags().StringVar(&apiURLFlag, "api-url", "", "Endpoint base URL (default from LLM_API_URL)")
	cmd.Flags().IntVar(&chunkSizeFlag, "chunk-size", 0, "Serialized chunk budget in bytes (default from CHUNK_SIZE)")
	cmd.Flags().IntVar(&contextWindowFlag, "context-window", 0, "Context entries per side, 0 disables (default from CONTEXT_WINDOW)")
	cmd.Flags().IntVar(&concurrencyFlag, "concurrency", 0, "Concurrent endpoint calls (default from MAX_CONCURRENT)")
	cmd.Flags().BoolVar(&bulkFlag, "bulk", false, "Translate whole chunks in one call instead of entry by entry")
	cmd.Flags().StringVar(&sceneFlag, "scene", "", "Scene description passed to every translation")
	cmd.Flags().StringVar(&speakerFlag, "speaker", "", "Speaker hint passed to every translation")

	return cmd
}

// translateStream reads SRT content from stdin and writes the
// translated document to stdout.
func translateStream(cmd *cobra.Command, pipeline *translator.Pipeline) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}

	translated, err := pipeline.TranslateText(cmd.Context(), string(content))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), translated)
	return err
}
