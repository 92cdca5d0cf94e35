package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stancelab/internal/batch"
	"stancelab/internal/checkpoint"
	"stancelab/internal/dataset"
	"stancelab/internal/llm"
	"stancelab/internal/parse"
	"stancelab/internal/prompt"
)

var (
	runModel            string
	runTargets          []string
	runSplit            string
	runAction           string
	runClearCheckpoints bool
)

// runCmd processes datasets through the LLM.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enrich stance datasets with LLM explanations and classifications",
	Long: `Loads {target}-{split}.xlsx from the data directory, runs the
explain and/or classify actions over it in checkpointed batches, and writes
processed-{model}-{target}-{split}.xlsx with the merged columns.

Failed batches are reported as a warning; re-running resumes from the
checkpoint and retries only what is missing.`,
	RunE: runProcess,
}

func init() {
	runCmd.Flags().StringVarP(&runModel, "model", "m", "", "model selector (default from config)")
	runCmd.Flags().StringSliceVarP(&runTargets, "target", "t", nil, "target(s) to process (default: all configured)")
	runCmd.Flags().StringVar(&runSplit, "split", "train", "dataset split: train or test")
	runCmd.Flags().StringVar(&runAction, "action", "both", "action: explain, classify, or both")
	runCmd.Flags().BoolVar(&runClearCheckpoints, "clear-checkpoints", false, "delete all checkpoints before processing")
}

func runProcess(cmd *cobra.Command, args []string) error {
	model := runModel
	if model == "" {
		model = cfg.LLM.Model
	}
	if _, err := llm.ResolveModel(model); err != nil {
		return err
	}

	split := checkpoint.Split(runSplit)
	if split != checkpoint.SplitTrain && split != checkpoint.SplitTest {
		return fmt.Errorf("invalid split %q (valid: train, test)", runSplit)
	}

	if runAction != "explain" && runAction != "classify" && runAction != "both" {
		return fmt.Errorf("invalid action %q (valid: explain, classify, both)", runAction)
	}

	targets := runTargets
	if len(targets) == 0 {
		for name := range cfg.Dataset.Targets {
			targets = append(targets, name)
		}
		sort.Strings(targets)
	}
	for _, target := range targets {
		if _, ok := cfg.Dataset.Targets[target]; !ok {
			return fmt.Errorf("unknown target %q (valid: %v)", target, knownTargets())
		}
	}

	store := checkpoint.NewStore(cfg.Checkpoint.Dir, logger)
	if runClearCheckpoints {
		if err := store.ClearAll(); err != nil {
			return fmt.Errorf("clear checkpoints: %w", err)
		}
		logger.Info("cleared all checkpoints")
	}

	client, err := llm.NewClientForModel(model, cfg.LLM.APIKey)
	if err != nil {
		return err
	}
	baseDelay, err := cfg.RetryBaseDelay()
	if err != nil {
		return err
	}
	retrier := llm.NewRetrier(client, cfg.LLM.MaxAttempts, baseDelay, logger)
	orch := batch.NewOrchestrator(store, retrier, cfg.Batch.Width, logger)

	for _, target := range targets {
		if err := processTarget(cmd.Context(), orch, model, target, split); err != nil {
			return err
		}
	}
	return nil
}

// processTarget runs the requested actions for one target dataset and writes
// the merged output spreadsheet.
func processTarget(ctx context.Context, orch *batch.Orchestrator, model, target string, split checkpoint.Split) error {
	language := cfg.Dataset.Targets[target].Language

	inPath := filepath.Join(cfg.Dataset.Dir, fmt.Sprintf("%s-%s.xlsx", target, split))
	rows, err := dataset.Load(inPath)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("dataset %s has no rows", inPath)
	}

	enr := dataset.NewEnrichment()

	if runAction == "explain" || runAction == "both" {
		key := checkpoint.Key{ModelType: model, Target: target, Action: checkpoint.ActionExplain, Split: split}
		res, err := orch.Process(ctx, key, language, rows, cfg.Batch.Size,
			func(b []dataset.Row) string { return prompt.Explain(target, language, b) },
			prompt.System)
		if err != nil {
			return err
		}
		for _, raw := range res.Raw {
			for _, parsed := range parse.Table(raw) {
				enr.HumanExplanations[parsed.Text] = parsed.Explanation
			}
		}
	}

	if runAction == "classify" || runAction == "both" {
		key := checkpoint.Key{ModelType: model, Target: target, Action: checkpoint.ActionClassify, Split: split}
		res, err := orch.Process(ctx, key, language, rows, cfg.Batch.Size,
			func(b []dataset.Row) string { return prompt.Classify(target, language, b) },
			prompt.System)
		if err != nil {
			return err
		}
		for _, raw := range res.Raw {
			for _, parsed := range parse.Table(raw) {
				enr.LLMLabels[parsed.Text] = parsed.Label
				enr.LLMExplanations[parsed.Text] = parsed.Explanation
			}
		}
	}

	outPath := filepath.Join(cfg.Dataset.Dir, fmt.Sprintf("processed-%s-%s-%s.xlsx", model, target, split))
	if err := dataset.WriteProcessed(inPath, outPath, enr); err != nil {
		return err
	}

	logger.Info("wrote processed dataset",
		zap.String("target", target),
		zap.String("output", outPath),
		zap.Int("rows", len(rows)))
	return nil
}

func knownTargets() []string {
	names := make([]string, 0, len(cfg.Dataset.Targets))
	for name := range cfg.Dataset.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
