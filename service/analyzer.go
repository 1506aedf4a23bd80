package service

import (
	"context"
	"encoding/json"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/prnvtripathi/tract-us/model"
	"github.com/prnvtripathi/tract-us/pkg/logger"
	"github.com/prnvtripathi/tract-us/relay"
)

// TextExtractor turns an uploaded document URL into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, documentURL string) (string, error)
}

// invalidJSONSentinel is persisted and broadcast when the analysis model
// returns something that is not a JSON object.
func invalidJSONSentinel() map[string]any {
	return map[string]any{"error": "Invalid JSON from AI"}
}

// Analyzer runs the contract analysis pipeline: extract text, ask the
// analysis model for a structured result, broadcast progress over the relay
// and persist the result onto the contract record.
type Analyzer struct {
	extractor TextExtractor
	chat      einomodel.BaseChatModel
	store     ContractStore
	hub       *relay.Hub
}

func NewAnalyzer(extractor TextExtractor, chat einomodel.BaseChatModel, store ContractStore, hub *relay.Hub) *Analyzer {
	return &Analyzer{
		extractor: extractor,
		chat:      chat,
		store:     store,
		hub:       hub,
	}
}

// StartAnalysis schedules the pipeline for a contract and returns
// immediately. Completion is communicated via relay events and the
// contract's analysis field, never a return value.
func (a *Analyzer) StartAnalysis(fileURL, ownerID, contractID string) {
	go a.run(context.Background(), fileURL, ownerID, contractID)
}

func (a *Analyzer) run(ctx context.Context, fileURL, ownerID, contractID string) {
	a.hub.Broadcast("ai:processing_started", map[string]any{
		"ownerId":    ownerID,
		"fileUrl":    fileURL,
		"contractId": contractID,
	})

	contractText, err := a.extractor.ExtractText(ctx, fileURL)
	if err != nil {
		logger.Error(ctx, "text extraction failed",
			"contract_id", contractID,
			"file_url", fileURL,
			"error", err,
		)
		a.broadcastFailure(ownerID, contractID)
		return
	}

	a.hub.Broadcast("ai:extraction_progress", map[string]any{
		"ownerId":    ownerID,
		"contractId": contractID,
		"progress":   "Text extraction complete",
	})

	resp, err := a.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(analyzePrompt),
		schema.UserMessage("This is the contract text: \n" + contractText),
	})
	if err != nil {
		logger.Error(ctx, "analysis model call failed",
			"contract_id", contractID,
			"error", err,
		)
		a.broadcastFailure(ownerID, contractID)
		return
	}

	rawOutput := resp.Content
	if rawOutput == "" {
		rawOutput = "{}"
	}

	var analysis any
	var confidence *float64
	suggestions := []string{}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(rawOutput), &result); err != nil {
		logger.Warn(ctx, "analysis model returned invalid JSON",
			"contract_id", contractID,
			"raw_output", rawOutput,
		)
		analysis = invalidJSONSentinel()
	} else {
		analysis = &result
		confidence = result.ConfidenceScore
		if result.RiskAssessment.Recommendations != nil {
			suggestions = result.RiskAssessment.Recommendations
		}
	}

	a.hub.Broadcast("ai:confidence_update", map[string]any{
		"ownerId":    ownerID,
		"contractId": contractID,
		"confidence": confidence,
	})
	a.hub.Broadcast("ai:suggestion_generated", map[string]any{
		"ownerId":     ownerID,
		"contractId":  contractID,
		"suggestions": suggestions,
	})
	a.hub.Broadcast("ai:analysis_complete", map[string]any{
		"ownerId":    ownerID,
		"contractId": contractID,
		"analysis":   analysis,
	})

	if err := a.store.UpdateAnalysis(ctx, contractID, ownerID, analysis); err != nil {
		logger.Error(ctx, "failed to persist analysis result",
			"contract_id", contractID,
			"owner_id", ownerID,
			"error", err,
		)
	}
}

func (a *Analyzer) broadcastFailure(ownerID, contractID string) {
	a.hub.Broadcast("ai:analysis_complete", map[string]any{
		"ownerId":    ownerID,
		"contractId": contractID,
		"error":      "AI analysis failed",
	})
}
