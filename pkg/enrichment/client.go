package enrichment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fridgepal/domain"
	"fridgepal/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type (
	// Client wraps the generative-AI backend behind the five request
	// shapes the inventory needs. Implementations convert every
	// transport or parse failure into the per-shape unavailable signal;
	// they never propagate the underlying error to callers.
	Client interface {
		Configured() bool
		NutritionLookup(ctx context.Context, item ItemView) (*domain.Nutrition, error)
		AnalyzeLabel(ctx context.Context, image []byte, mimeType string) (*domain.Nutrition, error)
		AnalyzeFridgeHealth(ctx context.Context, items []ItemView) domain.FridgeAnalysisResponse
		GenerateRecipes(ctx context.Context, itemNames []string) []domain.GeneratedRecipe
		GoalAdvice(ctx context.Context, itemNames []string, goal string) (*domain.GoalAdviceResponse, error)
	}

	geminiClient struct {
		apiKey     string
		models     []string
		baseURL    string
		httpClient *http.Client
	}
)

// NewGeminiClient builds the client from configuration. A missing API
// key yields an explicitly unconfigured client that degrades to
// placeholder results instead of failing at startup. Models are tried
// in order, first success short-circuiting.
func NewGeminiClient() Client {
	models := []string{}
	if model := utils.GetConfig("GEMINI_MODEL"); model != "" {
		models = append(models, model)
	}
	if fallback := utils.GetConfig("GEMINI_FALLBACK_MODEL"); fallback != "" {
		models = append(models, fallback)
	}
	if len(models) == 0 {
		models = []string{"gemini-2.0-flash", "gemini-1.5-flash"}
	}

	apiKey := utils.GetConfig("GEMINI_API_KEY")
	if apiKey == "" {
		log.Warn("GEMINI_API_KEY not set, enrichment runs in degraded mode")
	}

	return &geminiClient{
		apiKey:     apiKey,
		models:     models,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *geminiClient) Configured() bool {
	return c.apiKey != ""
}

func (c *geminiClient) NutritionLookup(ctx context.Context, item ItemView) (*domain.Nutrition, error) {
	if !c.Configured() {
		return placeholderNutrition(item.Quantity), nil
	}

	raw, err := c.generate(ctx, textParts(nutritionPrompt(item)))
	if err != nil {
		return nil, domain.ErrEnrichmentUnavailable
	}

	var nutrition domain.Nutrition
	if err := DecodeJSON(raw, &nutrition); err != nil {
		log.Warnf("nutrition lookup returned unparseable output: %v", err)
		return nil, domain.ErrEnrichmentUnavailable
	}

	return &nutrition, nil
}

func (c *geminiClient) AnalyzeLabel(ctx context.Context, image []byte, mimeType string) (*domain.Nutrition, error) {
	if !c.Configured() {
		return nil, domain.ErrEnrichmentUnavailable
	}

	parts := []map[string]any{
		{"text": labelScanPrompt},
		{"inline_data": map[string]any{
			"mime_type": mimeType,
			"data":      base64.StdEncoding.EncodeToString(image),
		}},
	}

	raw, err := c.generate(ctx, parts)
	if err != nil {
		return nil, domain.ErrEnrichmentUnavailable
	}

	var nutrition domain.Nutrition
	if err := DecodeJSON(raw, &nutrition); err != nil {
		log.Warnf("label scan returned unparseable output: %v", err)
		return nil, domain.ErrEnrichmentUnavailable
	}

	return &nutrition, nil
}

func (c *geminiClient) AnalyzeFridgeHealth(ctx context.Context, items []ItemView) domain.FridgeAnalysisResponse {
	if !c.Configured() {
		return domain.FridgeAnalysisResponse{Score: 0, Analysis: domain.MessageEnrichmentDisabled}
	}

	unavailable := domain.FridgeAnalysisResponse{
		Score:           0,
		Analysis:        domain.MessageAnalysisUnavailable,
		Recommendations: []string{},
	}

	raw, err := c.generate(ctx, textParts(fridgeHealthPrompt(items)))
	if err != nil {
		return unavailable
	}

	var analysis domain.FridgeAnalysisResponse
	if err := DecodeJSON(raw, &analysis); err != nil {
		log.Warnf("fridge analysis returned unparseable output: %v", err)
		return unavailable
	}

	return analysis
}

func (c *geminiClient) GenerateRecipes(ctx context.Context, itemNames []string) []domain.GeneratedRecipe {
	if !c.Configured() {
		return []domain.GeneratedRecipe{}
	}

	raw, err := c.generate(ctx, textParts(recipesPrompt(itemNames)))
	if err != nil {
		return []domain.GeneratedRecipe{}
	}

	var recipes []domain.GeneratedRecipe
	if err := DecodeJSON(raw, &recipes); err != nil {
		log.Warnf("recipe generation returned unparseable output: %v", err)
		return []domain.GeneratedRecipe{}
	}

	return recipes
}

func (c *geminiClient) GoalAdvice(ctx context.Context, itemNames []string, goal string) (*domain.GoalAdviceResponse, error) {
	if !c.Configured() {
		return nil, domain.ErrEnrichmentUnavailable
	}

	raw, err := c.generate(ctx, textParts(goalAdvicePrompt(itemNames, goal)))
	if err != nil {
		return nil, domain.ErrEnrichmentUnavailable
	}

	var advice domain.GoalAdviceResponse
	if err := DecodeJSON(raw, &advice); err != nil {
		log.Warnf("goal advice returned unparseable output: %v", err)
		return nil, domain.ErrEnrichmentUnavailable
	}

	return &advice, nil
}

// placeholderNutrition is the deterministic per-unit estimate used when
// no credential is configured: creation must never block on enrichment.
func placeholderNutrition(quantity float64) *domain.Nutrition {
	return &domain.Nutrition{
		Calories: int(100 * quantity),
		Protein:  5 * quantity,
		Carbs:    10 * quantity,
		Fat:      2 * quantity,
	}
}

func textParts(prompt string) []map[string]any {
	return []map[string]any{{"text": prompt}}
}

// generate tries each configured model in order and returns the first
// successful candidate text. Failures are classified in the log (HTTP
// status vs transport vs empty candidate) but all collapse into one
// error for the caller.
func (c *geminiClient) generate(ctx context.Context, parts []map[string]any) (string, error) {
	var lastErr error
	for _, model := range c.models {
		text, err := c.generateWithModel(ctx, model, parts)
		if err == nil {
			return text, nil
		}
		log.Warnf("gemini model %s failed: %v", model, err)
		lastErr = err
	}
	return "", lastErr
}

func (c *geminiClient) generateWithModel(ctx context.Context, model string, parts []map[string]any) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	requestBody := map[string]any{
		"contents": []map[string]any{
			{"parts": parts},
		},
		"generationConfig": map[string]any{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
