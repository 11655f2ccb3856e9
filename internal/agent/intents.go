// internal/agent/intents.go
package agent

import "strings"

// Intent labels for commercial queries.
const (
	IntentGreeting        = "greeting"
	IntentDobokInquiry    = "dobok_inquiry"
	IntentProtection      = "protection_inquiry"
	IntentBeltInquiry     = "belt_inquiry"
	IntentPriceInquiry    = "price_inquiry"
	IntentSizeInquiry     = "size_inquiry"
	IntentPromotion       = "promotion_inquiry"
	IntentRecommendation  = "recommendation"
	IntentComparison      = "comparison"
	IntentBeginnerGear    = "beginner_gear"
	IntentCompetitionGear = "competition_gear"
	IntentPurchase        = "purchase"
	IntentGeneral         = "general"
)

// Message types drive tone and call-to-action selection.
const (
	MessageTypeQuestion         = "question"
	MessageTypePurchaseIntent   = "purchase_intent"
	MessageTypePositiveFeedback = "positive_feedback"
	MessageTypePriceConcern     = "price_concern"
	MessageTypeGeneralInquiry   = "general_inquiry"
)

type intentRule struct {
	intent   string
	keywords []string
}

// intentRules is evaluated in order; the first matching rule becomes the
// primary intent. The ordering is part of the contract: "dobok barato"
// classifies as dobok_inquiry, not price_inquiry.
var intentRules = []intentRule{
	{IntentGreeting, []string{"hola", "hello", "hi", "buenas", "saludos"}},
	{IntentDobokInquiry, []string{"dobok", "uniforme", "traje", "kimono"}},
	{IntentProtection, []string{"proteccion", "protector", "casco", "peto", "espinilleras"}},
	{IntentBeltInquiry, []string{"cinturon", "cinta", "ti"}},
	{IntentPriceInquiry, []string{"precio", "costo", "vale", "cuanto", "barato", "caro"}},
	{IntentSizeInquiry, []string{"talla", "medida", "tamaño", "size"}},
	{IntentPromotion, []string{"promocion", "descuento", "oferta", "rebaja", "barato"}},
	{IntentRecommendation, []string{"recomienda", "sugiere", "necesito", "busco", "quiero"}},
	{IntentComparison, []string{"diferencia", "comparar", "mejor", "vs", "versus"}},
	{IntentBeginnerGear, []string{"empezar", "principiante", "comenzar", "nuevo", "inicio"}},
	{IntentCompetitionGear, []string{"competir", "torneo", "competicion", "wtf", "oficial"}},
	{IntentPurchase, []string{"comprar", "adquirir", "conseguir", "donde"}},
}

// Analysis is the classifier's view of one user message.
type Analysis struct {
	PrimaryIntent string
	AllIntents    []string
	Confidence    float64
	MessageType   string
}

// Classify detects commercial intents in a message. Confidence is total
// keyword hits over word count, a cheap signal for logging and metrics.
func Classify(message string) Analysis {
	lower := strings.ToLower(message)

	var detected []string
	totalMatches := 0
	for _, rule := range intentRules {
		matches := 0
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				matches++
			}
		}
		if matches > 0 {
			detected = append(detected, rule.intent)
			totalMatches += matches
		}
	}

	primary := IntentGeneral
	if len(detected) > 0 {
		primary = detected[0]
	}

	confidence := 0.0
	if words := len(strings.Fields(message)); words > 0 {
		confidence = float64(totalMatches) / float64(words)
	}

	return Analysis{
		PrimaryIntent: primary,
		AllIntents:    detected,
		Confidence:    confidence,
		MessageType:   classifyMessageType(lower),
	}
}

func classifyMessageType(lower string) string {
	switch {
	case containsAny(lower, "?", "que", "como", "donde", "cuando", "cuanto"):
		return MessageTypeQuestion
	case containsAny(lower, "quiero", "necesito", "busco", "me interesa"):
		return MessageTypePurchaseIntent
	case containsAny(lower, "gracias", "perfecto", "excelente", "genial"):
		return MessageTypePositiveFeedback
	case containsAny(lower, "caro", "costoso", "barato", "economic"):
		return MessageTypePriceConcern
	default:
		return MessageTypeGeneralInquiry
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
