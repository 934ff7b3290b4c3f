// Package veolink builds Veo3/Flow generation requests from a structured
// product configuration, executes them against a completion driver, and
// reconciles the model's free-form reply into validated domain objects.
package veolink

import (
	"fmt"
	"strings"
	"time"
)

// TargetModel selects the video generation target the prompts are written for.
type TargetModel string

const (
	TargetFlow        TargetModel = "Flow"
	TargetVeo3        TargetModel = "Veo3"
	TargetFlowFashion TargetModel = "Flow Fashion"
)

// Valid reports whether the value is one of the declared targets.
func (t TargetModel) Valid() bool {
	switch t {
	case TargetFlow, TargetVeo3, TargetFlowFashion:
		return true
	}
	return false
}

// ProductType is the product category driving scene and posture choices.
type ProductType string

const (
	ProductPhysical ProductType = "Físico"
	ProductFashion  ProductType = "Moda"
	ProductDigital  ProductType = "Digital"
	ProductFood     ProductType = "Alimento"
)

func (p ProductType) Valid() bool {
	switch p {
	case ProductPhysical, ProductFashion, ProductDigital, ProductFood:
		return true
	}
	return false
}

// InteractionMode selects how the presenter physically handles the camera.
type InteractionMode string

const (
	InteractionHandheld  InteractionMode = "Celular na Mão"
	InteractionHandsFree InteractionMode = "Mãos Livres (Tripé)"
)

func (m InteractionMode) Valid() bool {
	return m == InteractionHandheld || m == InteractionHandsFree
}

// VisualEmphasis is the requested visual treatment.
type VisualEmphasis string

const (
	EmphasisLifestyle VisualEmphasis = "Lifestyle (Natural)"
	EmphasisCinematic VisualEmphasis = "Cinemático (High-End)"
	EmphasisStudio    VisualEmphasis = "Estúdio (Minimalista)"
	EmphasisDynamic   VisualEmphasis = "Dinâmico (Transições)"
)

func (v VisualEmphasis) Valid() bool {
	switch v {
	case EmphasisLifestyle, EmphasisCinematic, EmphasisStudio, EmphasisDynamic:
		return true
	}
	return false
}

// VoiceTone is the spoken-dialogue style requested from the model.
type VoiceTone string

const (
	ToneEnthusiastic  VoiceTone = "Entusiasta & Amigo(a)"
	ToneSophisticated VoiceTone = "Sofisticado(a) & Calmo(a)"
	ToneUrgent        VoiceTone = "Achadinho Imperdível"
	ToneNarrative     VoiceTone = "Storytelling"
	ToneHumorous      VoiceTone = "Bem Humorado / Engraçado"
	ToneExpert        VoiceTone = "Especialista / Educativo"
	ToneASMR          VoiceTone = "ASMR / Relaxante"
	ToneDirect        VoiceTone = "Direto ao Ponto / Minimalista"
	ToneLuxury        VoiceTone = "VIP / Exclusivo"
	ToneGenZ          VoiceTone = "Gírias TikTok / GenZ"
)

func (v VoiceTone) Valid() bool {
	switch v {
	case ToneEnthusiastic, ToneSophisticated, ToneUrgent, ToneNarrative,
		ToneHumorous, ToneExpert, ToneASMR, ToneDirect, ToneLuxury, ToneGenZ:
		return true
	}
	return false
}

// Gender selects which of the two fixed AI presenter personas is used.
type Gender string

const (
	GenderWoman Gender = "Mulher"
	GenderMan   Gender = "Homem"
)

func (g Gender) Valid() bool {
	return g == GenderWoman || g == GenderMan
}

// TimeOfDay selects the lighting wording of the scene line.
type TimeOfDay string

const (
	TimeDay   TimeOfDay = "Day"
	TimeNight TimeOfDay = "Night"
)

func (t TimeOfDay) Valid() bool {
	return t == TimeDay || t == TimeNight
}

// Word-count bounds for the dialogue script.
const (
	MinWordCount = 20
	MaxWordCount = 35
)

// ProductConfig is the user-authored description of one product and the
// desired video style. It is treated as read-only for the duration of a
// generation call.
type ProductConfig struct {
	ProductName     string          `json:"product_name" mapstructure:"product_name"`
	Features        string          `json:"features" mapstructure:"features"`
	Price           string          `json:"price,omitempty" mapstructure:"price"`
	HasPrice        bool            `json:"has_price" mapstructure:"has_price"`
	TargetModel     TargetModel     `json:"target_model" mapstructure:"target_model"`
	ProductType     ProductType     `json:"product_type" mapstructure:"product_type"`
	InteractionMode InteractionMode `json:"interaction_mode" mapstructure:"interaction_mode"`
	Environment     string          `json:"environment,omitempty" mapstructure:"environment"`
	VisualEmphasis  VisualEmphasis  `json:"visual_emphasis" mapstructure:"visual_emphasis"`
	VoiceTone       VoiceTone       `json:"voice_tone" mapstructure:"voice_tone"`
	Gender          Gender          `json:"gender" mapstructure:"gender"`
	ExtraContext    string          `json:"extra_context,omitempty" mapstructure:"extra_context"`
	TimeOfDay       TimeOfDay       `json:"time_of_day" mapstructure:"time_of_day"`
	WordCount       int             `json:"word_count" mapstructure:"word_count"`
}

// Validate checks the invariants a full generation requires. A failure here
// is a caller bug, not a runtime condition; it is reported before any
// network call is attempted.
func (c ProductConfig) Validate() error {
	if strings.TrimSpace(c.ProductName) == "" {
		return fmt.Errorf("product name is required")
	}
	if strings.TrimSpace(c.Features) == "" {
		return fmt.Errorf("features are required")
	}
	if !c.TargetModel.Valid() {
		return fmt.Errorf("invalid target model %q", string(c.TargetModel))
	}
	if !c.ProductType.Valid() {
		return fmt.Errorf("invalid product type %q", string(c.ProductType))
	}
	if !c.InteractionMode.Valid() {
		return fmt.Errorf("invalid interaction mode %q", string(c.InteractionMode))
	}
	if !c.VisualEmphasis.Valid() {
		return fmt.Errorf("invalid visual emphasis %q", string(c.VisualEmphasis))
	}
	if !c.VoiceTone.Valid() {
		return fmt.Errorf("invalid voice tone %q", string(c.VoiceTone))
	}
	if !c.Gender.Valid() {
		return fmt.Errorf("invalid gender %q", string(c.Gender))
	}
	if !c.TimeOfDay.Valid() {
		return fmt.Errorf("invalid time of day %q", string(c.TimeOfDay))
	}
	if c.WordCount < MinWordCount || c.WordCount > MaxWordCount {
		return fmt.Errorf("word count %d outside [%d, %d]", c.WordCount, MinWordCount, MaxWordCount)
	}
	return nil
}

// PromptSegment is one ordered unit of a strategy. FullPrompt holds the
// tag-structured block (see tags.go); Index is preserved exactly as the
// model returned it and is not reconciled against slice position.
type PromptSegment struct {
	Index           int    `json:"index"`
	DurationGuide   string `json:"duration_guide,omitempty"`
	FullPrompt      string `json:"full_prompt"`
	DialogueSnippet string `json:"dialogue_snippet,omitempty"`
}

// GeneratedStrategy is one complete marketing concept returned by the model.
type GeneratedStrategy struct {
	Title          string          `json:"title"`
	MarketingAngle string          `json:"marketing_angle,omitempty"`
	TotalDuration  string          `json:"total_duration,omitempty"`
	TikTokCaption  string          `json:"tiktok_caption,omitempty"`
	TikTokHashtags []string        `json:"tiktok_hashtags,omitempty"`
	Segments       []PromptSegment `json:"segments"`
}

// PromptResponse wraps the ordered strategies of one generation. The
// request asks for four, but nothing downstream may assume that count.
type PromptResponse struct {
	Strategies []GeneratedStrategy `json:"strategies"`
}

// HistoryItem is the persisted record of one successful generation: the
// product name plus only the first strategy of the response.
type HistoryItem struct {
	ID          string            `json:"id"`
	CreatedAt   time.Time         `json:"created_at"`
	ProductName string            `json:"product_name"`
	Strategy    GeneratedStrategy `json:"strategy"`
}
