package adapters

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
	"github.com/shouni/canvas-extend-kit/pkg/engine"
	"github.com/shouni/canvas-extend-kit/pkg/imgutil"
	"github.com/shouni/canvas-extend-kit/pkg/raster"
)

const (
	// インライン添付の前にウィンドウを JPEG 圧縮してペイロードを抑える
	UseWindowCompression     = true
	WindowCompressionQuality = 75

	DefaultAspectRatio = "1:1"
)

// defaultPrompts は方向ごとの空白充填プロンプトです。
var defaultPrompts = map[domain.Direction]string{
	domain.DirectionRight: "fill in the blank area on the right",
	domain.DirectionLeft:  "fill in the blank area on the left",
	domain.DirectionDown:  "fill in the blank area on the bottom",
}

// GeminiSynthesizer は Gemini をエンジンの Synthesizer として適合させる
// アダプター層です。スライド済みウィンドウを送信し、白い帯が埋められた
// フレームを復号して返します。寸法の照合はエンジン側の責務です。
type GeminiSynthesizer struct {
	aiClient    gemini.GenerativeModel
	model       string
	prompts     map[domain.Direction]string
	styleSuffix string
	seed        *int64
}

// SynthesizerOption は GeminiSynthesizer の生成オプションです。
type SynthesizerOption func(*GeminiSynthesizer)

// WithStyleSuffix は全プロンプトに付加する画風の指定です。
func WithStyleSuffix(suffix string) SynthesizerOption {
	return func(s *GeminiSynthesizer) { s.styleSuffix = suffix }
}

// WithSeed は生成シード値を固定します。
func WithSeed(seed int64) SynthesizerOption {
	return func(s *GeminiSynthesizer) { s.seed = &seed }
}

// WithPrompt は指定方向のプロンプトを差し替えます。
func WithPrompt(direction domain.Direction, prompt string) SynthesizerOption {
	return func(s *GeminiSynthesizer) { s.prompts[direction] = prompt }
}

// NewGeminiSynthesizer は依存関係を注入して GeminiSynthesizer を初期化します。
func NewGeminiSynthesizer(aiClient gemini.GenerativeModel, model string, opts ...SynthesizerOption) (*GeminiSynthesizer, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	s := &GeminiSynthesizer{
		aiClient: aiClient,
		model:    model,
		prompts:  make(map[domain.Direction]string, len(defaultPrompts)),
	}
	for dir, prompt := range defaultPrompts {
		s.prompts[dir] = prompt
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Synthesize は1回分の合成要求を実行します。失敗はすべて ErrSynthesis に
// 分類され、呼び出し元の拡張リクエストを中断させます。
func (s *GeminiSynthesizer) Synthesize(ctx context.Context, req engine.SynthesisRequest) (*raster.Raster, error) {
	imagePart, err := s.windowPart(req.Window)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{
		{Text: s.promptFor(req.Direction, req.Stage)},
		imagePart,
	}

	resp, err := s.aiClient.GenerateWithParts(ctx, s.model, parts, gemini.GenerateOptions{
		AspectRatio: DefaultAspectRatio,
		Seed:        s.seed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesis, err)
	}

	data, err := parseImageData(resp)
	if err != nil {
		return nil, err
	}

	frame, err := raster.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: 応答画像を復号できません: %v", domain.ErrSynthesis, err)
	}
	return frame, nil
}

// promptFor は方向と段階から空白充填プロンプトを選びます。
// 下段の水平充填ステップは右側を空けたウィンドウを送るため、
// 下方向ではなく右埋めのプロンプトを使います。
func (s *GeminiSynthesizer) promptFor(direction domain.Direction, stage domain.Stage) string {
	if direction == domain.DirectionDown && stage == domain.StageHorizontal {
		direction = domain.DirectionRight
	}
	prompt := s.prompts[direction]
	if prompt == "" {
		prompt = defaultPrompts[direction]
	}
	if s.styleSuffix != "" {
		prompt = prompt + ", " + s.styleSuffix
	}
	return prompt
}

func (s *GeminiSynthesizer) windowPart(window *raster.Raster) (*genai.Part, error) {
	data, err := window.EncodePNG()
	if err != nil {
		return nil, fmt.Errorf("ウィンドウの符号化に失敗しました: %w", err)
	}
	if UseWindowCompression {
		if compressed, err := imgutil.CompressToJPEG(data, WindowCompressionQuality); err == nil {
			data = compressed
		}
	}
	return &genai.Part{
		InlineData: &genai.Blob{MIMEType: http.DetectContentType(data), Data: data},
	}, nil
}

// parseImageData は候補から最初の画像パーツを取り出します。
func parseImageData(resp *gemini.Response) ([]byte, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("%w: 有効な応答がありません", domain.ErrSynthesis)
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("%w: 生成が異常終了しました (FinishReason: %s)", domain.ErrSynthesis, candidate.FinishReason)
	}
	return nil, fmt.Errorf("%w: 画像データが見つかりません", domain.ErrSynthesis)
}
