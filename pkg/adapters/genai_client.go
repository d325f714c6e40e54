package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
)

// GenAIModel は google.golang.org/genai の SDK を gemini.GenerativeModel に
// 適合させる組み込み実装です。クライアントを外部から注入できない CLI の
// ような利用者のために用意しています。
type GenAIModel struct {
	client *genai.Client
}

var _ gemini.GenerativeModel = (*GenAIModel)(nil)

// NewGenAIModel は API キーから GenAIModel を初期化します。
// キーが空の場合は ErrConfiguration です。
func NewGenAIModel(ctx context.Context, apiKey string) (*GenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY", domain.ErrConfiguration)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini クライアントの初期化に失敗しました: %w", err)
	}
	return &GenAIModel{client: client}, nil
}

// GenerateContent はテキストのみのプロンプトで生成を実行します。
func (m *GenAIModel) GenerateContent(ctx context.Context, model, prompt string) (*gemini.Response, error) {
	resp, err := m.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

// GenerateWithParts は画像つきパーツ列で生成を実行します。
func (m *GenAIModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	cfg := &genai.GenerateContentConfig{}
	if opts.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: opts.SystemPrompt}}}
	}
	if opts.Seed != nil {
		// SDK は int32 を期待している
		v := int32(*opts.Seed)
		cfg.Seed = &v
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	resp, err := m.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

// UploadFile は File API へデータをアップロードし、URI と名前を返します。
func (m *GenAIModel) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	file, err := m.client.Files.Upload(ctx, bytes.NewReader(data), &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: displayName,
	})
	if err != nil {
		return "", "", err
	}
	return file.URI, file.Name, nil
}

// DeleteFile は File API からファイルを削除します。
func (m *GenAIModel) DeleteFile(ctx context.Context, name string) error {
	_, err := m.client.Files.Delete(ctx, name, nil)
	return err
}

// GetFile は File API のファイル情報を取得します。
func (m *GenAIModel) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return m.client.Files.Get(ctx, name, nil)
}
