package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
)

func TestNewGenAIModel(t *testing.T) {
	t.Run("APIキーが空の場合はErrConfigurationであること", func(t *testing.T) {
		_, err := NewGenAIModel(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}
