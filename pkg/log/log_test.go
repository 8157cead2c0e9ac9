package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestForContext(t *testing.T) {
	base, hook := test.NewNullLogger()
	original := L
	L = &logger{entry: logrus.NewEntry(base)}
	defer func() { L = original }()

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).Info("requisição")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, id, entry.Data[correlationIDField])
	assert.Equal(t, "requisição", entry.Message)
}

func TestSetLevel(t *testing.T) {
	original := logrus.GetLevel()
	defer logrus.SetLevel(original)

	SetLevel("warn")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	SetLevel("nao-existe")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
