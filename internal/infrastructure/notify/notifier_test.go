package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-catalog/internal/infrastructure/notify"
	"github.com/jhoicas/inventario-catalog/pkg/logger"
)

func TestLogNotifier_NivelesYCampo(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(logger.NewWithWriter(&buf, "info"))

	n.Warning(context.Background(), "Category Short Code already exists")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "warning", line["notification"])
	assert.Equal(t, "Category Short Code already exists", line["message"])
}

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewWriterNotifier(&buf)

	n.Success(context.Background(), "Se actualizaron 3 subcategorías a FG")
	n.Error(context.Background(), "sin conexión")

	assert.Equal(t, "✔ Se actualizaron 3 subcategorías a FG\n✖ sin conexión\n", buf.String())
}
